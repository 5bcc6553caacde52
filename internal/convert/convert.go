// Package convert turns Samsung Health CSV exports into the
// health-data.json snapshot the site publishes. Each input is optional;
// the run fails only when no metric group at all could be produced.
package convert

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lucov/healthcard/internal/snapshot"
	"github.com/Lucov/healthcard/internal/xslog"
)

// ErrNoData means no input produced a single metric group; the previous
// snapshot on disk must be left untouched.
var ErrNoData = errors.New("no health data was successfully processed")

// Inputs are paths to the CSV exports. Empty paths are skipped.
type Inputs struct {
	Sleep  string
	Heart  string
	Steps  string
	Stress string
}

func (in Inputs) Empty() bool {
	return in.Sleep == "" && in.Heart == "" && in.Steps == "" && in.Stress == ""
}

type Processor struct {
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Processor)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

func New(opts ...Option) *Processor {
	p := &Processor{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run parses the provided exports concurrently and assembles the
// snapshot. The returned diagnostics are always usable, even on error.
func (p *Processor) Run(ctx context.Context, in Inputs) (*snapshot.Snapshot, *Diagnostics, error) {
	now := p.now().UTC()
	diag := newDiagnostics(now)

	var (
		sleep    *sleepResult
		heart    *heartResult
		activity *activityResult
		stress   *stressResult
	)

	g, gctx := errgroup.WithContext(ctx)
	if in.Sleep != "" {
		g.Go(func() error {
			var err error
			sleep, err = p.processSleep(gctx, in.Sleep)
			diag.record("sleep", err)
			return nil
		})
	}
	if in.Heart != "" {
		g.Go(func() error {
			var err error
			heart, err = p.processHeart(gctx, in.Heart, now)
			diag.record("heartRate", err)
			return nil
		})
	}
	if in.Steps != "" {
		g.Go(func() error {
			var err error
			activity, err = p.processActivity(gctx, in.Steps)
			diag.record("activity", err)
			return nil
		})
	}
	if in.Stress != "" {
		g.Go(func() error {
			var err error
			stress, err = p.processStress(gctx, in.Stress, now)
			diag.record("stress", err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, diag, err
	}

	snap := &snapshot.Snapshot{
		LastUpdated: now.Format(time.RFC3339),
		DataSource:  "Samsung Health CSV",
		DailyStats: &snapshot.DailyStats{
			Date: now.Format("2006-01-02"),
		},
		WeeklyTrends: &snapshot.WeeklyTrends{},
	}

	if sleep != nil {
		sleep.apply(snap)
	}
	if heart != nil {
		heart.apply(snap)
	}
	if activity != nil {
		activity.apply(snap)
	}
	if stress != nil {
		stress.apply(snap)
	}

	daily := snap.DailyStats
	if daily.Sleep == nil && daily.Energy == nil && daily.HeartRate == nil && daily.Activity == nil && daily.Stress == nil {
		diag.addError(ErrNoData.Error())
		return nil, diag, ErrNoData
	}

	diag.Success = true
	return snap, diag, nil
}

// WriteSnapshot saves the snapshot, overwriting the previous document.
func WriteSnapshot(snap *snapshot.Snapshot, path string) error {
	data, err := snap.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

type sleepResult struct {
	sleep  snapshot.Sleep
	energy *snapshot.Energy

	weeklyScore    *float64
	weeklyEnergy   *float64
	weeklyDuration *float64
}

func (r *sleepResult) apply(snap *snapshot.Snapshot) {
	snap.DailyStats.Sleep = &r.sleep
	snap.DailyStats.Energy = r.energy
	snap.WeeklyTrends.AverageSleepScore = r.weeklyScore
	snap.WeeklyTrends.AverageEnergyScore = r.weeklyEnergy
	snap.WeeklyTrends.AverageSleepDuration = r.weeklyDuration
}

func (p *Processor) processSleep(ctx context.Context, path string) (*sleepResult, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no sleep data found in CSV file")
	}

	// most recent record wins
	latest := records[len(records)-1]
	result := &sleepResult{}

	if raw, ok := latest["Sleep time"]; ok {
		if d, err := parseDuration(raw); err == nil {
			result.sleep.Duration = snapshot.Ptr(d)
		}
	}
	if score, ok := intField(latest, "Sleep score"); ok {
		result.sleep.Score = snapshot.Ptr(float64(score))
	}
	if raw, ok := latest["Deep sleep"]; ok {
		if d, err := parseDuration(raw); err == nil {
			result.sleep.DeepSleep = snapshot.Ptr(d)
		}
	}
	if raw, ok := latest["REM sleep"]; ok {
		if d, err := parseDuration(raw); err == nil {
			result.sleep.RemSleep = snapshot.Ptr(d)
		}
	}
	if raw, ok := latest["Light sleep"]; ok {
		if d, err := parseDuration(raw); err == nil {
			result.sleep.LightSleep = snapshot.Ptr(d)
		}
	}
	if raw, ok := latest["Bedtime"]; ok && raw != "" {
		result.sleep.BedTime = snapshot.Ptr(parseClock(raw))
	}
	if raw, ok := latest["Wake time"]; ok && raw != "" {
		result.sleep.WakeTime = snapshot.Ptr(parseClock(raw))
	}

	// some exports carry an energy score alongside sleep
	if score, ok := energyField(latest); ok {
		result.energy = &snapshot.Energy{
			Score: snapshot.Ptr(float64(score)),
			Level: snapshot.Ptr(energyLevel(float64(score))),
		}
	}

	recent := lastN(records, 7)
	var scores, energies, durations []float64
	for _, r := range recent {
		if score, ok := intField(r, "Sleep score"); ok {
			scores = append(scores, float64(score))
		}
		if score, ok := energyField(r); ok {
			energies = append(energies, float64(score))
		}
		if raw, ok := r["Sleep time"]; ok {
			if d, err := parseDuration(raw); err == nil {
				durations = append(durations, d)
			}
		}
	}
	if len(scores) > 0 {
		result.weeklyScore = snapshot.Ptr(math.Round(mean(scores)))
	}
	if len(energies) > 0 {
		result.weeklyEnergy = snapshot.Ptr(math.Round(mean(energies)))
	}
	if len(durations) > 0 {
		result.weeklyDuration = snapshot.Ptr(round1(mean(durations)))
	}

	p.logger.InfoContext(ctx, "processed sleep data", xslog.Count(len(records)))
	return result, nil
}

type heartResult struct {
	daily     *snapshot.HeartRate
	weeklyRHR *float64
}

func (r *heartResult) apply(snap *snapshot.Snapshot) {
	snap.DailyStats.HeartRate = r.daily
	snap.WeeklyTrends.AverageRestingHR = r.weeklyRHR
}

func (p *Processor) processHeart(ctx context.Context, path string, now time.Time) (*heartResult, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no heart rate data found in CSV file")
	}

	result := &heartResult{}

	today := now.Format("2006-01-02")
	var todayValues []float64
	for _, r := range records {
		if !containsDate(r["Date"], today) {
			continue
		}
		if v, ok := intField(r, "Heart rate"); ok {
			todayValues = append(todayValues, float64(v))
		}
	}

	if len(todayValues) > 0 {
		minHR, maxHR := todayValues[0], todayValues[0]
		for _, v := range todayValues {
			minHR = math.Min(minHR, v)
			maxHR = math.Max(maxHR, v)
		}
		result.daily = &snapshot.HeartRate{
			Resting: snapshot.Ptr(minHR),
			Average: snapshot.Ptr(math.Round(mean(todayValues))),
			Max:     snapshot.Ptr(maxHR),
			Min:     snapshot.Ptr(minHR),
		}

		// approximate weekly resting HR as the lowest decile of the
		// trailing samples
		var recent []float64
		for _, r := range lastN(records, 100) {
			if v, ok := intField(r, "Heart rate"); ok {
				recent = append(recent, float64(v))
			}
		}
		if len(recent) > 0 {
			sort.Float64s(recent)
			cut := len(recent) / 10
			if cut == 0 {
				cut = len(recent)
			}
			result.weeklyRHR = snapshot.Ptr(math.Round(mean(recent[:cut])))
		}
	}

	p.logger.InfoContext(ctx, "processed heart rate data", xslog.Count(len(records)))
	return result, nil
}

type activityResult struct {
	daily       *snapshot.Activity
	weeklySteps *float64
}

func (r *activityResult) apply(snap *snapshot.Snapshot) {
	snap.DailyStats.Activity = r.daily
	snap.WeeklyTrends.AverageSteps = r.weeklySteps
}

func (p *Processor) processActivity(ctx context.Context, path string) (*activityResult, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no activity data found in CSV file")
	}

	latest := records[len(records)-1]
	activity := &snapshot.Activity{}
	if v, ok := intField(latest, "Step count"); ok {
		activity.Steps = snapshot.Ptr(float64(v))
	}
	if v, ok := intField(latest, "Calories"); ok {
		activity.Calories = snapshot.Ptr(float64(v))
	}
	if v, ok := intField(latest, "Active time"); ok {
		activity.ActiveMinutes = snapshot.Ptr(float64(v))
	}
	if activity.Steps == nil && activity.Calories == nil && activity.ActiveMinutes == nil {
		return nil, errors.New("no usable activity fields in CSV file")
	}

	result := &activityResult{daily: activity}

	var steps []float64
	for _, r := range lastN(records, 7) {
		if v, ok := intField(r, "Step count"); ok {
			steps = append(steps, float64(v))
		}
	}
	if len(steps) > 0 {
		result.weeklySteps = snapshot.Ptr(math.Round(mean(steps)))
	}

	p.logger.InfoContext(ctx, "processed activity data", xslog.Count(len(records)))
	return result, nil
}

type stressResult struct {
	daily *snapshot.Stress
}

func (r *stressResult) apply(snap *snapshot.Snapshot) {
	snap.DailyStats.Stress = r.daily
}

func (p *Processor) processStress(ctx context.Context, path string, now time.Time) (*stressResult, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no stress data found in CSV file")
	}

	today := now.Format("2006-01-02")
	var values []float64
	for _, r := range records {
		if !containsDate(r["Date"], today) {
			continue
		}
		if v, ok := intField(r, "Stress"); ok {
			values = append(values, float64(v))
		}
	}

	result := &stressResult{}
	if len(values) > 0 {
		avg := math.Round(mean(values))
		result.daily = &snapshot.Stress{
			Average: snapshot.Ptr(avg),
			Level:   snapshot.Ptr(stressLevel(avg)),
		}
	}

	p.logger.InfoContext(ctx, "processed stress data", xslog.Count(len(records)))
	return result, nil
}

// energyLevel matches the label thresholds for the energy score.
func energyLevel(score float64) string {
	switch {
	case score >= 80:
		return "High Energy"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Moderate"
	default:
		return "Low"
	}
}

// stressLevel is the coarse three-way level written into the document.
func stressLevel(avg float64) string {
	switch {
	case avg < 40:
		return "Low"
	case avg < 70:
		return "Medium"
	default:
		return "High"
	}
}

// readRecords reads a CSV file into header-keyed rows, like a dict
// reader. Short rows are tolerated.
func readRecords(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var records []map[string]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		record := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, nil
}

func intField(record map[string]string, key string) (int, bool) {
	raw, ok := record[key]
	if !ok || raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return int(math.Round(f)), true
	}
	return v, true
}

// energyField checks the header variants exports use for the energy
// score.
func energyField(record map[string]string) (int, bool) {
	for _, key := range []string{"Energy score", "Energy", "energy_score"} {
		if v, ok := intField(record, key); ok {
			return v, true
		}
	}
	return 0, false
}

func containsDate(field, date string) bool {
	return field != "" && strings.Contains(field, date)
}

func lastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
