package googlefit

import (
	"math"
	"strconv"

	"github.com/Lucov/healthcard/internal/snapshot"
)

// Fitness REST wire types. Millisecond timestamps arrive as decimal
// strings.

type sessionsResponse struct {
	Session []sleepSession `json:"session"`
}

type sleepSession struct {
	StartTimeMillis string `json:"startTimeMillis"`
	EndTimeMillis   string `json:"endTimeMillis"`
}

type aggregateRequest struct {
	AggregateBy     []aggregateBy `json:"aggregateBy"`
	BucketByTime    bucketByTime  `json:"bucketByTime"`
	StartTimeMillis int64         `json:"startTimeMillis"`
	EndTimeMillis   int64         `json:"endTimeMillis"`
}

type aggregateBy struct {
	DataTypeName string `json:"dataTypeName"`
}

type bucketByTime struct {
	DurationMillis int64 `json:"durationMillis"`
}

type aggregateResponse struct {
	Bucket []bucket `json:"bucket"`
}

type bucket struct {
	Dataset []dataset `json:"dataset"`
}

type dataset struct {
	DataSourceID string  `json:"dataSourceId"`
	Point        []point `json:"point"`
}

type point struct {
	Value []pointValue `json:"value"`
}

type pointValue struct {
	FpVal  *float64 `json:"fpVal"`
	IntVal *int64   `json:"intVal"`
}

func (s sleepSession) hours() float64 {
	start, err1 := strconv.ParseInt(s.StartTimeMillis, 10, 64)
	end, err2 := strconv.ParseInt(s.EndTimeMillis, 10, 64)
	if err1 != nil || err2 != nil || end <= start {
		return 0
	}
	return float64(end-start) / (1000 * 60 * 60)
}

// deriveSleepScore estimates a 0-100 score from duration and stage
// proportions: 40 points for hitting 8h, 30 each for deep and REM share.
func deriveSleepScore(duration, deep, rem float64) float64 {
	if duration <= 0 {
		return 0
	}
	score := duration/8*40 + deep/duration*30 + rem/duration*30
	return math.Min(100, math.Floor(score))
}

func processSleep(snap *snapshot.Snapshot, sessions []sleepSession) {
	var (
		durations []float64
		scores    []float64
	)
	for _, s := range sessions {
		h := s.hours()
		if h <= 0 {
			continue
		}
		// Stage data is not in the session list; estimate the split.
		deep := h * 0.2
		rem := h * 0.15
		durations = append(durations, h)
		scores = append(scores, deriveSleepScore(h, deep, rem))
	}
	if len(durations) == 0 {
		return
	}

	latest := durations[len(durations)-1]
	latestScore := scores[len(scores)-1]
	deep := round1(latest * 0.2)
	rem := round1(latest * 0.15)
	light := round1(latest - deep - rem)

	snap.DailyStats.Sleep = &snapshot.Sleep{
		Score:      snapshot.Ptr(latestScore),
		Duration:   snapshot.Ptr(round1(latest)),
		DeepSleep:  snapshot.Ptr(deep),
		RemSleep:   snapshot.Ptr(rem),
		LightSleep: snapshot.Ptr(light),
	}
	snap.WeeklyTrends.AverageSleepScore = snapshot.Ptr(math.Round(mean(scores)))
	snap.WeeklyTrends.AverageSleepDuration = snapshot.Ptr(round1(mean(durations)))
}

func processHeartRate(snap *snapshot.Snapshot, resp *aggregateResponse) {
	values := collectValues(resp)
	if len(values) == 0 {
		return
	}

	minHR, maxHR := values[0], values[0]
	for _, v := range values {
		minHR = math.Min(minHR, v)
		maxHR = math.Max(maxHR, v)
	}

	snap.DailyStats.HeartRate = &snapshot.HeartRate{
		Resting: snapshot.Ptr(minHR),
		Average: snapshot.Ptr(math.Round(mean(values))),
		Max:     snapshot.Ptr(maxHR),
		Min:     snapshot.Ptr(minHR),
	}
	snap.WeeklyTrends.AverageRestingHR = snapshot.Ptr(minHR)
}

func processActivity(snap *snapshot.Snapshot, resp *aggregateResponse) {
	if resp == nil {
		return
	}

	// datasets arrive in request order: steps, calories, active minutes
	var totals [3]float64
	var seen [3]bool
	for _, b := range resp.Bucket {
		for i, ds := range b.Dataset {
			if i >= len(totals) {
				break
			}
			for _, p := range ds.Point {
				for _, v := range p.Value {
					totals[i] += v.float()
					seen[i] = true
				}
			}
		}
	}

	if !seen[0] && !seen[1] && !seen[2] {
		return
	}

	activity := &snapshot.Activity{}
	if seen[0] {
		activity.Steps = snapshot.Ptr(math.Round(totals[0]))
		snap.WeeklyTrends.AverageSteps = snapshot.Ptr(math.Round(totals[0]))
	}
	if seen[1] {
		activity.Calories = snapshot.Ptr(math.Round(totals[1]))
	}
	if seen[2] {
		activity.ActiveMinutes = snapshot.Ptr(math.Round(totals[2]))
	}
	snap.DailyStats.Activity = activity
}

func (v pointValue) float() float64 {
	if v.FpVal != nil {
		return *v.FpVal
	}
	if v.IntVal != nil {
		return float64(*v.IntVal)
	}
	return 0
}

func collectValues(resp *aggregateResponse) []float64 {
	if resp == nil {
		return nil
	}
	var values []float64
	for _, b := range resp.Bucket {
		for _, ds := range b.Dataset {
			for _, p := range ds.Point {
				for _, v := range p.Value {
					values = append(values, v.float())
				}
			}
		}
	}
	return values
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
