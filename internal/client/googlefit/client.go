// Package googlefit pulls sleep, heart rate, and activity data from the
// Google Fitness REST API and assembles it into a health-data snapshot.
// It replaces manual Samsung Health CSV exports for users who sync to
// Health Connect.
package googlefit

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/Lucov/healthcard/internal/snapshot"
	"github.com/Lucov/healthcard/internal/xhttp"
)

const (
	defaultBaseURL = "https://www.googleapis.com/fitness/v1"
	defaultTimeout = 30 * time.Second

	sleepActivityType = 72
	dayMillis         = 24 * 60 * 60 * 1000
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func New(tokenSource oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Base: xhttp.NewTransport(), Source: tokenSource},
			Timeout:   defaultTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSnapshot pulls the three data categories in parallel and builds a
// snapshot. A failed category is logged and skipped; the snapshot carries
// whatever succeeded, mirroring the converter's partial-data tolerance.
func (c *Client) FetchSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	now := time.Now().UTC()

	var (
		sessions []sleepSession
		hr       *aggregateResponse
		activity *aggregateResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = c.sleepSessions(gctx, now, 7)
		if err != nil {
			c.logger.WarnContext(gctx, "sleep fetch failed", slog.String("error", err.Error()))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		hr, err = c.aggregate(gctx, now, 1, []string{"com.google.heart_rate.bpm"})
		if err != nil {
			c.logger.WarnContext(gctx, "heart rate fetch failed", slog.String("error", err.Error()))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		activity, err = c.aggregate(gctx, now, 1, []string{
			"com.google.step_count.delta",
			"com.google.calories.expended",
			"com.google.active_minutes",
		})
		if err != nil {
			c.logger.WarnContext(gctx, "activity fetch failed", slog.String("error", err.Error()))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &snapshot.Snapshot{
		LastUpdated: now.Format(time.RFC3339),
		DataSource:  "Google Fit API",
		DailyStats: &snapshot.DailyStats{
			Date: now.Format("2006-01-02"),
		},
		WeeklyTrends: &snapshot.WeeklyTrends{},
	}

	processSleep(snap, sessions)
	processHeartRate(snap, hr)
	processActivity(snap, activity)

	if !hasAnyGroup(snap) {
		return nil, fmt.Errorf("no health data could be fetched")
	}

	return snap, nil
}

func (c *Client) sleepSessions(ctx context.Context, now time.Time, days int) ([]sleepSession, error) {
	start := now.AddDate(0, 0, -days)

	query := url.Values{}
	query.Set("startTime", start.Format(time.RFC3339))
	query.Set("endTime", now.Format(time.RFC3339))
	query.Set("activityType", strconv.Itoa(sleepActivityType))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me/sessions?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var resp sessionsResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Session, nil
}

func (c *Client) aggregate(ctx context.Context, now time.Time, days int, dataTypes []string) (*aggregateResponse, error) {
	start := now.AddDate(0, 0, -days)

	reqBody := aggregateRequest{
		BucketByTime:    bucketByTime{DurationMillis: dayMillis},
		StartTimeMillis: start.UnixMilli(),
		EndTimeMillis:   now.UnixMilli(),
	}
	for _, dt := range dataTypes {
		reqBody.AggregateBy = append(reqBody.AggregateBy, aggregateBy{DataTypeName: dt})
	}

	body, err := go_json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/me/dataset:aggregate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(xhttp.ContentType, "application/json")

	var resp aggregateResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(req *http.Request, result any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := go_json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func hasAnyGroup(snap *snapshot.Snapshot) bool {
	daily := snap.DailyStats
	return daily.Sleep != nil || daily.HeartRate != nil || daily.Activity != nil
}
