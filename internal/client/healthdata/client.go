// Package healthdata fetches the health-data.json document the site
// publishes. Both sources satisfy presenter.Source.
package healthdata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Lucov/healthcard/internal/presenter"
	"github.com/Lucov/healthcard/internal/snapshot"
	"github.com/Lucov/healthcard/internal/xhttp"
	"github.com/Lucov/healthcard/internal/xslog"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.httpClient = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) { client.logger = logger }
}

func WithTimeout(d time.Duration) Option {
	return func(client *Client) { client.httpClient.Timeout = d }
}

func New(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: xhttp.NewHTTPClient(xhttp.WithTimeout(defaultTimeout)),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Fetch(ctx context.Context) (*snapshot.Snapshot, error) {
	c.logger.DebugContext(ctx, "fetching health data", xslog.URL(c.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching health data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching health data: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading health data: %w", err)
	}

	return snapshot.Parse(body)
}

// FileSource reads the snapshot from a local site checkout.
type FileSource struct {
	Path string
}

func (f *FileSource) Fetch(_ context.Context) (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading health data file: %w", err)
	}
	return snapshot.Parse(data)
}

// NewSource picks the HTTP client or the file source depending on
// whether location looks like a URL.
func NewSource(location string, opts ...Option) presenter.Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return New(location, opts...)
	}
	return &FileSource{Path: location}
}
