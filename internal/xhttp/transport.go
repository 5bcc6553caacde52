package xhttp

import (
	"fmt"
	"net/http"

	"github.com/Lucov/healthcard/internal/version"
)

type healthcardTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*healthcardTransport)(nil)

func (t *healthcardTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "healthcard/"+version.Get())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper with standard healthcard headers.
func NewTransport() http.RoundTripper {
	return &healthcardTransport{base: http.DefaultTransport}
}
