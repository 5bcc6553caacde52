package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lucov/healthcard/internal/xhttp"
)

func TestGzip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		acceptEncoding     string
		responseBody       string
		existingEncoding   string
		wantCompressed     bool
		wantVaryHeader     bool
		wantContentEncoded bool
	}{
		{
			name:               "small response not compressed",
			acceptEncoding:     "gzip",
			responseBody:       "small",
			wantCompressed:     false,
			wantVaryHeader:     true,
			wantContentEncoded: false,
		},
		{
			name:               "large response compressed",
			acceptEncoding:     "gzip",
			responseBody:       strings.Repeat("x", 2000),
			wantCompressed:     true,
			wantVaryHeader:     true,
			wantContentEncoded: true,
		},
		{
			name:               "exactly 1KB compressed",
			acceptEncoding:     "gzip",
			responseBody:       strings.Repeat("y", 1024),
			wantCompressed:     true,
			wantVaryHeader:     true,
			wantContentEncoded: true,
		},
		{
			name:               "no accept-encoding header",
			acceptEncoding:     "",
			responseBody:       strings.Repeat("x", 2000),
			wantCompressed:     false,
			wantVaryHeader:     false,
			wantContentEncoded: false,
		},
		{
			name:               "accept-encoding without gzip",
			acceptEncoding:     "deflate, br",
			responseBody:       strings.Repeat("x", 2000),
			wantCompressed:     false,
			wantVaryHeader:     false,
			wantContentEncoded: false,
		},
		{
			name:               "already encoded response",
			acceptEncoding:     "gzip",
			responseBody:       strings.Repeat("x", 2000),
			existingEncoding:   "br",
			wantCompressed:     false,
			wantVaryHeader:     true,
			wantContentEncoded: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.existingEncoding != "" {
					w.Header().Set(xhttp.ContentEncoding, tt.existingEncoding)
				}
				_, _ = w.Write([]byte(tt.responseBody))
			})

			wrapped := Gzip(handler)

			req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/api/health-data", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set(xhttp.AcceptEncoding, tt.acceptEncoding)
			}

			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close() //nolint:errcheck

			gotVary := resp.Header.Get(xhttp.Vary)
			if tt.wantVaryHeader && gotVary != xhttp.AcceptEncoding {
				t.Errorf("Vary header = %q, want %q", gotVary, xhttp.AcceptEncoding)
			}
			if !tt.wantVaryHeader && gotVary != "" {
				t.Errorf("Vary header = %q, want empty", gotVary)
			}

			gotEncoding := resp.Header.Get(xhttp.ContentEncoding)
			if tt.wantContentEncoded && gotEncoding != gzipEncoding {
				t.Errorf("Content-Encoding = %q, want %q", gotEncoding, gzipEncoding)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("reading body: %v", err)
			}

			if tt.wantCompressed {
				gr, err := gzip.NewReader(bytes.NewReader(body))
				if err != nil {
					t.Fatalf("expected gzip body: %v", err)
				}
				defer gr.Close() //nolint:errcheck
				decompressed, err := io.ReadAll(gr)
				if err != nil {
					t.Fatalf("decompressing body: %v", err)
				}
				if string(decompressed) != tt.responseBody {
					t.Errorf("decompressed body mismatch: got %d bytes, want %d", len(decompressed), len(tt.responseBody))
				}
			} else if string(body) != tt.responseBody {
				t.Errorf("body mismatch: got %d bytes, want %d", len(body), len(tt.responseBody))
			}
		})
	}
}
