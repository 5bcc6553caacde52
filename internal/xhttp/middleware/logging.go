package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lucov/healthcard/internal/xcontext"
	"github.com/Lucov/healthcard/internal/xslog"
)

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		attrs := []any{
			xslog.RequestMethod(r),
			xslog.RequestPath(r),
			xslog.HTTPStatus(wrapped.status),
			xslog.Duration(time.Since(start)),
		}
		if id, ok := xcontext.GetRequestID(r.Context()); ok {
			attrs = append(attrs, xslog.RequestID(id))
		}
		if q := r.URL.RawQuery; q != "" {
			attrs = append(attrs, slog.String("query", q))
		}

		xslog.FromContext(r.Context()).InfoContext(r.Context(), "http request", attrs...)
	})
}
