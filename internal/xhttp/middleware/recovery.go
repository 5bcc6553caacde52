package middleware

import (
	"net/http"

	"github.com/Lucov/healthcard/internal/xhttp"
	"github.com/Lucov/healthcard/internal/xslog"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				xslog.FromContext(r.Context()).ErrorContext(
					r.Context(),
					"panic recovered",
					xslog.RequestPath(r),
					xslog.ErrorAny(err),
					xslog.Stack(),
				)
				xhttp.Error(w, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
