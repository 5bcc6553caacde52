package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

const keyError = "error"

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func ErrorAny(err any) slog.Attr {
	return slog.Any(keyError, err)
}

func Reason(reason string) slog.Attr {
	const reasonKey = "reason"
	return slog.String(reasonKey, reason)
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func Path(path string) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, path)
}

func URL(url string) slog.Attr {
	const urlKey = "url"
	return slog.String(urlKey, url)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Source(source string) slog.Attr {
	const sourceKey = "source"
	return slog.String(sourceKey, source)
}
