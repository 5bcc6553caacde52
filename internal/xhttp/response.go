package xhttp

import (
	"net/http"

	go_json "github.com/goccy/go-json"
)

const ContentType = "Content-Type"

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	const headerName = "X-Request-ID"
	w.Header().Set(headerName, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	const applicationJSON = "application/json"
	w.Header().Set(ContentType, applicationJSON)
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	SetHeaderContentTypeApplicationJSON(w)
	w.WriteHeader(status)
	_ = go_json.NewEncoder(w).Encode(data)
}

func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func Error(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}
