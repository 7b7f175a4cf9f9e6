package config

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		Log.WithError(err).Error("Failed to encode JSON response")
	}
}

// Problem is the error envelope returned for every failed request.
type Problem struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"traceId"`
}

func TraceID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)

	p := Problem{
		Type:    "about:blank",
		Title:   http.StatusText(status),
		Status:  status,
		Detail:  detail,
		TraceID: TraceID(r),
	}
	if status == http.StatusInternalServerError {
		p.Detail = ""
	}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		Log.WithError(err).Error("Failed to encode problem response")
	}
}

// WriteError maps a service error onto its status. Unexpected errors are
// logged and answered with a bare 500 envelope.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		WithContext(r.Context()).WithError(err).Errorf("Unhandled error on %s %s", r.Method, r.URL.Path)
	}
	WriteProblem(w, r, status, err.Error())
}
