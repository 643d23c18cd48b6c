package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/asoclibre/members-api/internal/app/debts"
	"github.com/asoclibre/members-api/internal/app/signup"
)

type errorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	body := errorResponse{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		body.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeAppError maps known application-layer errors onto the error envelope;
// anything unrecognized becomes a 500.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	if se := (*signup.Error)(nil); errors.As(err, &se) {
		writeError(w, r, se.Status, se.Code, se.Message, se.Details)
		return
	}
	if de := (*debts.Error)(nil); errors.As(err, &de) {
		writeError(w, r, de.Status, de.Code, de.Message, de.Details)
		return
	}
	writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
