package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/security"
	"estatehub-backend/internal/service"
)

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeErrorKind(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: kind, Message: message})
}

// writeError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as 500 without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	body := errorBody{Message: err.Error()}
	status := http.StatusInternalServerError

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		status, body.Error, body.Fields = http.StatusBadRequest, "validation", verr.Fields
	case errors.Is(err, service.ErrValidation):
		status, body.Error = http.StatusBadRequest, "validation"
	case errors.Is(err, service.ErrInvalidRole):
		status, body.Error = http.StatusBadRequest, "invalid_role"
	case errors.Is(err, service.ErrNotFound):
		status, body.Error = http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrForbidden):
		status, body.Error = http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrAlreadyBooked):
		status, body.Error = http.StatusConflict, "already_booked"
	case errors.Is(err, service.ErrDateConflict):
		status, body.Error = http.StatusConflict, "date_conflict"
	case errors.Is(err, service.ErrConflict):
		status, body.Error = http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrInvalidState):
		status, body.Error = http.StatusUnprocessableEntity, "invalid_state"
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType),
		errors.Is(err, errNoCaller):
		status, body.Error = http.StatusUnauthorized, "unauthorized"
	default:
		logger.FromContext(r.Context()).Error("Request failed", "path", r.URL.Path, "error", err)
		body.Error, body.Message = "internal", "internal server error"
	}
	writeJSON(w, status, body)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &service.ValidationError{Fields: map[string]string{"body": "malformed JSON: " + err.Error()}}
	}
	return nil
}
