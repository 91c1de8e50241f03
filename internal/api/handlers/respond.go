package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	// ConflictsWith names the colliding appointment on scheduling conflicts.
	ConflictsWith *int64 `json:"conflictsWith,omitempty"`
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError writes a JSON error body with the given status.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondBadRequest writes a 400 error.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized writes a 401 error.
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondNotFound writes a 404 error.
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondUnprocessable writes a 422 error, used for requests that parse but
// violate a business rule (bad references, illegal transitions, closed days).
func RespondUnprocessable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, message)
}

// RespondConflict writes a 409 error naming the colliding appointment.
func RespondConflict(w http.ResponseWriter, message string, withAppointmentID int64) {
	resp := ErrorResponse{Code: http.StatusConflict, Message: message}
	if withAppointmentID > 0 {
		resp.ConflictsWith = &withAppointmentID
	}
	RespondJSON(w, http.StatusConflict, resp)
}

// RespondBusy writes a 503: the partition is under contention and the client
// should retry.
func RespondBusy(w http.ResponseWriter, message string) {
	w.Header().Set("Retry-After", "1")
	RespondError(w, http.StatusServiceUnavailable, message)
}

// RespondInternalError writes a generic 500.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "internal server error")
}
