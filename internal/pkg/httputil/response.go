package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/ignite/social-api/internal/pkg/logger"
)

// ErrorResponse is the standard error envelope for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	ErrorID string `json:"error_id,omitempty"`
}

// JSON writes a JSON response with the given status code. The data is
// serialized and Content-Type is set automatically.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("json encode failed", "error", err)
	}
}

// OK writes a 200 response with the given data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Empty writes a 200 response with no body. Used where a lookup miss is
// answered as "nothing here" rather than as an error.
func Empty(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// Error writes a JSON error response. Use for client errors (4xx).
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// BadRequest writes a 400 error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 error.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// InternalError writes a 500 error. The real error is logged under a fresh
// error id; the client only sees a generic message and that id.
func InternalError(w http.ResponseWriter, err error) {
	id := uuid.NewString()
	logger.Error("internal error", "error_id", id, "error", err)
	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal server error",
		Code:    "internal",
		ErrorID: id,
	})
}

// MaxBodyBytes caps request bodies read by Decode.
const MaxBodyBytes = 16 * 1024

// Decode reads JSON from the request body into dst.
// Returns false and writes a 413 for bodies over MaxBodyBytes, or a 400 if
// parsing fails.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", MaxBodyBytes))
			return false
		}
		BadRequest(w, "invalid JSON: "+err.Error())
		return false
	}
	return true
}
