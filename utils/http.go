package utils

import (
	"encoding/json"
	"net/http"
)

// Error codes sent in the "error" field of a failed response
const (
	CodeInvalidRequest       = "invalid_request"
	CodeUnauthenticated      = "unauthenticated"
	CodeForbidden            = "forbidden"
	CodeNotFound             = "not_found"
	CodeConflict             = "conflict"
	CodeBodyTooLarge         = "body_too_large"
	CodeUnsupportedMediaType = "unsupported_media_type"
	CodeInternal             = "internal"
)

type errorKind struct {
	code    string
	message string
}

// errorKinds lists every failure status the portal answers with.
// Statuses missing here are reported as CodeInternal.
var errorKinds = map[int]errorKind{
	http.StatusBadRequest:            {CodeInvalidRequest, "The request could not be processed"},
	http.StatusUnauthorized:          {CodeUnauthenticated, "Sign in to continue"},
	http.StatusForbidden:             {CodeForbidden, "Your role does not allow this action"},
	http.StatusNotFound:              {CodeNotFound, "Nothing matches the requested resource"},
	http.StatusConflict:              {CodeConflict, "The resource conflicts with existing data"},
	http.StatusRequestEntityTooLarge: {CodeBodyTooLarge, "Request body exceeds the configured limit"},
	http.StatusUnsupportedMediaType:  {CodeUnsupportedMediaType, "Unsupported Content-Type"},
	http.StatusInternalServerError:   {CodeInternal, "Something went wrong on our side"},
}

// ErrorResponse is the body of every 4xx and 5xx answer
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SuccessResponse wraps a payload under "data"
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// WriteJSON encodes body with status. A nil body writes headers only.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(body)
}

func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError sends an ErrorResponse whose code is derived from status.
// An empty message falls back to the status default.
func WriteError(w http.ResponseWriter, status int, message string, details map[string]interface{}) error {
	kind, ok := errorKinds[status]
	if !ok {
		kind = errorKinds[http.StatusInternalServerError]
	}
	if message == "" {
		message = kind.message
	}
	return WriteJSON(w, status, ErrorResponse{
		Error:   kind.code,
		Message: message,
		Details: details,
	})
}

// WriteBadRequest answers 400; details usually hold per-field validation messages
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]interface{}) error {
	return WriteError(w, http.StatusBadRequest, message, details)
}

// WriteUnauthorized answers 401 for requests without a resolved identity
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, nil)
}

// WriteForbidden answers 403 for identities whose role is not admitted
func WriteForbidden(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusForbidden, message, nil)
}

func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, nil)
}

func WriteConflict(w http.ResponseWriter, message string, details map[string]interface{}) error {
	return WriteError(w, http.StatusConflict, message, details)
}

// WriteRequestTooLarge answers 413 once LimitBody has cut the body off
func WriteRequestTooLarge(w http.ResponseWriter) error {
	return WriteError(w, http.StatusRequestEntityTooLarge, "", nil)
}

// WriteInternalServerError answers 500. Callers log the cause; message must not leak it.
func WriteInternalServerError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, nil)
}
