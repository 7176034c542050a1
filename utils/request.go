package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

var (
	// ErrEmptyBody is returned when a body is required but none was sent
	ErrEmptyBody = errors.New("request body is empty")

	// ErrBodyTooLarge is returned when the body exceeds the server limit
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrUnsupportedMediaType is returned for bodies that are neither JSON nor form encoded
	ErrUnsupportedMediaType = errors.New("unsupported content type")
)

// DecodeJSON decodes a single JSON object from the request body into dst.
// Unknown fields are rejected.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return classifyDecodeError(err)
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("request body must contain a single JSON object")
	}

	return nil
}

// DecodeForm fills dst from an urlencoded form by round-tripping the form
// values through JSON, so dst's json tags name the form fields.
func DecodeForm(r *http.Request, dst interface{}) error {
	if err := r.ParseForm(); err != nil {
		return classifyDecodeError(err)
	}
	if len(r.PostForm) == 0 {
		return ErrEmptyBody
	}

	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid form body: %w", err)
	}
	return nil
}

// DecodeBody picks DecodeJSON or DecodeForm from the Content-Type header.
// A missing Content-Type is treated as JSON.
func DecodeBody(r *http.Request, dst interface{}) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return DecodeJSON(r, dst)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ErrUnsupportedMediaType
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return DecodeJSON(r, dst)
	case mediaType == "application/x-www-form-urlencoded":
		return DecodeForm(r, dst)
	default:
		return ErrUnsupportedMediaType
	}
}

// WriteDecodeError writes the response matching a DecodeBody failure
func WriteDecodeError(w http.ResponseWriter, err error) error {
	if errors.Is(err, ErrBodyTooLarge) {
		return WriteRequestTooLarge(w)
	}
	if errors.Is(err, ErrUnsupportedMediaType) {
		return WriteError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json or application/x-www-form-urlencoded", nil)
	}
	return WriteBadRequest(w, "Invalid request body", map[string]interface{}{
		"error": err.Error(),
	})
}

func classifyDecodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return ErrBodyTooLarge
	}
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	return err
}
