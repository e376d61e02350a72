package shreeng

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a typed engine error carrying the HTTP status plus the
// optional machine code and message from the error body.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Status  int    `json:"status"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("shreeng: %s (status %d, code %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("shreeng: %s (status %d)", e.Message, e.Status)
}

// timeoutError builds the 408 error produced when a request exceeds its
// deadline.
func timeoutError() *APIError {
	return &APIError{Message: "request timeout", Status: http.StatusRequestTimeout}
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsTimeout reports whether the error is a request timeout (status 408).
func IsTimeout(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Status == http.StatusRequestTimeout
}

// IsNotFound reports whether the error is a 404 from the engine.
func IsNotFound(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Status == http.StatusNotFound
}
