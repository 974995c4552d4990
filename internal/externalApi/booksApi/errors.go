package booksApi

import (
	"errors"
	"net/http"
)

// ErrNotFound marks a missing edit/delete target so handlers can tell
// it apart from other transport failures.
var ErrNotFound = errors.New("book not found")

// StatusError carries the human-readable message derived from a
// non-success response status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

var statusMessages = map[int]string{
	http.StatusBadRequest:          "The request could not be understood by the server",
	http.StatusUnauthorized:        "You are not authorized to perform this action",
	http.StatusForbidden:           "Access to the requested resource is forbidden",
	http.StatusNotFound:            "The requested resource could not be found",
	http.StatusInternalServerError: "The server encountered an unexpected condition",
	http.StatusBadGateway:          "The server received an invalid response from upstream",
	http.StatusServiceUnavailable:  "The server is temporarily unavailable",
}

func statusError(code int) error {
	if code == http.StatusNotFound {
		return ErrNotFound
	}

	msg, ok := statusMessages[code]
	if !ok {
		msg = "An unexpected error occurred"
	}
	return &StatusError{Code: code, Message: msg}
}
