package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest means the request URL could not be built.
	ErrInvalidRequest = errors.New("store: invalid request")
	// ErrNoData means the response body was empty where rows were expected.
	ErrNoData = errors.New("store: no data in response")
	// ErrUnauthorized maps HTTP 401.
	ErrUnauthorized = errors.New("store: unauthorized")
	// ErrNotFound maps HTTP 404.
	ErrNotFound = errors.New("store: not found")
)

// EncodeError reports a request body that could not be serialized.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("store: encode request: %v", e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports a response body that did not match the expected shape.
// It is distinct from transport failures so callers can tell a malformed row
// apart from a dead connection.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("store: decode response: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// ServerError covers transport failures and any non-2xx status not claimed by
// a more specific error, carrying server-provided text when available.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Status == 0 {
		return "store: " + e.Message
	}
	return fmt.Sprintf("store: status %d: %s", e.Status, e.Message)
}
