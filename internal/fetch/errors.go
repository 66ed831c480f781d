package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// HttpError is a non-2xx response. Message is the server's "message" field
// when the body carried one, the status text otherwise.
type HttpError struct {
	Status  int
	Message string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

func (e *HttpError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// NetworkError means no response was received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError is a 2xx response whose body did not match the expected schema.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsNetworkFailure reports fetch-level failures: no response or an unreadable one.
func IsNetworkFailure(err error) bool {
	var netErr *NetworkError
	var parseErr *ParseError
	return errors.As(err, &netErr) || errors.As(err, &parseErr)
}

// AsHttpError returns the wrapped HttpError, if any.
func AsHttpError(err error) (*HttpError, bool) {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
