package catalog

import (
	"errors"
	"fmt"
	"net"
	"os"
)

// ErrorType represents the category of a catalog failure
type ErrorType int

const (
	// ErrTypeNetwork indicates the service could not be reached
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the request exceeded the client timeout
	ErrTypeTimeout
	// ErrTypeHTTP indicates a non-2xx response
	ErrTypeHTTP
	// ErrTypeNotFound indicates a 404 response
	ErrTypeNotFound
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeValidation indicates the request was rejected before it was sent
	ErrTypeValidation
	// ErrTypeUnknown indicates an unexpected failure
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is returned by every catalog operation.
type Error struct {
	Type       ErrorType
	Op         string // e.g. "GET /products/"
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Op, e.StatusCode, msg)
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

func newValidationError(msg string) *Error {
	return &Error{Type: ErrTypeValidation, Message: msg}
}

func newHTTPError(op string, status int, msg string) *Error {
	t := ErrTypeHTTP
	if status == 404 {
		t = ErrTypeNotFound
	}
	if msg == "" {
		msg = fmt.Sprintf("unexpected status %d", status)
	}
	return &Error{Type: t, Op: op, StatusCode: status, Message: msg}
}

func newParseError(op string, err error) *Error {
	return &Error{Type: ErrTypeParse, Op: op, Message: "invalid response body", Err: err}
}

// classifyTransportError maps an http.Client error to an ErrorType.
func classifyTransportError(op string, err error) *Error {
	if os.IsTimeout(err) {
		return &Error{Type: ErrTypeTimeout, Op: op, Message: "request timed out", Err: err}
	}

	var netErr net.Error
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) || errors.As(err, &netErr) {
		return &Error{Type: ErrTypeNetwork, Op: op, Message: "catalog service unreachable", Err: err}
	}

	return &Error{Type: ErrTypeUnknown, Op: op, Err: err}
}

// IsNotFound reports whether err is a 404 from the catalog.
func IsNotFound(err error) bool {
	return hasType(err, ErrTypeNotFound)
}

// IsValidation reports whether err was raised by local validation.
func IsValidation(err error) bool {
	return hasType(err, ErrTypeValidation)
}

// IsNetwork reports whether the service could not be reached.
func IsNetwork(err error) bool {
	return hasType(err, ErrTypeNetwork) || hasType(err, ErrTypeTimeout)
}

func hasType(err error, t ErrorType) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Type == t
	}
	return false
}
