// Package apperr defines the closed set of failures surfaced by the CLI.
// Every error that reaches the user is an *Error carrying one Kind.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuth
	KindConfig
	KindAPI
	KindNetwork
	KindValidation
	KindNotFound
	KindForbidden
	KindRateLimited
	KindURLParse
	KindJSON
	KindIO
)

// DefaultRetryAfter is used when a rate-limited response carries no parseable Retry-After header.
const DefaultRetryAfter = 60

var kindNames = map[Kind]string{
	KindUnknown:     "unknown",
	KindAuth:        "auth",
	KindConfig:      "config",
	KindAPI:         "api",
	KindNetwork:     "network",
	KindValidation:  "validation",
	KindNotFound:    "not_found",
	KindForbidden:   "forbidden",
	KindRateLimited: "rate_limited",
	KindURLParse:    "url_parse",
	KindJSON:        "json",
	KindIO:          "io",
}

// String returns the snake_case name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified failure. Status is set for KindAPI, RetryAfter for
// KindRateLimited. Err holds the underlying cause, if any.
type Error struct {
	Kind       Kind
	Status     int
	Message    string
	RetryAfter int
	Err        error
}

// Error renders the user-facing message for e.Kind.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	switch e.Kind {
	case KindAuth:
		return "Authentication failed: " + e.detail()
	case KindConfig:
		return "Configuration error: " + e.detail()
	case KindAPI:
		return fmt.Sprintf("API error (%d): %s", e.Status, e.detail())
	case KindNetwork:
		return "Network error: " + e.detail()
	case KindValidation:
		return "Invalid input: " + e.detail()
	case KindNotFound:
		return "Issue not found: " + e.detail()
	case KindForbidden:
		return "Permission denied: " + e.detail()
	case KindRateLimited:
		return fmt.Sprintf("Rate limited. Retry after %d seconds", e.RetryAfter)
	case KindURLParse:
		return "URL parse error: " + e.detail()
	case KindJSON:
		return "JSON error: " + e.detail()
	case KindIO:
		return "IO error: " + e.detail()
	default:
		return e.detail()
	}
}

func (e *Error) detail() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Auth reports missing or rejected credentials.
func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

// Config reports unusable configuration.
func Config(msg string) *Error {
	return &Error{Kind: KindConfig, Message: msg}
}

// ConfigWrap classifies a configuration failure with its cause.
func ConfigWrap(msg string, err error) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf("%s: %v", msg, err), Err: err}
}

// API reports an unexpected HTTP status from the server.
func API(status int, msg string) *Error {
	return &Error{Kind: KindAPI, Status: status, Message: msg}
}

// Network wraps a transport failure.
func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

// Validation reports bad user input detected before any request is sent.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound reports a 404 from the server.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Forbidden reports a 403 from the server.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// RateLimited builds a KindRateLimited error asking the caller to wait retryAfter seconds.
func RateLimited(retryAfter int) *Error {
	return &Error{Kind: KindRateLimited, RetryAfter: retryAfter}
}

// URLParse wraps a malformed server URL.
func URLParse(err error) *Error {
	return &Error{Kind: KindURLParse, Err: err}
}

// JSON wraps an encoding or decoding failure.
func JSON(err error) *Error {
	return &Error{Kind: KindJSON, Err: err}
}

// IO wraps a filesystem failure.
func IO(err error) *Error {
	return &Error{Kind: KindIO, Err: err}
}
