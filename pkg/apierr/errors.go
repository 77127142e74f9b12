// Package apierr defines the closed set of error kinds returned by the
// Instagram API client.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies an error. The set is closed: every error produced by this
// module carries exactly one of these kinds.
type Kind string

const (
	// KindValidation is an invalid argument, detected before any I/O.
	KindValidation Kind = "validation"

	// KindUpstream covers transport failures, non-2xx responses and
	// upstream-reported failures (status "fail").
	KindUpstream Kind = "upstream"

	// KindDecoding is a response body that does not match the expected envelope.
	KindDecoding Kind = "decoding"

	// KindCacheBackend is an unreachable key-value store or malformed stored data.
	KindCacheBackend Kind = "cache_backend"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation   = errors.New("validation error")
	ErrUpstream     = errors.New("upstream error")
	ErrDecoding     = errors.New("decoding error")
	ErrCacheBackend = errors.New("cache backend error")
)

var kindSentinels = map[Kind]error{
	KindValidation:   ErrValidation,
	KindUpstream:     ErrUpstream,
	KindDecoding:     ErrDecoding,
	KindCacheBackend: ErrCacheBackend,
}

// Error is the error type returned across package boundaries.
type Error struct {
	Kind Kind

	// Op names the operation that failed (e.g. "user_posts", "cache append").
	Op string

	// Message is a human-readable cause.
	Message string

	// StatusCode is the upstream HTTP status, 0 when not applicable.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Kind)
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// Validation returns a KindValidation error.
func Validation(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// Upstream returns a KindUpstream error. statusCode is 0 for transport failures.
func Upstream(op, message string, statusCode int, err error) *Error {
	return &Error{Kind: KindUpstream, Op: op, Message: message, StatusCode: statusCode, Err: err}
}

// Decoding returns a KindDecoding error wrapping err.
func Decoding(op string, err error) *Error {
	return &Error{Kind: KindDecoding, Op: op, Message: "malformed response body", Err: err}
}

// CacheBackend returns a KindCacheBackend error wrapping err.
func CacheBackend(op string, err error) *Error {
	return &Error{Kind: KindCacheBackend, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
