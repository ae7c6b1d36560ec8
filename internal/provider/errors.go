// Package provider defines the failure taxonomy shared by all upstream
// source clients. Every error leaving a client is an *Error carrying a
// Kind, which the retry policy and the coordinators use to decide
// whether a failure is transient, fatal, or a schema problem.
package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an upstream failure.
type Kind int

const (
	// KindNetwork covers transport errors, timeouts, 5xx responses and
	// any other failure worth retrying.
	KindNetwork Kind = iota

	// KindAuth covers 401/403 responses. Indicates a bad or expired
	// credential; never retried.
	KindAuth

	// KindNotFound covers 404 responses. The resource does not exist
	// upstream; never retried.
	KindNotFound

	// KindParse covers payload bodies that could not be decoded. Not
	// retried: the same bytes would fail again.
	KindParse
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is a classified upstream failure.
type Error struct {
	// Kind is the failure classification.
	Kind Kind

	// Source names the upstream client that produced the failure.
	Source string

	// Status is the HTTP status code, when one was received.
	Status int

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("%s: %s error (status %d): %v", e.Source, e.Kind, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s error: %v", e.Source, e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s error (status %d)", e.Source, e.Kind, e.Status)
	default:
		return fmt.Sprintf("%s: %s error", e.Source, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth retrying.
func (e *Error) Retryable() bool {
	return e.Kind == KindNetwork
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(source string, err error) *Error {
	return &Error{Kind: KindNetwork, Source: source, Err: err}
}

// NewParseError wraps a payload decoding failure.
func NewParseError(source string, err error) *Error {
	return &Error{Kind: KindParse, Source: source, Err: err}
}

// ClassifyStatus converts a non-2xx HTTP status into a typed failure.
// 401 and 403 map to auth, 404 to not-found; everything else, including
// 5xx, is treated as a transient network failure.
func ClassifyStatus(source string, status int) *Error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &Error{Kind: KindAuth, Source: source, Status: status}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Source: source, Status: status}
	default:
		return &Error{Kind: KindNetwork, Source: source, Status: status}
	}
}

// KindOf extracts the failure kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// IsRetryable reports whether err may be retried. Errors that carry no
// classification are treated as transient so a plain transport error
// from the standard library still gets the retry budget.
func IsRetryable(err error) bool {
	if kind, ok := KindOf(err); ok {
		return kind == KindNetwork
	}
	return true
}
