// Package apierrors defines the error taxonomy shared by the transport
// and request-coordination layers.
//
// The four kinds map directly to how the upstream API fails:
//
//   - ConnectError: network failure, timeout, or any unclassified 4xx/5xx.
//   - RateLimitError: the API answered 429.
//   - NotFoundError: the API answered 404.
//   - FormatError: the payload arrived but did not match the expected shape.
//
// Callers match with errors.As, or the IsX helpers for the common cases.
package apierrors

import (
	"errors"
	"fmt"
)

// ConnectError reports a failure to reach the API or an unexpected
// server-side status. It is usually transient.
type ConnectError struct {
	URL string
	Err error
}

func (e *ConnectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("truckersmp: connecting to %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("truckersmp: connecting to %s failed", e.URL)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// RateLimitError reports an explicit 429 from the API. Under the default
// limiter configuration this should not happen.
type RateLimitError struct {
	URL string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("truckersmp: rate limited by the API at %s", e.URL)
}

// NotFoundError reports that the requested resource does not exist, such
// as a player ID that was never registered.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("truckersmp: resource not found at %s", e.URL)
}

// FormatError reports a response that could not be decoded into the
// expected model. It indicates an upstream contract change, not a
// transient condition, and is never cached or retried.
type FormatError struct {
	What string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("truckersmp: decoding %s: %v", e.What, e.Err)
	}
	return fmt.Sprintf("truckersmp: response for %s was not in the expected format", e.What)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConnect reports whether err is (or wraps) a ConnectError.
func IsConnect(err error) bool {
	var ce *ConnectError
	return errors.As(err, &ce)
}

// IsRateLimit reports whether err is (or wraps) a RateLimitError.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}
