// Package errors provides the status-code taxonomy shared by the
// service façade and the client driver: every failure the protocol can
// report is a *StatusError carrying one of a small set of Codes, in
// the spirit of a conventional BaseError/ErrorCode framework.
package errors

import (
	"fmt"
	"strings"
)

// Code categorizes a StatusError for status-code mapping at the RPC
// boundary.
type Code string

const (
	// AlreadyExists is returned when Register is called for a user_id
	// that already exists.
	AlreadyExists Code = "ALREADY_EXISTS"
	// NotFound is returned when a referenced user or challenge is
	// unknown.
	NotFound Code = "NOT_FOUND"
	// FailedPrecondition is returned when a submitted proof does not
	// verify.
	FailedPrecondition Code = "FAILED_PRECONDITION"
	// AlreadyUsed is returned when a challenge has already been
	// finalized by a prior successful VerifyAuthentication.
	AlreadyUsed Code = "ALREADY_USED"
	// InvalidArgument is returned for malformed input (empty user,
	// non-scalar bytes where a scalar is required).
	InvalidArgument Code = "INVALID_ARGUMENT"
	// Internal marks a condition the server considers impossible.
	Internal Code = "INTERNAL"
)

// StatusError is the error type every service and client operation in
// this module returns on failure.
type StatusError struct {
	code    Code
	message string
	cause   error
}

// New creates a StatusError with the given code and message.
func New(code Code, message string) *StatusError {
	return &StatusError{code: code, message: message}
}

// Newf creates a StatusError with a formatted message.
func Newf(code Code, format string, args ...interface{}) *StatusError {
	return &StatusError{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap creates a StatusError that records cause as its underlying
// error, so Unwrap / errors.Is / errors.As keep working.
func Wrap(code Code, message string, cause error) *StatusError {
	return &StatusError{code: code, message: message, cause: cause}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Unwrap returns the wrapped cause, if any.
func (e *StatusError) Unwrap() error {
	return e.cause
}

// Code returns the status code.
func (e *StatusError) Code() Code {
	return e.code
}

// Is reports whether target is a *StatusError with the same code,
// so callers can write `errors.Is(err, errors.New(errors.NotFound, ""))`
// or, more idiomatically, compare via CodeOf.
func (e *StatusError) Is(target error) bool {
	other, ok := target.(*StatusError)
	if !ok {
		return false
	}
	return e.code == other.code
}

// CodeOf extracts the Code from err if it is (or wraps) a
// *StatusError, and reports Internal, false otherwise.
func CodeOf(err error) (Code, bool) {
	var se *StatusError
	for err != nil {
		if s, ok := err.(*StatusError); ok {
			se = s
			break
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	if se == nil {
		return Internal, false
	}
	return se.code, true
}

// allCodes lists every known Code, in the order ParseWireError tries
// them when recovering a code from a transport that has no dedicated
// status channel (net/rpc serializes errors as a plain string).
var allCodes = []Code{AlreadyExists, NotFound, FailedPrecondition, AlreadyUsed, InvalidArgument, Internal}

// ParseWireError recovers the original Code and message from a
// StatusError's Error() string after it has crossed a transport that
// only preserves the error's text, such as net/rpc. It returns a
// *StatusError reconstructed from the "[CODE] message" prefix, or the
// original error unchanged if it doesn't match that shape.
func ParseWireError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, code := range allCodes {
		prefix := "[" + string(code) + "] "
		if strings.HasPrefix(msg, prefix) {
			return &StatusError{code: code, message: strings.TrimPrefix(msg, prefix)}
		}
	}
	return err
}
