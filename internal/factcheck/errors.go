package factcheck

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeEmptyResult = "EXTRACTION_EMPTY"
	CodeTransport   = "TRANSPORT_ERROR"
)

// Operations, used in error context and the event log.
const (
	OpExtract = "extract_claims"
	OpCheck   = "check"
)

// Error is the single error family for everything that can stop a check.
type Error struct {
	Code       string
	Message    string
	Op         string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidationError reports input rejected before any network call.
func NewValidationError(op, message string) *Error {
	return &Error{Code: CodeValidation, Op: op, Message: message}
}

// NewEmptyResultError reports a successful extraction that found nothing.
func NewEmptyResultError() *Error {
	return &Error{Code: CodeEmptyResult, Op: OpExtract, Message: "no claims extracted"}
}

// NewTransportError reports a failed call. status is 0 for network failures.
func NewTransportError(op string, status int, message string, cause error) *Error {
	return &Error{Code: CodeTransport, Op: op, StatusCode: status, Message: message, Cause: cause}
}

// Code returns the code of the first *Error in err's chain, or "".
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return Code(err) == CodeValidation }

// IsEmptyResult reports whether err is an empty extraction.
func IsEmptyResult(err error) bool { return Code(err) == CodeEmptyResult }

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool { return Code(err) == CodeTransport }
