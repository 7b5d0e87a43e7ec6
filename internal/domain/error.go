package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	CodeUnavailable      ErrorCode = "UNAVAILABLE"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"
	CodeEmptyResult      ErrorCode = "EMPTY_RESULT"
	CodeDeadlineExceeded ErrorCode = "DEADLINE_EXCEEDED"
	CodeCanceled         ErrorCode = "CANCELED"
	CodeInternal         ErrorCode = "INTERNAL"
)

// Sentinel errors for the provider failure modes the aggregator
// distinguishes.
var (
	// ErrRateLimited marks a 403/429-class quota response from the search
	// provider. Never retried within a call.
	ErrRateLimited = errors.New("provider rate limited")
	// ErrEmptyResult marks a well-formed response carrying zero items.
	ErrEmptyResult = errors.New("provider returned no results")
	// ErrMalformedResponse marks a 2xx response whose body could not be
	// decoded. Treated like an empty result by the fallback policy.
	ErrMalformedResponse = errors.New("malformed provider response")
)

type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

func Wrap(code ErrorCode, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		if existing.Op != "" || op == "" {
			return existing
		}
		return &Error{
			Code:    existing.Code,
			Op:      op,
			Message: existing.Message,
			Cause:   existing.Cause,
		}
	}
	return E(code, op, "", err)
}

// CodeFrom classifies an error into an ErrorCode, mapping the sentinel
// provider errors when no explicit code is attached.
func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited, true
	case errors.Is(err, ErrEmptyResult), errors.Is(err, ErrMalformedResponse):
		return CodeEmptyResult, true
	default:
		return "", false
	}
}
