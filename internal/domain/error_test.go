package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"code only", &Error{Code: CodeUnavailable}, "UNAVAILABLE"},
		{"code and message", &Error{Code: CodeRateLimited, Message: "403 Forbidden"}, "RATE_LIMITED: 403 Forbidden"},
		{"op and code", &Error{Code: CodeEmptyResult, Op: "aggregator.Search"}, "aggregator.Search: EMPTY_RESULT"},
		{
			"op, code and message",
			&Error{Code: CodeUnavailable, Op: "github.SearchRepositories", Message: "connection refused"},
			"github.SearchRepositories: UNAVAILABLE: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestE_MessageFromCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := E(CodeUnavailable, "op", "", cause)
	assert.Equal(t, "dial tcp: connection refused", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestWrap_PreservesExistingCode(t *testing.T) {
	inner := E(CodeRateLimited, "github.SearchRepositories", "403", ErrRateLimited)
	wrapped := Wrap(CodeUnavailable, "aggregator.Search", inner)

	code, ok := CodeFrom(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeRateLimited, code)
	assert.ErrorIs(t, wrapped, ErrRateLimited)
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(CodeInternal, "op", nil))
}

func TestCodeFrom_Sentinels(t *testing.T) {
	tests := []struct {
		err      error
		expected ErrorCode
	}{
		{ErrRateLimited, CodeRateLimited},
		{ErrEmptyResult, CodeEmptyResult},
		{ErrMalformedResponse, CodeEmptyResult},
	}
	for _, tt := range tests {
		code, ok := CodeFrom(tt.err)
		require.True(t, ok)
		assert.Equal(t, tt.expected, code)
	}

	_, ok := CodeFrom(errors.New("plain"))
	assert.False(t, ok)
	_, ok = CodeFrom(nil)
	assert.False(t, ok)
}
