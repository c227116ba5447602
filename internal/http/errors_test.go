package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	err := &Error{Kind: KindForbidden, StatusCode: 403}

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotErrorIs(t, err, ErrUnauthorized)

	wrapped := fmt.Errorf("fetching positions: %w", err)
	assert.ErrorIs(t, wrapped, ErrForbidden)
	assert.Equal(t, KindForbidden, KindOf(wrapped))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := newError(KindInvalidResponse, cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindUnauthorized, StatusCode: 401}, "unauthorized (status 401)"},
		{newError(KindInvalidURL, errors.New("missing host")), "invalidURL: missing host"},
		{&Error{Kind: KindInvalidResponse, StatusCode: 502, Err: errors.New("bad gateway")}, "invalidResponse (status 502): bad gateway"},
		{ErrCancelled, "cancelled"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, KindSerializationError, KindOf(ErrSerializationError))

	assert.True(t, IsCancelled(fmt.Errorf("outer: %w", newError(KindCancelled, nil))))
	assert.False(t, IsCancelled(ErrForbidden))
}
