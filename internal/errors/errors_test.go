package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(NotFound, "user not found")
	assert.Equal(t, NotFound, err.Code())
	assert.Equal(t, "[NOT_FOUND] user not found", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(FailedPrecondition, "proof mismatch for auth_id %s", "abc-123")
	assert.Equal(t, FailedPrecondition, err.Code())
	assert.Contains(t, err.Error(), "abc-123")
}

func TestWrap_Unwraps(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(Internal, "transport failure", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIs(t *testing.T) {
	a := New(AlreadyUsed, "already used")
	b := New(AlreadyUsed, "a different message, same code")
	c := New(NotFound, "not found")

	assert.True(t, a.Is(b))
	assert.False(t, a.Is(c))
	assert.False(t, a.Is(fmt.Errorf("plain error")))
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(New(AlreadyExists, "user exists"))
	assert.True(t, ok)
	assert.Equal(t, AlreadyExists, code)

	wrapped := fmt.Errorf("register: %w", New(AlreadyExists, "user exists"))
	code, ok = CodeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, AlreadyExists, code)

	code, ok = CodeOf(fmt.Errorf("plain error"))
	assert.False(t, ok)
	assert.Equal(t, Internal, code)
}

func TestParseWireError_RecoversCode(t *testing.T) {
	original := New(AlreadyUsed, "challenge already used: auth-1")

	// Simulate crossing a transport that only preserves Error()'s text,
	// such as net/rpc's rpc.ServerError.
	wireErr := fmt.Errorf("%s", original.Error())

	recovered := ParseWireError(wireErr)
	code, ok := CodeOf(recovered)
	assert.True(t, ok)
	assert.Equal(t, AlreadyUsed, code)
	assert.Contains(t, recovered.Error(), "challenge already used: auth-1")
}

func TestParseWireError_LeavesUnrecognizedErrorsUnchanged(t *testing.T) {
	plain := fmt.Errorf("dial tcp: connection refused")
	assert.Equal(t, plain, ParseWireError(plain))
}

func TestParseWireError_Nil(t *testing.T) {
	assert.Nil(t, ParseWireError(nil))
}
