package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	base := errors.New("base failure")

	wrapped := WrapError(base, "reading store")

	assert.EqualError(t, wrapped, "reading store: base failure")
	assert.ErrorIs(t, wrapped, base)
	assert.Nil(t, WrapError(nil, "ignored"))
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("boom")

	wrapped := WrapErrorf(base, "failed to read file: %s", "state.json")

	assert.EqualError(t, wrapped, "failed to read file: state.json: boom")
	assert.Nil(t, WrapErrorf(nil, "ignored %s", "x"))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("targets", 0, "at least one target required")

	assert.Contains(t, err.Error(), "targets")
	assert.Contains(t, err.Error(), "at least one target required")
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("https://example.com", "HTTP request failed", cause)

	assert.Contains(t, err.Error(), "https://example.com")
	assert.ErrorIs(t, err, cause)
}

func TestHTTPError(t *testing.T) {
	err := NewHTTPErrorWithURL(500, "internal error", "https://example.com")

	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Contains(t, err.Error(), "https://example.com")
}
