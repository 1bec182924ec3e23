package spacekit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrorWrapping tests sentinel matching through the wrapper
func TestErrorWrapping(t *testing.T) {
	err := NewError(ErrForbidden, "account has no access to space").
		WithSpace("s1").
		WithAccount("bob").
		WithTx("doc42")

	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, "s1", err.SpaceID)
	assert.Equal(t, "bob", err.Account)
	assert.Equal(t, "doc42", err.TxID)
	assert.Equal(t, "spacekit: forbidden: account has no access to space", err.Error())
}

// TestErrorNoMessage tests the bare sentinel rendering
func TestErrorNoMessage(t *testing.T) {
	err := NewError(ErrNoCaller, "")

	assert.Equal(t, ErrNoCaller.Error(), err.Error())
	assert.Equal(t, ErrNoCaller, err.Unwrap())
}

// TestErrorPredicates tests the classification helpers
func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsForbidden(NewError(ErrForbidden, "x")))
	assert.True(t, IsForbidden(fmt.Errorf("wrapped: %w", ErrForbidden)))
	assert.False(t, IsForbidden(ErrNoCaller))

	assert.True(t, IsNoCaller(ErrNoCaller))
	assert.False(t, IsNoCaller(ErrForbidden))

	assert.True(t, IsNotInitialized(ErrNotInitialized))
	assert.False(t, IsNotInitialized(nil))
}
