package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserError(t *testing.T) {
	err := NewUserError(ErrNotApproved, "this account has not been approved yet")

	// The sentinel rides along for errors.Is dispatch and the message is
	// what gets shown to the user.
	assert.ErrorIs(t, err, ErrNotApproved)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "this account has not been approved yet", userErr.UserMessage)
	assert.Equal(t, ErrNotApproved, userErr.Err)
	assert.Equal(t, "this account has not been approved yet: account not approved yet", err.Error())
}

func TestUserError_NoWrapped(t *testing.T) {
	err := &UserError{UserMessage: "something went wrong"}
	assert.Equal(t, "something went wrong", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestUserError_WrappedChain(t *testing.T) {
	inner := fmt.Errorf("read roster: %w", ErrSheetNotFound)
	err := NewUserError(inner, "the roster is unavailable")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}
