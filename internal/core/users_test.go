package core_test

import (
	"context"
	"testing"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, h *harness, username, password string) *auth.User {
	t.Helper()
	u := &auth.User{Username: username, Email: username + "@conduit.test"}
	require.NoError(t, u.SetPassword(password))
	require.NoError(t, h.core.CreateNewUser(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	registered := register(t, h, "jake", "jakejake")

	user, err := h.core.Login(ctx, "jake@conduit.test", "jakejake")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = h.core.Login(ctx, "jake@conduit.test", "wrong")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
	_, err = h.core.Login(ctx, "nobody@conduit.test", "jakejake")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func TestRegisterDuplicates(t *testing.T) {
	h := newHarness(t)
	register(t, h, "jake", "jakejake")

	dup := &auth.User{Username: "jake", Email: "other@conduit.test"}
	assert.ErrorIs(t, h.core.CreateNewUser(context.Background(), dup), core.ErrDuplicateUsername)

	dup = &auth.User{Username: "other", Email: "jake@conduit.test"}
	assert.ErrorIs(t, h.core.CreateNewUser(context.Background(), dup), core.ErrDuplicateEmail)
}

func TestUpdateUser(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	jake := register(t, h, "jake", "jakejake")
	register(t, h, "taken", "takentaken")

	bio := "I work at statefarm"
	updated, err := h.core.UpdateUser(ctx, jake.ID, core.UserUpdate{
		Bio:      &bio,
		Password: ptr("newpassword"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
	assert.Equal(t, "jake", updated.Username)

	_, err = h.core.Login(ctx, "jake@conduit.test", "newpassword")
	require.NoError(t, err)

	_, err = h.core.UpdateUser(ctx, jake.ID, core.UserUpdate{Username: ptr("taken")})
	assert.ErrorIs(t, err, core.ErrDuplicateUsername)

	_, err = h.core.UpdateUser(ctx, 999, core.UserUpdate{Bio: &bio})
	assert.ErrorIs(t, err, core.NoRecordFound)
}
