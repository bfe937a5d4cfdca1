package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	BcryptCost = 4
}

func TestPasswordRoundTrip(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("correct horse battery"))

	ok, err := user.IsPasswordMatch("correct horse battery")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = user.IsPasswordMatch("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenRoundTrip(t *testing.T) {
	a := New("0123456789abcdef0123", time.Hour)
	token, err := a.GenerateToken(&User{ID: 7, Username: "jake", Email: "jake@jake.jake"})
	require.NoError(t, err)

	claim, err := a.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claim.UserID)
	assert.Equal(t, "jake", claim.Username)
}

func TestAuthenticateRejectsForeignSecretAndExpiry(t *testing.T) {
	issuer := New("0123456789abcdef0123", time.Minute)
	token, err := issuer.GenerateToken(&User{ID: 1})
	require.NoError(t, err)

	_, err = New("another-secret-entirely", time.Minute).Authenticate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	later := New("0123456789abcdef0123", time.Minute)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Authenticate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticatedUserInRequest(t *testing.T) {
	a := New("0123456789abcdef0123", time.Hour)
	r := httptest.NewRequest("GET", "/api/user", nil)
	assert.False(t, a.IsUserAuthenticated(r))
	assert.Zero(t, a.AuthenticatedUserID(r))

	r = a.SetAuthenticatedUser(r, &User{ID: 3})
	assert.True(t, a.IsUserAuthenticated(r))
	assert.Equal(t, int64(3), a.AuthenticatedUserID(r))
}
