package main

import (
	"net/http"
	"testing"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginAndCurrentUser(t *testing.T) {
	ta := newTestApp(t)
	token := ta.register(t, "jake")

	res := ta.do(t, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, res.Status)
	user := object(t, res.Body, "user")
	assert.Equal(t, "jake", user["username"])
	assert.Equal(t, "jake@conduit.test", user["email"])
	assert.NotContains(t, user, "password")

	res = ta.do(t, http.MethodPost, "/api/users/login", "", envelope{"user": envelope{"email": "jake@conduit.test", "password": "password123"}})
	require.Equal(t, http.StatusOK, res.Status)
	assert.NotEmpty(t, object(t, res.Body, "user")["token"])

	res = ta.do(t, http.MethodPost, "/api/users/login", "", envelope{"user": envelope{"email": "jake@conduit.test", "password": "wrong-password"}})
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestRegisterValidation(t *testing.T) {
	ta := newTestApp(t)
	ta.register(t, "jake")

	tests := []struct {
		name   string
		body   any
		status int
		field  string
	}{
		{"malformed json", `{"user":`, http.StatusBadRequest, ""},
		{"unknown field", `{"user":{"username":"x"},"admin":true}`, http.StatusBadRequest, ""},
		{"bad email", envelope{"user": envelope{"username": "anna", "email": "nope", "password": "password123"}}, http.StatusUnprocessableEntity, "email"},
		{"short password", envelope{"user": envelope{"username": "anna", "email": "anna@conduit.test", "password": "short"}}, http.StatusUnprocessableEntity, "password"},
		{"taken username", envelope{"user": envelope{"username": "jake", "email": "other@conduit.test", "password": "password123"}}, http.StatusUnprocessableEntity, "username"},
		{"taken email", envelope{"user": envelope{"username": "other", "email": "jake@conduit.test", "password": "password123"}}, http.StatusUnprocessableEntity, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ta.do(t, http.MethodPost, "/api/users", "", tt.body)
			assert.Equal(t, tt.status, res.Status)
			if tt.field != "" {
				assert.Contains(t, object(t, res.Body, "errorDetails"), tt.field)
			}
		})
	}
}

func TestUpdateUser(t *testing.T) {
	ta := newTestApp(t)
	token := ta.register(t, "jake")

	res := ta.do(t, http.MethodPut, "/api/user", token, envelope{"user": envelope{"bio": "I like to skateboard", "username": "jacob"}})
	require.Equal(t, http.StatusOK, res.Status, res.Body)
	user := object(t, res.Body, "user")
	assert.Equal(t, "I like to skateboard", user["bio"])
	assert.Equal(t, "jacob", user["username"])

	newToken := user["token"].(string)
	res = ta.do(t, http.MethodGet, "/api/user", newToken, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "jacob", object(t, res.Body, "user")["username"])
}

func TestAuthentication(t *testing.T) {
	ta := newTestApp(t)

	res := ta.do(t, http.MethodGet, "/api/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = ta.do(t, http.MethodGet, "/api/user", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Token", res.Header.Get("WWW-Authenticate"))

	res = ta.do(t, http.MethodGet, "/api/articles/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	// a valid token for a user that no longer exists
	token := ta.register(t, "ghost")
	ta.stores.Users.Users = map[int64]*auth.User{}
	res = ta.do(t, http.MethodGet, "/api/user", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}
