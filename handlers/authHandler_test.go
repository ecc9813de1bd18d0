package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signUpBody(email, password, repeated string) map[string]string {
	return map[string]string{
		"nickname":          "Ada",
		"email":             email,
		"password":          password,
		"repeated_password": repeated,
	}
}

func TestHome(t *testing.T) {
	env := newTestEnv(t)

	body := expectStatus(t, doRequest(t, env.ts, http.MethodGet, "/", nil), http.StatusOK)
	assert.Equal(t, "Hello World", body["message"])
}

func TestSignUpAndSignIn(t *testing.T) {
	env := newTestEnv(t)

	body := expectStatus(t, doRequest(t, env.ts, http.MethodPost, "/auth/signup",
		signUpBody("Ada@Example.com", "secret1", "secret1")), http.StatusCreated)
	assert.Equal(t, "User created", body["message"])
	userID := uint(body["user_id"].(float64))

	user, err := env.store.SearchUserByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ada@example.com", user.Login)
	assert.Equal(t, "Ada", user.Nickname)

	body = expectStatus(t, doRequest(t, env.ts, http.MethodPost, "/auth/signin", map[string]string{
		"email":    "ada@example.com",
		"password": "secret1",
	}), http.StatusOK)
	assert.Equal(t, "Signed in", body["message"])
	assert.Equal(t, float64(userID), body["user_id"])

	after, err := env.store.SearchUserByID(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, after.LastVisitedAt.Before(user.LastVisitedAt))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	expectStatus(t, doRequest(t, env.ts, http.MethodPost, "/auth/signup",
		signUpBody("bob@example.com", "secret1", "secret1")), http.StatusCreated)
	body := expectStatus(t, doRequest(t, env.ts, http.MethodPost, "/auth/signup",
		signUpBody("BOB@example.com", "secret2", "secret2")), http.StatusConflict)
	assert.Equal(t, "email is already registered", body["error"])
}

func TestSignUpPasswordMismatch(t *testing.T) {
	env := newTestEnv(t)

	body := expectStatus(t, doRequest(t, env.ts, http.MethodPost, "/auth/signup",
		signUpBody("ada@example.com", "secret1", "secret2")), http.StatusBadRequest)
	assert.Equal(t, "passwords do not match", body["error"])
}

func TestSignUpValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name    string
		payload interface{}
		message string
	}{
		{"short password", signUpBody("ada@example.com", "abc", "abc"), "password must be at least 6 characters"},
		{"bad email", signUpBody("not-an-email", "secret1", "secret1"), "email is not a valid address"},
		{"missing nickname", map[string]string{
			"email": "ada@example.com", "password": "secret1", "repeated_password": "secret1",
		}, "nickname is required"},
		{"malformed body", "{", "invalid request body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := expectStatus(t, doRequest(t, env.ts, http.MethodPost, "/auth/signup", tc.payload), http.StatusBadRequest)
			assert.Equal(t, tc.message, body["error"])
		})
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	expectStatus(t, doRequest(t, env.ts, http.MethodPost, "/auth/signup",
		signUpBody("eve@example.com", "secret1", "secret1")), http.StatusCreated)

	body := expectStatus(t, doRequest(t, env.ts, http.MethodPost, "/auth/signin", map[string]string{
		"email": "eve@example.com", "password": "wrong!!",
	}), http.StatusUnauthorized)
	assert.Equal(t, "invalid email or password", body["error"])

	expectStatus(t, doRequest(t, env.ts, http.MethodPost, "/auth/signin", map[string]string{
		"email": "nobody@example.com", "password": "secret1",
	}), http.StatusUnauthorized)

	body = expectStatus(t, doRequest(t, env.ts, http.MethodPost, "/auth/signin", map[string]string{
		"email": "eve@example.com",
	}), http.StatusBadRequest)
	assert.Equal(t, "password is required", body["error"])
}
