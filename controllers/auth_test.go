package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barnaud18/AgriScienceCrop-API/models"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	userID, token := env.registerUser(t, "maria@example.com")
	assert.NotEmpty(t, userID)
	assert.NotEmpty(t, token)

	w := env.do(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email:    "maria@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "dup@example.com")

	w := env.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Username:        "dup2",
		Email:           "dup@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Role:            "farmer",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Username:        "x",
		Email:           "x@example.com",
		Password:        "secret123",
		ConfirmPassword: "different",
		Role:            "farmer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "jose@example.com")

	w := env.do(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email:    "jose@example.com",
		Password: "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.registerUser(t, "me@example.com")

	w := env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	me := decodeJSON[models.PublicUser](t, w)
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "me@example.com", me.Email)
}
