package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginMe(t *testing.T) {
	env := setupTestEnv(t)

	resp, body := env.request(t, "POST", "/api/auth/register", "", fiber.Map{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, body, "password")

	resp, body = env.request(t, "POST", "/api/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	resp, body = env.request(t, "GET", "/api/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body["user"].(map[string]interface{})["username"])
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("short password rejected", func(t *testing.T) {
		resp, _ := env.request(t, "POST", "/api/auth/register", "", fiber.Map{
			"username": "alice",
			"password": "short",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		payload := fiber.Map{"username": "alice", "password": "password123"}

		resp, _ := env.request(t, "POST", "/api/auth/register", "", payload)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp, body := env.request(t, "POST", "/api/auth/register", "", payload)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "username already taken", body["error"])
	})
}

func TestLoginFailures(t *testing.T) {
	env := setupTestEnv(t)
	env.signup(t, "alice")

	t.Run("wrong password", func(t *testing.T) {
		resp, _ := env.request(t, "POST", "/api/auth/login", "", fiber.Map{
			"username": "alice",
			"password": "wrong-password",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown user answers identically", func(t *testing.T) {
		resp, body := env.request(t, "POST", "/api/auth/login", "", fiber.Map{
			"username": "nobody",
			"password": "wrong-password",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid username or password", body["error"])
	})
}
