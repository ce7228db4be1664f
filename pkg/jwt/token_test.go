package jwtPkg

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseSession(t *testing.T) {
	t.Setenv(SessionSecretEnv, "unit-test-secret")

	token, expiresAt, err := SignSession("01HZX", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	sessionID, err := ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, "01HZX", sessionID)
}

func TestParseSession_Rejects(t *testing.T) {
	t.Setenv(SessionSecretEnv, "unit-test-secret")

	expired, _, err := SignSession("old", -time.Minute)
	require.NoError(t, err)
	_, err = ParseSession(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noClaim := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	raw, err := noClaim.SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)
	_, err = ParseSession(raw)
	assert.ErrorIs(t, err, ErrMissingSessionClaim)

	token, _, err := SignSession("s1", time.Hour)
	require.NoError(t, err)
	t.Setenv(SessionSecretEnv, "another-secret")
	_, err = ParseSession(token)
	assert.Error(t, err)
}

func TestSignSession_NoSecret(t *testing.T) {
	t.Setenv(SessionSecretEnv, "")

	_, _, err := SignSession("s1", time.Hour)
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}

func TestVerifyTokenHeader(t *testing.T) {
	t.Setenv(SessionSecretEnv, "unit-test-secret")
	token, _, err := SignSession("s-42", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		sessionID, err := VerifyTokenHeader(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}
		return c.SendString(sessionID)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + token, fiber.StatusOK},
		{"missing", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, fiber.StatusUnauthorized},
		{"empty bearer", "Bearer ", fiber.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
