package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwtPkg "WellCommand/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := New(logger, Config{RatePerSecond: 0.001, Burst: 2})

	app := fiber.New()
	app.Get("/", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestNew_Defaults(t *testing.T) {
	logger, _ := test.NewNullLogger()
	m := New(logger, Config{}).(*middleware)

	assert.Equal(t, DefaultConfig().Burst, m.rateLimitter.burstSize)
	assert.InDelta(t, DefaultConfig().RatePerSecond, float64(m.rateLimitter.rate), 0.0001)
}

func TestRequestID(t *testing.T) {
	logger, _ := test.NewNullLogger()
	m := New(logger, DefaultConfig())

	var seen string
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		seen = m.GetRequestID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Len(t, seen, 26)
	assert.Equal(t, seen, resp.Header.Get(RequestIDKey))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDKey, "caller-id")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "caller-id", seen)
	assert.Equal(t, "caller-id", resp.Header.Get(RequestIDKey))
}

func TestGetRequestID_Unknown(t *testing.T) {
	logger, _ := test.NewNullLogger()
	m := New(logger, DefaultConfig())

	var seen string
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		seen = m.GetRequestID(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "unknown", seen)
}

func TestSessionTokenMiddleware(t *testing.T) {
	t.Setenv(jwtPkg.SessionSecretEnv, "middleware-test-secret")

	logger, _ := test.NewNullLogger()
	m := New(logger, DefaultConfig())

	var seen interface{}
	app := fiber.New()
	app.Get("/", m.NewSessionTokenMiddleware, func(c *fiber.Ctx) error {
		seen = c.Locals(jwtPkg.SessionLocalsKey)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, seen)

	token, _, err := jwtPkg.SignSession("01JSESSION", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "01JSESSION", seen)
}

func TestLoggingMiddleware_Levels(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := New(logger, DefaultConfig())

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware(), m.NewLoggingMiddleware())
	app.Post("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/boom", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusInternalServerError) })

	cases := []struct {
		method string
		path   string
		level  logrus.Level
	}{
		{http.MethodPost, "/ok", logrus.InfoLevel},
		{http.MethodGet, "/missing", logrus.WarnLevel},
		{http.MethodGet, "/boom", logrus.ErrorLevel},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			hook.Reset()
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{"query":"show all","api_key":"abc"}`))
			_, err := app.Test(req)
			require.NoError(t, err)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tc.level, entry.Level)
			assert.Equal(t, tc.path, entry.Data["path"])
			assert.NotContains(t, entry.Data["request_body"], "abc")
		})
	}
}

func TestSanitizeRequestBody(t *testing.T) {
	out := sanitizeRequestBody(`{"text":"hide tubing","Authorization":"Bearer x","session_token":"y"}`)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "hide tubing", decoded["text"])
	assert.Equal(t, "[SECRET]", decoded["Authorization"])
	assert.Equal(t, "[SECRET]", decoded["session_token"])

	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("not json"))
}
