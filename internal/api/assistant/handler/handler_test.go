package assistantHandler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	assistantRepository "WellCommand/internal/api/assistant/repository"
	assistantService "WellCommand/internal/api/assistant/service"
	"WellCommand/internal/middleware"
	jwtPkg "WellCommand/pkg/jwt"
	"WellCommand/pkg/nlp"
	"WellCommand/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	return newTestAppWith(t, nil, 0)
}

// newTestAppWith mounts the assistant routes over the real fallback
// interpreter. A nil completer means local-only.
func newTestAppWith(t *testing.T, completer nlp.Completer, timeout time.Duration) *fiber.App {
	t.Helper()
	t.Setenv(jwtPkg.SessionSecretEnv, "handler-test-secret")

	logger, _ := test.NewNullLogger()
	cat := nlp.NewDefaultCatalogue()
	local := nlp.NewLocalInterpreter(cat)
	source := nlp.NewFallbackInterpreter(nlp.NewRemoteInterpreter(completer, cat), local, logger)

	svc := assistantService.NewAssistantService(
		logger,
		assistantRepository.New(logger),
		source,
		local,
		cat,
		assistantRepository.NewMemoryLock(),
		utils.New(),
		assistantService.DefaultConfig(),
	)

	mw := middleware.New(logger, middleware.Config{RatePerSecond: 1000, Burst: 1000})
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Use(mw.NewRequestIDMiddleware())

	New(logger, validator.New(), mw, svc).WithTimeout(timeout).Start(app.Group("/api/v1"))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	if len(raw) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestInterpret(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/v1/assistant/interpret", `{"query":"pressure"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "local", resp.Header.Get(SourceHeader))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDKey))

	assert.Equal(t, "Showing pressure parameters only.", body["reply"])
	actions := body["actions"].([]interface{})
	require.Len(t, actions, 1)
	first := actions[0].(map[string]interface{})
	assert.Equal(t, "showOnlyParams", first["type"])
	assert.Equal(t, []interface{}{"tubing", "a_ann", "b_ann", "flowline_p"}, first["params"])
}

func TestInterpret_Unclear(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/v1/assistant/interpret", `{"query":"xyzzy"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, nlp.UnclearReply, body["reply"])
	assert.Equal(t, []interface{}{}, body["actions"])
}

func TestInterpret_BadInput(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/v1/assistant/interpret", `{"query":"   "}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_REQUEST", body["code"])

	resp, _ = do(t, app, http.MethodPost, "/api/v1/assistant/interpret", `{"query":`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, http.MethodPost, "/api/v1/assistant/interpret", `{"query":"`+strings.Repeat("a", 501)+`"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestExplain(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/v1/assistant/explain", `{"query":"use area chart"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "chart_type", body["intent"])
	assert.Equal(t, "Switched to area chart.", body["result"].(map[string]interface{})["reply"])
}

func TestGetParameters(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/v1/assistant/parameters", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	params := body["parameters"].([]interface{})
	require.Len(t, params, 5)
	assert.Equal(t, "Tubing Pressure", params[0].(map[string]interface{})["label"])
}

func TestSessionFlow(t *testing.T) {
	app := newTestApp(t)

	resp, created := do(t, app, http.MethodPost, "/api/v1/assistant/sessions", "", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sessionID := created["session_id"].(string)
	token := created["token"].(string)
	require.NotEmpty(t, sessionID)
	require.NotEmpty(t, token)

	base := "/api/v1/assistant/sessions/" + sessionID

	resp, body := do(t, app, http.MethodPost, base+"/messages", `{"text":"hide b-annulus and tubing"}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hiding B-Annulus Pressure, Tubing Pressure.", body["reply"])
	assert.Equal(t, "local", body["source"])
	assert.Len(t, body["messages"], 2)
	view := body["view_state"].(map[string]interface{})
	assert.Equal(t, []interface{}{"tubing", "b_ann"}, view["hidden"])

	resp, _ = do(t, app, http.MethodPost, base+"/messages", `{"text":"  "}`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, base+"/messages", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["messages"], 2, "blank text appends nothing")

	resp, body = do(t, app, http.MethodGet, base+"/view", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "realtime", body["mode"])

	resp, _ = do(t, app, http.MethodDelete, base, "", token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, base+"/view", "", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionAuth(t *testing.T) {
	app := newTestApp(t)

	_, first := do(t, app, http.MethodPost, "/api/v1/assistant/sessions", "", "")
	_, second := do(t, app, http.MethodPost, "/api/v1/assistant/sessions", "", "")

	path := "/api/v1/assistant/sessions/" + first["session_id"].(string) + "/messages"

	resp, _ := do(t, app, http.MethodPost, path, `{"text":"show all"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, path, `{"text":"show all"}`, "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := do(t, app, http.MethodPost, path, `{"text":"show all"}`, second["token"].(string))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app := newTestApp(t)

	resp, _ := do(t, app, http.MethodGet, "/api/v1/assistant/ws", "", "")
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

// blockingCompleter never answers before the request deadline.
type blockingCompleter struct{}

func (blockingCompleter) Complete(ctx context.Context, instruction, query string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingCompleter) Provider() string { return "blocking" }

func TestInterpret_RemoteDeadlineAnswersLocally(t *testing.T) {
	app := newTestAppWith(t, blockingCompleter{}, 50*time.Millisecond)

	resp, body := do(t, app, http.MethodPost, "/api/v1/assistant/interpret", `{"query":"show all"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "local", resp.Header.Get(SourceHeader))
	assert.Equal(t, "Showing all parameters.", body["reply"])
	assert.Equal(t, []interface{}{map[string]interface{}{"type": "showAllParams"}}, body["actions"])
}

func TestSendMessage_RemoteDeadlineAnswersLocally(t *testing.T) {
	app := newTestAppWith(t, blockingCompleter{}, 50*time.Millisecond)

	_, created := do(t, app, http.MethodPost, "/api/v1/assistant/sessions", "", "")
	token := created["token"].(string)
	base := "/api/v1/assistant/sessions/" + created["session_id"].(string)

	resp, body := do(t, app, http.MethodPost, base+"/messages", `{"text":"hide tubing"}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hiding Tubing Pressure.", body["reply"])
	assert.Equal(t, "local", body["source"])
	assert.Equal(t, []interface{}{"tubing"}, body["view_state"].(map[string]interface{})["hidden"])

	resp, body = do(t, app, http.MethodGet, base+"/messages", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	messages := body["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "assistant", messages[1].(map[string]interface{})["role"])
}
