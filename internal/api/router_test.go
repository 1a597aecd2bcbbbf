package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"support-bot/internal/api/handlers"
	"support-bot/internal/models"
	"support-bot/internal/service"
	"support-bot/pkg/config"
	"support-bot/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct{}

func (stubResolver) ResolveTurn(_ context.Context, sessionID, _ string) (*service.TurnOutcome, error) {
	return &service.TurnOutcome{SessionID: sessionID, Response: "hi", Confidence: 1, Source: models.SourceIntent}, nil
}

func (stubResolver) History(context.Context, string) ([]models.TurnRecord, error) {
	return nil, nil
}

func newTestRouter() *fiber.App {
	h := handlers.NewChatHandler(stubResolver{}, zap.NewNop())
	return SetupRouter(h, &config.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second}, zap.NewNop())
}

func errorBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(data, &body), string(data))
	return body["error"]
}

func TestRouterStatus(t *testing.T) {
	resp, err := newTestRouter().Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouterUnknownRouteReturnsJSONError(t *testing.T) {
	resp, err := newTestRouter().Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, errorBody(t, resp), "/nope")
}

func TestRouterRecoversFromPanics(t *testing.T) {
	app := newTestRouter()
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", errorBody(t, resp))
}

func TestRouterCORSExposesSessionHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.com")

	resp, err := newTestRouter().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, middleware.SessionIDHeader, resp.Header.Get("Access-Control-Expose-Headers"))
}
