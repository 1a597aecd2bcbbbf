package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionApp() *fiber.App {
	app := fiber.New()
	app.Get("/", SessionMiddleware(zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString(SessionID(c))
	})
	return app
}

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"no header", "", http.StatusOK, ""},
		{"trimmed header", "  abc-123 ", http.StatusOK, "abc-123"},
		{"max length", strings.Repeat("s", MaxSessionIDLength), http.StatusOK, strings.Repeat("s", MaxSessionIDLength)},
		{"too long", strings.Repeat("s", MaxSessionIDLength+1), http.StatusBadRequest, `{"error":"Invalid session id"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(SessionIDHeader, tt.header)
			}

			resp, err := newSessionApp().Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}
