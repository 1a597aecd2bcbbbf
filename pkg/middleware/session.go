package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	SessionIDHeader    = "X-Session-ID"
	// MaxSessionIDLength applies to ids from the header and the request body.
	MaxSessionIDLength = 128

	sessionIDLocal = "sessionID"
)

// SessionMiddleware picks up an optional session id from the X-Session-ID
// header so clients that keep the id outside the JSON body are supported.
func SessionMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := strings.TrimSpace(c.Get(SessionIDHeader))
		if sessionID == "" {
			return c.Next()
		}

		if len(sessionID) > MaxSessionIDLength {
			logger.Warn("Session id too long", zap.Int("length", len(sessionID)))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid session id",
			})
		}

		c.Locals(sessionIDLocal, sessionID)
		return c.Next()
	}
}

// SessionID returns the id stored by SessionMiddleware, or "".
func SessionID(c *fiber.Ctx) string {
	sessionID, _ := c.Locals(sessionIDLocal).(string)
	return sessionID
}
