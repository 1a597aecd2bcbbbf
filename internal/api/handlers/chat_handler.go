package handlers

import (
	"context"
	"math"
	"strings"

	"support-bot/internal/dto"
	"support-bot/internal/models"
	"support-bot/internal/service"
	"support-bot/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const historyTimeLayout = "2006-01-02 15:04:05"

type TurnResolver interface {
	ResolveTurn(ctx context.Context, sessionID, query string) (*service.TurnOutcome, error)
	History(ctx context.Context, sessionID string) ([]models.TurnRecord, error)
}

type ChatHandler struct {
	resolver TurnResolver
	logger   *zap.Logger
}

func NewChatHandler(resolver TurnResolver, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// Chat godoc
// @Summary Answer a customer query
// @Description Resolves a query through intents, FAQs, the generative model and human escalation
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat request"
// @Param X-Session-ID header string false "Session id, used when the body has none"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if len(sessionID) > middleware.MaxSessionIDLength {
		h.logger.Warn("Session id too long", zap.Int("length", len(sessionID)))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}
	if sessionID == "" {
		sessionID = middleware.SessionID(c)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	outcome, err := h.resolver.ResolveTurn(c.UserContext(), sessionID, req.Query)
	if err != nil {
		h.logger.Error("Failed to resolve turn", zap.String("session_id", sessionID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}

	c.Set(middleware.SessionIDHeader, outcome.SessionID)
	return c.JSON(dto.ChatResponse{
		Response:   outcome.Response,
		SessionID:  outcome.SessionID,
		Confidence: roundConfidence(outcome.Confidence),
		Source:     string(outcome.Source),
	})
}

// History godoc
// @Summary Get chat history
// @Description Returns every logged turn of a session in chronological order
// @Tags chat
// @Produce json
// @Param session_id path string true "Session id"
// @Success 200 {object} dto.HistoryResponse
// @Failure 500 {object} map[string]string
// @Router /history/{session_id} [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	records, err := h.resolver.History(c.UserContext(), sessionID)
	if err != nil {
		h.logger.Error("Failed to fetch history", zap.String("session_id", sessionID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch history",
		})
	}

	history := make([]dto.HistoryEntry, 0, len(records))
	for _, rec := range records {
		entry := dto.HistoryEntry{
			Role:       string(rec.Role),
			Message:    rec.Message,
			Confidence: rec.Confidence,
			Timestamp:  rec.Timestamp.Format(historyTimeLayout),
		}
		if rec.Source != nil {
			source := string(*rec.Source)
			entry.Source = &source
		}
		history = append(history, entry)
	}

	return c.JSON(dto.HistoryResponse{
		SessionID: sessionID,
		History:   history,
	})
}

// Status godoc
// @Summary Service status
// @Tags system
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router / [get]
func (h *ChatHandler) Status(c *fiber.Ctx) error {
	return c.JSON(dto.StatusResponse{
		Message: "AI Customer Support Bot is running!",
	})
}

func roundConfidence(v float64) float64 {
	return math.Round(v*100) / 100
}
