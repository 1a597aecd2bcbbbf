package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"support-bot/internal/catalog"
	"support-bot/internal/matcher"
	"support-bot/internal/models"
	"support-bot/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPersistence wraps chat log failures. A turn that cannot be logged fails.
var ErrPersistence = errors.New("chat log persistence failure")

// ChatLogger is the append-only store of user and bot turns.
type ChatLogger interface {
	Append(ctx context.Context, record *models.TurnRecord) error
	FetchHistory(ctx context.Context, sessionID string) ([]models.TurnRecord, error)
}

type catalogMatcher interface {
	Resolve(query string) matcher.MatchResult
}

// TurnOutcome is the single decision emitted for one user query.
type TurnOutcome struct {
	SessionID  string
	Response   string
	Confidence float64
	Source     models.Source
}

// ResolverService runs the fallback pipeline
// intent -> faq -> generative model -> escalation
// and stops at the first stage that produces an acceptable answer.
type ResolverService struct {
	intents   catalogMatcher
	faqs      catalogMatcher
	generator Generator
	chatLog   ChatLogger
	config    config.ResolverConfig
	clock     *turnClock
	logger    *zap.Logger
}

func NewResolverService(
	cat *catalog.Catalog,
	generator Generator,
	chatLog ChatLogger,
	cfg config.ResolverConfig,
	logger *zap.Logger,
	opts ...matcher.Option,
) *ResolverService {
	return &ResolverService{
		intents:   matcher.NewIntentMatcher(cat.Intents(), cfg.ConfidenceThreshold, opts...),
		faqs:      matcher.NewFaqMatcher(cat.Faqs(), cfg.ConfidenceThreshold, opts...),
		generator: generator,
		chatLog:   chatLog,
		config:    cfg,
		clock:     newTurnClock(time.Now),
		logger:    logger,
	}
}

// ResolveTurn answers one user query. An empty session id gets a fresh UUID.
//
// Whitespace-only queries short-circuit with the configured prompt, source
// "none" and confidence 0, and nothing is written to the chat log. Every other
// query produces exactly one user record followed by one bot record.
func (s *ResolverService) ResolveTurn(ctx context.Context, sessionID, query string) (*TurnOutcome, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return &TurnOutcome{
			SessionID:  sessionID,
			Response:   s.config.EmptyQueryPrompt,
			Confidence: 0,
			Source:     models.SourceNone,
		}, nil
	}

	if err := s.append(ctx, sessionID, models.RoleUser, query, nil, nil); err != nil {
		return nil, err
	}

	outcome := s.decide(ctx, sessionID, query)

	if err := s.append(ctx, sessionID, models.RoleBot, outcome.Response, &outcome.Confidence, &outcome.Source); err != nil {
		return nil, err
	}

	s.logger.Info("Turn resolved",
		zap.String("session_id", sessionID),
		zap.String("source", string(outcome.Source)),
		zap.Float64("confidence", outcome.Confidence),
	)
	return outcome, nil
}

func (s *ResolverService) decide(ctx context.Context, sessionID, query string) *TurnOutcome {
	outcome := &TurnOutcome{SessionID: sessionID}

	intent := s.intents.Resolve(query)
	if intent.Matched {
		outcome.Response, outcome.Confidence, outcome.Source = intent.Payload, intent.Score, models.SourceIntent
		return outcome
	}

	faq := s.faqs.Resolve(query)
	if faq.Matched {
		outcome.Response, outcome.Confidence, outcome.Source = faq.Payload, faq.Score, models.SourceFAQ
		return outcome
	}

	// Generated answers carry the matchers' confidence, not one of their own.
	combined := max(intent.Score, faq.Score)
	outcome.Confidence = combined

	if combined < s.config.ConfidenceThreshold {
		result := s.generator.Generate(ctx, query)
		if result.Answered() {
			outcome.Response, outcome.Source = result.Text, models.SourceGemini
			return outcome
		}
		s.logGenerationMiss(sessionID, result)
	}

	s.logger.Info("Escalating to human agent",
		zap.String("session_id", sessionID),
		zap.Float64("intent_score", intent.Score),
		zap.String("intent_tag", intent.Key),
		zap.Float64("faq_score", faq.Score),
	)
	outcome.Response, outcome.Source = s.config.EscalationMessage, models.SourceEscalation
	return outcome
}

// History returns all turns of a session in ascending timestamp order.
func (s *ResolverService) History(ctx context.Context, sessionID string) ([]models.TurnRecord, error) {
	records, err := s.chatLog.FetchHistory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return records, nil
}

func (s *ResolverService) append(
	ctx context.Context,
	sessionID string,
	role models.Role,
	message string,
	confidence *float64,
	source *models.Source,
) error {
	record := &models.TurnRecord{
		SessionID:  sessionID,
		Role:       role,
		Message:    sanitizeMessage(message),
		Confidence: confidence,
		Source:     source,
		Timestamp:  s.clock.Next(),
	}
	if err := s.chatLog.Append(ctx, record); err != nil {
		s.logger.Error("Failed to log chat turn",
			zap.String("session_id", sessionID),
			zap.String("role", string(role)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s turn: %w", ErrPersistence, role, err)
	}
	return nil
}

func (s *ResolverService) logGenerationMiss(sessionID string, result GenerationResult) {
	fields := []zap.Field{
		zap.String("session_id", sessionID),
		zap.String("generator", s.generator.Name()),
		zap.String("status", string(result.Status)),
	}
	if result.Err != nil {
		s.logger.Warn("Generative fallback failed", append(fields, zap.Error(result.Err))...)
		return
	}
	s.logger.Info("Generative fallback returned no answer", fields...)
}

// turnClock hands out strictly increasing timestamps with the microsecond
// precision of the chat_history table.
type turnClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func newTurnClock(now func() time.Time) *turnClock {
	return &turnClock{now: now}
}

func (c *turnClock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().Truncate(time.Microsecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}
