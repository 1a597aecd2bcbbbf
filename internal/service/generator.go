package service

import (
	"context"
	"fmt"
	"strings"

	"support-bot/pkg/config"

	"go.uber.org/zap"
)

type GenerationStatus string

const (
	GenerationOK       GenerationStatus = "ok"
	GenerationEmpty    GenerationStatus = "empty"
	GenerationFailed   GenerationStatus = "failed"
	GenerationDisabled GenerationStatus = "disabled"
)

// GenerationResult is the typed outcome of a single generative call.
// Err is set only for GenerationFailed.
type GenerationResult struct {
	Text   string
	Status GenerationStatus
	Err    error
}

// Answered reports whether the result carries usable text.
func (r GenerationResult) Answered() bool {
	return r.Status == GenerationOK && r.Text != ""
}

// Generator is the last automated stage before escalation. Implementations
// make exactly one attempt and report failures through the result, never
// through panics.
type Generator interface {
	Generate(ctx context.Context, query string) GenerationResult
	Name() string
}

func buildSupportPrompt(query string) string {
	return "You are an AI customer support assistant. Please answer this user query: " + query
}

func resultFromText(text string, err error) GenerationResult {
	if err != nil {
		return GenerationResult{Status: GenerationFailed, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return GenerationResult{Status: GenerationEmpty}
	}
	return GenerationResult{Text: text, Status: GenerationOK}
}

// DisabledGenerator is used when no model is configured; every low
// confidence turn escalates.
type DisabledGenerator struct{}

func (DisabledGenerator) Generate(context.Context, string) GenerationResult {
	return GenerationResult{Status: GenerationDisabled}
}

func (DisabledGenerator) Name() string { return "disabled" }

// NewGenerator builds the generator selected by LLM_PROVIDER. A provider
// without credentials falls back to DisabledGenerator.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Generator, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set, generative fallback disabled")
			return DisabledGenerator{}, nil
		}
		return NewGeminiService(ctx, &cfg.Gemini, logger)
	case config.ProviderGigaChat:
		if cfg.GigaChat.APIKey == "" {
			logger.Warn("GIGACHAT_API_KEY is not set, generative fallback disabled")
			return DisabledGenerator{}, nil
		}
		return NewGigaChatService(ctx, &cfg.GigaChat, logger)
	case config.ProviderNone:
		return DisabledGenerator{}, nil
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
}
