package service

import (
	"context"
	"fmt"

	"support-bot/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-pro"

type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiService answers low-confidence queries with Google's Gemini API.
type GeminiService struct {
	models geminiModels
	model  string
	logger *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	logger.Info("Using Gemini model", zap.String("model", model))

	return &GeminiService{
		models: client.Models,
		model:  model,
		logger: logger,
	}, nil
}

func (s *GeminiService) Generate(ctx context.Context, query string) GenerationResult {
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(buildSupportPrompt(query)), nil)
	if err != nil {
		return resultFromText("", fmt.Errorf("gemini generate: %w", err))
	}
	if resp == nil {
		return resultFromText("", nil)
	}
	return resultFromText(resp.Text(), nil)
}

func (s *GeminiService) Name() string {
	return "gemini:" + s.model
}
