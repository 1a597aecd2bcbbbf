package service

import (
	"context"
	"errors"
	"fmt"

	"support-bot/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const supportSystemInstruction = `You are a customer support assistant for an online store.
Answer the customer's question briefly and politely.
If you do not know the answer, say so and suggest contacting a human agent.
Never invent order numbers, prices or policies.`

// GigaChatService is the alternative generative backend, selected with LLM_PROVIDER=gigachat.
type GigaChatService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewGigaChatService(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatService, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = supportSystemInstruction
	model.Temperature = 0.3
	logger.Info("Using GigaChat model")

	return &GigaChatService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (s *GigaChatService) Generate(ctx context.Context, query string) GenerationResult {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: buildSupportPrompt(query)},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return resultFromText("", fmt.Errorf("gigachat generate: %w", err))
	}
	if len(resp.Choices) == 0 {
		return resultFromText("", errors.New("no choices in GigaChat response"))
	}
	return resultFromText(resp.Choices[0].Message.Content, nil)
}

func (s *GigaChatService) Name() string {
	return "gigachat"
}

func (s *GigaChatService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
