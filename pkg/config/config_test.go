package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "")
	t.Setenv("LLM_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfidenceThreshold, cfg.Resolver.ConfidenceThreshold)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "data/intents.json", cfg.Catalog.IntentsPath)
	assert.Equal(t, "data/faqs.json", cfg.Catalog.FaqsPath)
	assert.Equal(t, "Please enter a message.", cfg.Resolver.EmptyQueryPrompt)
	assert.NotEmpty(t, cfg.Resolver.EscalationMessage)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "0.55")
	t.Setenv("LLM_PROVIDER", "gigachat")
	t.Setenv("CATALOG_FAQS_PATH", "fixtures/faqs.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 0.55, cfg.Resolver.ConfidenceThreshold, 1e-9)
	assert.Equal(t, ProviderGigaChat, cfg.LLM.Provider)
	assert.Equal(t, "fixtures/faqs.yaml", cfg.Catalog.FaqsPath)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unparsable threshold", env: map[string]string{"CONFIDENCE_THRESHOLD": "high"}},
		{name: "threshold above one", env: map[string]string{"CONFIDENCE_THRESHOLD": "1.5"}},
		{name: "negative threshold", env: map[string]string{"CONFIDENCE_THRESHOLD": "-0.1"}},
		{name: "unknown provider", env: map[string]string{"LLM_PROVIDER": "parrot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
