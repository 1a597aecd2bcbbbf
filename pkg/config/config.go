package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultConfidenceThreshold = 0.70

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Resolver ResolverConfig
	LLM      LLMConfig
	Gemini   GeminiConfig
	GigaChat GigaChatConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CatalogConfig struct {
	IntentsPath string
	FaqsPath    string
}

// ResolverConfig holds the decision policy of the fallback pipeline.
// ConfidenceThreshold is shared by both matchers and the orchestrator.
type ResolverConfig struct {
	ConfidenceThreshold float64
	EscalationMessage   string
	EmptyQueryPrompt    string
}

type LLMProvider string

const (
	ProviderGemini   LLMProvider = "gemini"
	ProviderGigaChat LLMProvider = "gigachat"
	ProviderNone     LLMProvider = "none"
)

type LLMConfig struct {
	Provider LLMProvider
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

func Load() (*Config, error) {
	// .env is optional, plain environment variables work for Docker/K8s
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	threshold, err := strconv.ParseFloat(getEnv("CONFIDENCE_THRESHOLD", "0.70"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CONFIDENCE_THRESHOLD: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "support_bot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Catalog: CatalogConfig{
			IntentsPath: getEnv("CATALOG_INTENTS_PATH", "data/intents.json"),
			FaqsPath:    getEnv("CATALOG_FAQS_PATH", "data/faqs.json"),
		},
		Resolver: ResolverConfig{
			ConfidenceThreshold: threshold,
			EscalationMessage: getEnv("ESCALATION_MESSAGE",
				"I'm not confident about this one. Let me connect you with a human support agent."),
			EmptyQueryPrompt: getEnv("EMPTY_QUERY_PROMPT", "Please enter a message."),
		},
		LLM: LLMConfig{
			Provider: LLMProvider(getEnv("LLM_PROVIDER", string(ProviderGemini))),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Resolver.ConfidenceThreshold < 0 || c.Resolver.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be within [0,1], got %v", c.Resolver.ConfidenceThreshold)
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderGigaChat, ProviderNone:
	default:
		return fmt.Errorf("unknown LLM provider %q", c.LLM.Provider)
	}
	if c.Catalog.IntentsPath == "" || c.Catalog.FaqsPath == "" {
		return fmt.Errorf("catalog paths must be set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
