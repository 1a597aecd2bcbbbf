package postgres

import (
	"context"
	"fmt"

	"support-bot/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// chatHistorySchema is the append-only log of user and bot turns.
const chatHistorySchema = `
CREATE TABLE IF NOT EXISTS chat_history (
	id          BIGSERIAL PRIMARY KEY,
	session_id  TEXT NOT NULL,
	role        TEXT NOT NULL,
	message     TEXT NOT NULL,
	confidence  DOUBLE PRECISION,
	source      TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_chat_history_session ON chat_history (session_id, created_at, id);
`

func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
}

func NewPool(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
	)

	return pool, nil
}

// EnsureSchema creates the chat_history table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if _, err := pool.Exec(ctx, chatHistorySchema); err != nil {
		return fmt.Errorf("failed to create chat_history schema: %w", err)
	}
	logger.Info("Database schema ready", zap.String("table", "chat_history"))
	return nil
}
