package repository

import (
	"context"
	"fmt"

	"support-bot/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var chatHistoryColumns = []string{"id", "session_id", "role", "message", "confidence", "source", "created_at"}

// ChatHistoryRepository is the PostgreSQL chat log. Rows are only ever
// inserted; nothing updates or deletes them.
type ChatHistoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChatHistoryRepository(db *pgxpool.Pool, logger *zap.Logger) *ChatHistoryRepository {
	return &ChatHistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Append inserts one turn and fills in its generated id.
func (r *ChatHistoryRepository) Append(ctx context.Context, record *models.TurnRecord) error {
	sql, args, err := buildAppendQuery(record)
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&record.ID); err != nil {
		return fmt.Errorf("failed to insert chat turn: %w", err)
	}
	return nil
}

// FetchHistory returns the turns of a session ordered by timestamp, with the
// insertion id breaking ties.
func (r *ChatHistoryRepository) FetchHistory(ctx context.Context, sessionID string) ([]models.TurnRecord, error) {
	sql, args, err := buildHistoryQuery(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	records := []models.TurnRecord{}
	for rows.Next() {
		var (
			rec    models.TurnRecord
			role   string
			source *string
		)
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &role, &rec.Message, &rec.Confidence, &source, &rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat turn: %w", err)
		}
		rec.Role = models.Role(role)
		if source != nil {
			s := models.Source(*source)
			rec.Source = &s
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	r.logger.Debug("Chat history fetched",
		zap.String("session_id", sessionID),
		zap.Int("turns", len(records)),
	)
	return records, nil
}

func buildAppendQuery(record *models.TurnRecord) (string, []any, error) {
	var source *string
	if record.Source != nil {
		s := string(*record.Source)
		source = &s
	}

	return squirrel.Insert("chat_history").
		Columns("session_id", "role", "message", "confidence", "source", "created_at").
		Values(record.SessionID, string(record.Role), record.Message, record.Confidence, source, record.Timestamp).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func buildHistoryQuery(sessionID string) (string, []any, error) {
	return squirrel.Select(chatHistoryColumns...).
		From("chat_history").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
