package repository

import (
	"testing"
	"time"

	"support-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAppendQueryBotTurn(t *testing.T) {
	confidence := 0.92
	source := models.SourceFAQ
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	sql, args, err := buildAppendQuery(&models.TurnRecord{
		SessionID:  "abc",
		Role:       models.RoleBot,
		Message:    "Items can be returned within 30 days.",
		Confidence: &confidence,
		Source:     &source,
		Timestamp:  ts,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO chat_history (session_id,role,message,confidence,source,created_at) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id",
		sql,
	)
	require.Len(t, args, 6)
	assert.Equal(t, "abc", args[0])
	assert.Equal(t, "bot", args[1])
	assert.Equal(t, &confidence, args[3])
	require.IsType(t, (*string)(nil), args[4])
	assert.Equal(t, "faq", *args[4].(*string))
	assert.Equal(t, ts, args[5])
}

func TestBuildAppendQueryUserTurnHasNulls(t *testing.T) {
	_, args, err := buildAppendQuery(&models.TurnRecord{
		SessionID: "abc",
		Role:      models.RoleUser,
		Message:   "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "user", args[1])
	assert.Nil(t, args[3].(*float64))
	assert.Nil(t, args[4].(*string))
}

func TestBuildHistoryQuery(t *testing.T) {
	sql, args, err := buildHistoryQuery("abc")
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, session_id, role, message, confidence, source, created_at FROM chat_history WHERE session_id = $1 ORDER BY created_at ASC, id ASC",
		sql,
	)
	assert.Equal(t, []any{"abc"}, args)
}
