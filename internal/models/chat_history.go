package models

import "time"

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Source identifies the pipeline stage that produced a bot reply.
type Source string

const (
	SourceIntent     Source = "intent"
	SourceFAQ        Source = "faq"
	SourceGemini     Source = "gemini"
	SourceEscalation Source = "escalation"
	SourceNone       Source = "none"
)

// TurnRecord is one row of the append-only chat log.
// Confidence and Source are nil for user turns.
type TurnRecord struct {
	ID         int64     `db:"id"`
	SessionID  string    `db:"session_id"`
	Role       Role      `db:"role"`
	Message    string    `db:"message"`
	Confidence *float64  `db:"confidence"`
	Source     *Source   `db:"source"`
	Timestamp  time.Time `db:"created_at"`
}
