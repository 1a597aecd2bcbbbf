package dto

type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Query     string `json:"query"`
}

type ChatResponse struct {
	Response   string  `json:"response"`
	SessionID  string  `json:"session_id"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

type HistoryEntry struct {
	Role       string   `json:"role"`
	Message    string   `json:"message"`
	Source     *string  `json:"source"`
	Confidence *float64 `json:"confidence"`
	Timestamp  string   `json:"timestamp"`
}

type HistoryResponse struct {
	SessionID string         `json:"session_id"`
	History   []HistoryEntry `json:"history"`
}

type StatusResponse struct {
	Message string `json:"message"`
}
