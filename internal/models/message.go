package models

import "time"

// Message sender values.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message type values.
const (
	TypeText          = "text"
	TypeVoiceInput    = "voice_input"
	TypeVoiceResponse = "voice_response"
)

// VoiceMetadata carries the voice-path summary stored on a Message.
type VoiceMetadata struct {
	IsVoiceInput bool    `json:"is_voice_input"`
	Confidence   float64 `json:"confidence,omitempty"`
	Language     string  `json:"language,omitempty"`
}

// Message is one conversational turn unit. Immutable once created.
type Message struct {
	ID             string         `json:"id"`
	Text           string         `json:"text"`
	Sender         string         `json:"sender"`
	Type           string         `json:"type"`
	Timestamp      time.Time      `json:"timestamp"`
	StockData      *QuoteRecord   `json:"stock_data,omitempty"`
	AdditionalData any            `json:"additional_data,omitempty"`
	VoiceMetadata  *VoiceMetadata `json:"voice_metadata,omitempty"`
}

// SessionMetadata tracks per-session bookkeeping.
type SessionMetadata struct {
	StartedAt     time.Time  `json:"started_at"`
	LastActiveAt  time.Time  `json:"last_active_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	TotalMessages int        `json:"total_messages"`
	IsActive      bool       `json:"is_active"`
	Platform      string     `json:"platform,omitempty"`
	UserAgent     string     `json:"user_agent,omitempty"`
}

// ChatSession owns the ordered message log for one (userID, sessionID) pair.
// Messages are append-only and strictly insertion-ordered; TotalMessages
// always equals len(Messages).
type ChatSession struct {
	UserID    string          `json:"user_id"`
	SessionID string          `json:"session_id"`
	UserEmail string          `json:"user_email,omitempty"`
	Messages  []Message       `json:"messages"`
	Metadata  SessionMetadata `json:"metadata"`
}
