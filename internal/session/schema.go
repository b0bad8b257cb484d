package session

import (
	"encoding/json"
	"time"

	"github.com/paperstreet/tradetalk/internal/models"
)

// sessionRow is the gorm mapping for one chat session.
type sessionRow struct {
	UserID        string    `gorm:"primaryKey;size:128"`
	SessionID     string    `gorm:"primaryKey;size:128"`
	UserEmail     string    `gorm:"size:256"`
	StartedAt     time.Time
	LastActiveAt  time.Time `gorm:"index"`
	EndedAt       *time.Time
	TotalMessages int
	IsActive      bool
	Platform      string `gorm:"size:64"`
	UserAgent     string `gorm:"size:256"`
}

func (sessionRow) TableName() string { return "chat_sessions" }

// messageRow is the gorm mapping for one message. Seq preserves insertion
// order within a session even when timestamps collide.
type messageRow struct {
	ID             string `gorm:"primaryKey;size:64"`
	UserID         string `gorm:"index:idx_messages_session;size:128"`
	SessionID      string `gorm:"index:idx_messages_session;size:128"`
	Seq            int    `gorm:"index:idx_messages_session"`
	Text           string
	Sender         string `gorm:"size:16"`
	Type           string `gorm:"size:24"`
	Timestamp      time.Time
	StockData      []byte
	AdditionalData []byte
	VoiceMetadata  []byte
}

func (messageRow) TableName() string { return "chat_messages" }

func toMessageRow(userID, sessionID string, seq int, msg models.Message) messageRow {
	row := messageRow{
		ID:        msg.ID,
		UserID:    userID,
		SessionID: sessionID,
		Seq:       seq,
		Text:      msg.Text,
		Sender:    msg.Sender,
		Type:      msg.Type,
		Timestamp: msg.Timestamp,
	}
	if msg.StockData != nil {
		row.StockData, _ = json.Marshal(msg.StockData)
	}
	if msg.AdditionalData != nil {
		row.AdditionalData, _ = json.Marshal(msg.AdditionalData)
	}
	if msg.VoiceMetadata != nil {
		row.VoiceMetadata, _ = json.Marshal(msg.VoiceMetadata)
	}
	return row
}

func fromMessageRow(row messageRow) models.Message {
	msg := models.Message{
		ID:        row.ID,
		Text:      row.Text,
		Sender:    row.Sender,
		Type:      row.Type,
		Timestamp: row.Timestamp,
	}
	if len(row.StockData) > 0 {
		var record models.QuoteRecord
		if json.Unmarshal(row.StockData, &record) == nil {
			msg.StockData = &record
		}
	}
	if len(row.AdditionalData) > 0 {
		var payload any
		if json.Unmarshal(row.AdditionalData, &payload) == nil {
			msg.AdditionalData = payload
		}
	}
	if len(row.VoiceMetadata) > 0 {
		var meta models.VoiceMetadata
		if json.Unmarshal(row.VoiceMetadata, &meta) == nil {
			msg.VoiceMetadata = &meta
		}
	}
	return msg
}

func fromSessionRow(row sessionRow, messages []models.Message) models.ChatSession {
	return models.ChatSession{
		UserID:    row.UserID,
		SessionID: row.SessionID,
		UserEmail: row.UserEmail,
		Messages:  messages,
		Metadata: models.SessionMetadata{
			StartedAt:     row.StartedAt,
			LastActiveAt:  row.LastActiveAt,
			EndedAt:       row.EndedAt,
			TotalMessages: row.TotalMessages,
			IsActive:      row.IsActive,
			Platform:      row.Platform,
			UserAgent:     row.UserAgent,
		},
	}
}
