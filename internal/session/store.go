// Package session persists the append-only conversation log. One Store
// interface, two interchangeable drivers: an in-memory map for tests and
// ephemeral demos, and a gorm-backed store for production.
package session

import (
	"context"
	"errors"

	"github.com/paperstreet/tradetalk/internal/models"
)

var (
	// ErrNotFound indicates no session exists for the key.
	ErrNotFound = errors.New("session: not found")
)

// ClientMeta carries the insert-only session attributes captured on the
// first turn.
type ClientMeta struct {
	Platform  string
	UserAgent string
}

// HistoryOptions controls GetHistory pagination and message truncation.
type HistoryOptions struct {
	SessionID       string // restrict to one session when non-empty
	Page            int    // 1-based
	Limit           int
	IncludeMessages bool
	MessageLimit    int // keep only the most recent N messages per session
}

// HistoryPage is one page of sessions sorted by last activity, newest first.
type HistoryPage struct {
	Sessions   []models.ChatSession `json:"sessions"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	Total      int64                `json:"total"`
	TotalPages int                  `json:"total_pages"`
}

// Store is the conversation session persistence contract.
type Store interface {
	// AppendTurn atomically upserts the (userID, sessionID) session and
	// appends the user and assistant messages in one logical operation.
	// Insert-only metadata (StartedAt, Platform) is never reset by later
	// calls. Concurrent calls for the same key must not lose messages.
	AppendTurn(ctx context.Context, userID, sessionID, userEmail string,
		userMsg, assistantMsg models.Message, meta ClientMeta) (*models.ChatSession, error)

	// GetHistory returns paginated sessions sorted by LastActiveAt
	// descending.
	GetHistory(ctx context.Context, userID string, opts HistoryOptions) (*HistoryPage, error)

	// EndSession marks the session inactive. Idempotent: ending an already
	// ended session succeeds without changing EndedAt.
	EndSession(ctx context.Context, userID, sessionID string) error

	// Close releases driver resources.
	Close() error
}

func normalizeHistoryOptions(opts *HistoryOptions) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
}

// truncateMessages keeps only the most recent limit messages.
func truncateMessages(messages []models.Message, limit int) []models.Message {
	if limit <= 0 || len(messages) <= limit {
		return messages
	}
	return messages[len(messages)-limit:]
}
