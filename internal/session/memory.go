package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/paperstreet/tradetalk/internal/models"
)

// MemoryStore implements Store with a process-local map. Suitable for tests
// and the interactive CLI; nothing survives a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*models.ChatSession
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.ChatSession)}
}

func sessionKey(userID, sessionID string) string {
	return userID + "/" + sessionID
}

func (s *MemoryStore) AppendTurn(ctx context.Context, userID, sessionID, userEmail string,
	userMsg, assistantMsg models.Message, meta ClientMeta) (*models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	key := sessionKey(userID, sessionID)
	sess, ok := s.sessions[key]
	if !ok {
		sess = &models.ChatSession{
			UserID:    userID,
			SessionID: sessionID,
			UserEmail: userEmail,
			Metadata: models.SessionMetadata{
				StartedAt: now,
				IsActive:  true,
				Platform:  meta.Platform,
				UserAgent: meta.UserAgent,
			},
		}
		s.sessions[key] = sess
	}

	sess.Messages = append(sess.Messages, userMsg, assistantMsg)
	sess.Metadata.LastActiveAt = now
	sess.Metadata.TotalMessages = len(sess.Messages)
	if userEmail != "" {
		sess.UserEmail = userEmail
	}

	snapshot := *sess
	snapshot.Messages = append([]models.Message(nil), sess.Messages...)
	return &snapshot, nil
}

func (s *MemoryStore) GetHistory(ctx context.Context, userID string, opts HistoryOptions) (*HistoryPage, error) {
	normalizeHistoryOptions(&opts)

	s.mu.Lock()
	var matched []*models.ChatSession
	for _, sess := range s.sessions {
		if sess.UserID != userID {
			continue
		}
		if opts.SessionID != "" && sess.SessionID != opts.SessionID {
			continue
		}
		matched = append(matched, sess)
	}
	// Copy under the lock so pagination and truncation can run outside it.
	sessions := make([]models.ChatSession, 0, len(matched))
	for _, sess := range matched {
		snapshot := *sess
		snapshot.Messages = append([]models.Message(nil), sess.Messages...)
		sessions = append(sessions, snapshot)
	}
	s.mu.Unlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Metadata.LastActiveAt.After(sessions[j].Metadata.LastActiveAt)
	})

	total := int64(len(sessions))
	start := (opts.Page - 1) * opts.Limit
	if start > len(sessions) {
		start = len(sessions)
	}
	end := start + opts.Limit
	if end > len(sessions) {
		end = len(sessions)
	}
	page := sessions[start:end]

	for i := range page {
		if !opts.IncludeMessages {
			page[i].Messages = nil
			continue
		}
		page[i].Messages = truncateMessages(page[i].Messages, opts.MessageLimit)
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit != 0 {
		totalPages++
	}

	return &HistoryPage{
		Sessions:   page,
		Page:       opts.Page,
		Limit:      opts.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *MemoryStore) EndSession(ctx context.Context, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey(userID, sessionID)]
	if !ok {
		return ErrNotFound
	}
	if !sess.Metadata.IsActive {
		return nil
	}
	now := time.Now()
	sess.Metadata.IsActive = false
	sess.Metadata.EndedAt = &now
	return nil
}

func (s *MemoryStore) Close() error { return nil }
