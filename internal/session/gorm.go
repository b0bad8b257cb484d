package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/paperstreet/tradetalk/internal/models"
)

// GormStore implements Store on a relational database. AppendTurn runs as a
// single transaction: upsert the session row, insert both message rows.
type GormStore struct {
	db *gorm.DB

	// SQLite only supports one writer at a time, so writes are serialized.
	writeMu sync.Mutex
}

// OpenSQLite opens (and migrates) a sqlite-backed store at path.
func OpenSQLite(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an existing gorm handle and migrates the schema.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&sessionRow{}, &messageRow{}); err != nil {
		return nil, fmt.Errorf("migrate session schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) AppendTurn(ctx context.Context, userID, sessionID, userEmail string,
	userMsg, assistantMsg models.Message, meta ClientMeta) (*models.ChatSession, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := time.Now()
	var result sessionRow

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row sessionRow
		err := tx.Where("user_id = ? AND session_id = ?", userID, sessionID).
			First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Insert-only fields are set exactly once, here.
			row = sessionRow{
				UserID:       userID,
				SessionID:    sessionID,
				UserEmail:    userEmail,
				StartedAt:    now,
				LastActiveAt: now,
				IsActive:     true,
				Platform:     meta.Platform,
				UserAgent:    meta.UserAgent,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		seq := row.TotalMessages
		rows := []messageRow{
			toMessageRow(userID, sessionID, seq, userMsg),
			toMessageRow(userID, sessionID, seq+1, assistantMsg),
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"last_active_at": now,
			"total_messages": gorm.Expr("total_messages + ?", 2),
		}
		if userEmail != "" {
			updates["user_email"] = userEmail
		}
		if err := tx.Model(&sessionRow{}).
			Where("user_id = ? AND session_id = ?", userID, sessionID).
			Updates(updates).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND session_id = ?", userID, sessionID).
			First(&result).Error
	})
	if err != nil {
		return nil, fmt.Errorf("append turn: %w", err)
	}

	messages, err := s.loadMessages(ctx, userID, sessionID, 0)
	if err != nil {
		return nil, fmt.Errorf("append turn: %w", err)
	}
	snapshot := fromSessionRow(result, messages)
	return &snapshot, nil
}

// loadMessages returns a session's messages in insertion order, optionally
// truncated to the most recent limit entries.
func (s *GormStore) loadMessages(ctx context.Context, userID, sessionID string, limit int) ([]models.Message, error) {
	query := s.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID)

	var rows []messageRow
	if limit > 0 {
		// Fetch the newest entries, then restore chronological order.
		if err := query.Order("seq DESC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	} else {
		if err := query.Order("seq ASC").Find(&rows).Error; err != nil {
			return nil, err
		}
	}

	messages := make([]models.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, fromMessageRow(row))
	}
	return messages, nil
}

func (s *GormStore) GetHistory(ctx context.Context, userID string, opts HistoryOptions) (*HistoryPage, error) {
	normalizeHistoryOptions(&opts)

	query := s.db.WithContext(ctx).Model(&sessionRow{}).Where("user_id = ?", userID)
	if opts.SessionID != "" {
		query = query.Where("session_id = ?", opts.SessionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	var rows []sessionRow
	if err := query.
		Order("last_active_at DESC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := make([]models.ChatSession, 0, len(rows))
	for _, row := range rows {
		var messages []models.Message
		if opts.IncludeMessages {
			var err error
			messages, err = s.loadMessages(ctx, userID, row.SessionID, opts.MessageLimit)
			if err != nil {
				return nil, fmt.Errorf("load messages: %w", err)
			}
		}
		sessions = append(sessions, fromSessionRow(row, messages))
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit != 0 {
		totalPages++
	}

	return &HistoryPage{
		Sessions:   sessions,
		Page:       opts.Page,
		Limit:      opts.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *GormStore) EndSession(ctx context.Context, userID, sessionID string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var row sessionRow
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if !row.IsActive {
		return nil
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Model(&sessionRow{}).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Updates(map[string]any{"is_active": false, "ended_at": now}).Error
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
