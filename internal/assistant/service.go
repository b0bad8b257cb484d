// Package assistant wires the dispatcher, classifier, generator, and session
// store into the produced chat/voice/history interface.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paperstreet/tradetalk/internal/dispatch"
	"github.com/paperstreet/tradetalk/internal/models"
	"github.com/paperstreet/tradetalk/internal/session"
	"github.com/paperstreet/tradetalk/internal/voice"
)

const maxMessageLen = 1000

// ErrInvalidInput marks client errors rejected before dispatch.
var ErrInvalidInput = errors.New("assistant: invalid input")

// Service implements the produced interface consumed by the UI/CLI layer.
type Service struct {
	dispatcher *dispatch.Dispatcher
	store      session.Store
	generator  Generator // nil means canned replies only
}

// NewService wires the assistant. generator may be nil when no AI backend is
// configured; replies then fall back to the composed narrative.
func NewService(dispatcher *dispatch.Dispatcher, store session.Store, generator Generator) *Service {
	return &Service{
		dispatcher: dispatcher,
		store:      store,
		generator:  generator,
	}
}

// ChatInput is one inbound text turn.
type ChatInput struct {
	Message   string
	UserID    string
	SessionID string
	UserEmail string
	Platform  string
	UserAgent string
}

// ChatOutput is the reply payload for one turn.
type ChatOutput struct {
	Response       string              `json:"response"`
	StockData      *models.QuoteRecord `json:"stock_data,omitempty"`
	AdditionalData any                 `json:"additional_data,omitempty"`
	Suggestions    []string            `json:"suggestions"`
	SessionID      string              `json:"session_id"`
}

// Chat validates, dispatches, generates the reply, and records the turn.
// Persistence failures never fail the request: the reply is still returned
// and the gap only shows on a later history read.
func (s *Service) Chat(ctx context.Context, in ChatInput) (*ChatOutput, error) {
	if err := validateMessage(in.Message); err != nil {
		return nil, err
	}
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result, err := s.dispatcher.Dispatch(ctx, in.Message)
	if err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}

	response := s.generateReply(ctx, in, sessionID, result)

	now := time.Now()
	userMsg := models.Message{
		ID:        uuid.NewString(),
		Text:      in.Message,
		Sender:    models.SenderUser,
		Type:      models.TypeText,
		Timestamp: now,
	}
	assistantMsg := models.Message{
		ID:             uuid.NewString(),
		Text:           response,
		Sender:         models.SenderAssistant,
		Type:           models.TypeText,
		Timestamp:      now.Add(time.Millisecond),
		StockData:      result.StockData,
		AdditionalData: result.AdditionalData,
	}
	s.persistTurn(ctx, in, sessionID, userMsg, assistantMsg)

	return &ChatOutput{
		Response:       response,
		StockData:      result.StockData,
		AdditionalData: result.AdditionalData,
		Suggestions:    suggestionsFor(result),
		SessionID:      sessionID,
	}, nil
}

// VoiceInput is one inbound voice transcript.
type VoiceInput struct {
	Transcript string
	UserID     string
	SessionID  string
	UserEmail  string
	Language   string
	Platform   string
	UserAgent  string
}

// VoiceOutput carries the reply and the classified intent for the voice UI.
type VoiceOutput struct {
	Response   string              `json:"response"`
	Intent     string              `json:"intent"`
	IntentData *models.Intent      `json:"intent_data"`
	StockData  *models.QuoteRecord `json:"stock_data,omitempty"`
	SessionID  string              `json:"session_id"`
}

// Voice classifies the transcript. Data-seeking intents are forwarded
// through the same dispatcher path as text chat; navigation and action
// intents are returned for the UI to act on.
func (s *Service) Voice(ctx context.Context, in VoiceInput) (*VoiceOutput, error) {
	if err := validateMessage(in.Transcript); err != nil {
		return nil, err
	}
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	intent := voice.Classify(in.Transcript, nil)

	var response string
	var stockData *models.QuoteRecord
	switch intent.Type {
	case models.IntentStockData, models.IntentCompare, models.IntentNews:
		result, err := s.dispatcher.Dispatch(ctx, in.Transcript)
		if err != nil {
			return nil, fmt.Errorf("dispatch: %w", err)
		}
		response = s.generateReply(ctx, ChatInput{
			Message: in.Transcript, UserID: in.UserID, UserEmail: in.UserEmail,
		}, sessionID, result)
		stockData = result.StockData
		if intent.Type == models.IntentStockData && stockData != nil {
			intent = voice.Classify(in.Transcript, stockData)
		}
	case models.IntentNavigate:
		response = fmt.Sprintf("Taking you to %s.", strings.TrimPrefix(intent.Route, "/"))
	case models.IntentAction:
		response = fmt.Sprintf("Got it, preparing the %s action.", strings.ReplaceAll(intent.Action, "_", " "))
	default:
		response = cannedReply("", in.Transcript)
	}

	now := time.Now()
	userMsg := models.Message{
		ID:        uuid.NewString(),
		Text:      in.Transcript,
		Sender:    models.SenderUser,
		Type:      models.TypeVoiceInput,
		Timestamp: now,
		VoiceMetadata: &models.VoiceMetadata{
			IsVoiceInput: true,
			Confidence:   intent.Confidence,
			Language:     in.Language,
		},
	}
	assistantMsg := models.Message{
		ID:        uuid.NewString(),
		Text:      response,
		Sender:    models.SenderAssistant,
		Type:      models.TypeVoiceResponse,
		Timestamp: now.Add(time.Millisecond),
		StockData: stockData,
	}
	s.persistTurn(ctx, ChatInput{
		UserID: in.UserID, UserEmail: in.UserEmail,
		Platform: in.Platform, UserAgent: in.UserAgent,
	}, sessionID, userMsg, assistantMsg)

	return &VoiceOutput{
		Response:   response,
		Intent:     intent.Type,
		IntentData: &intent,
		StockData:  stockData,
		SessionID:  sessionID,
	}, nil
}

// History returns paginated sessions for a user.
func (s *Service) History(ctx context.Context, userID string, opts session.HistoryOptions) (*session.HistoryPage, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.store.GetHistory(ctx, userID, opts)
}

// EndSession marks a session inactive.
func (s *Service) EndSession(ctx context.Context, userID, sessionID string) error {
	if userID == "" || sessionID == "" {
		return fmt.Errorf("%w: user id and session id are required", ErrInvalidInput)
	}
	return s.store.EndSession(ctx, userID, sessionID)
}

func (s *Service) generateReply(ctx context.Context, in ChatInput, sessionID string, result *dispatch.HandlerResult) string {
	if s.generator == nil {
		return cannedReply(result.NarrativeContext, in.Message)
	}

	history := s.recentHistory(ctx, in.UserID, sessionID)
	prompt := fmt.Sprintf("User asked: %s\n\nMarket context:\n%s", in.Message, result.NarrativeContext)
	reply, err := s.generator.Generate(ctx, prompt, history)
	if err != nil {
		slog.Warn("generation failed, using canned reply", "error", err)
		return cannedReply(result.NarrativeContext, in.Message)
	}
	return reply
}

func (s *Service) recentHistory(ctx context.Context, userID, sessionID string) []models.Message {
	page, err := s.store.GetHistory(ctx, userID, session.HistoryOptions{
		SessionID:       sessionID,
		IncludeMessages: true,
		MessageLimit:    6,
	})
	if err != nil || len(page.Sessions) == 0 {
		return nil
	}
	return page.Sessions[0].Messages
}

func (s *Service) persistTurn(ctx context.Context, in ChatInput, sessionID string, userMsg, assistantMsg models.Message) {
	_, err := s.store.AppendTurn(ctx, in.UserID, sessionID, in.UserEmail,
		userMsg, assistantMsg, session.ClientMeta{
			Platform:  in.Platform,
			UserAgent: in.UserAgent,
		})
	if err != nil {
		// Documented degradation: the reply still goes out, history will
		// show a gap.
		slog.Warn("failed to persist turn",
			"user_id", in.UserID, "session_id", sessionID, "error", err)
	}
}

func validateMessage(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: message is empty", ErrInvalidInput)
	}
	if len(trimmed) > maxMessageLen {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, maxMessageLen)
	}
	return nil
}

func suggestionsFor(result *dispatch.HandlerResult) []string {
	switch data := result.AdditionalData.(type) {
	case *models.Comparison:
		return []string{
			fmt.Sprintf("News about %s", data.First.Symbol),
			fmt.Sprintf("News about %s", data.Second.Symbol),
			"Top gainers today",
		}
	case *models.MoverList:
		return []string{"Top losers today", "Market news", "What is market cap?"}
	case *models.NewsList:
		return []string{"Top gainers today", "Top losers today"}
	}
	if result.StockData != nil {
		symbol := result.StockData.Symbol
		return []string{
			fmt.Sprintf("News about %s", symbol),
			fmt.Sprintf("Compare %s and NIFTY peers", symbol),
			"Top gainers today",
		}
	}
	return []string{
		"What is TCS stock price",
		"Top gainers today",
		"Compare TCS and INFY",
	}
}
