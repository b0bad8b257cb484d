package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/paperstreet/tradetalk/internal/assistant"
	"github.com/paperstreet/tradetalk/internal/session"
)

// ChatService exposes the assistant over HTTP.
type ChatService struct {
	svc *assistant.Service
}

func NewChatService(svc *assistant.Service) *ChatService {
	return &ChatService{svc: svc}
}

func (s *ChatService) AddRoutes(r chi.Router) {
	r.Post("/chat", RestHandler(s.Chat))
	r.Post("/voice", RestHandler(s.Voice))
	r.Get("/history/{user_id}", RestHandler(s.History))
	r.Post("/sessions/{user_id}/{session_id}/end", RestHandler(s.EndSession))
}

type ChatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	UserEmail string `json:"user_email"`
	Platform  string `json:"platform"`
}

func (s *ChatService) Chat(r *http.Request) (any, error) {
	req, err := ParseRequest[ChatRequest](r)
	if err != nil {
		return nil, err
	}

	return s.svc.Chat(r.Context(), assistant.ChatInput{
		Message:   req.Message,
		UserID:    req.UserID,
		SessionID: req.SessionID,
		UserEmail: req.UserEmail,
		Platform:  req.Platform,
		UserAgent: r.UserAgent(),
	})
}

type VoiceRequest struct {
	Transcript string `json:"transcript"`
	UserID     string `json:"user_id"`
	SessionID  string `json:"session_id"`
	UserEmail  string `json:"user_email"`
	Language   string `json:"language"`
	Platform   string `json:"platform"`
}

func (s *ChatService) Voice(r *http.Request) (any, error) {
	req, err := ParseRequest[VoiceRequest](r)
	if err != nil {
		return nil, err
	}

	return s.svc.Voice(r.Context(), assistant.VoiceInput{
		Transcript: req.Transcript,
		UserID:     req.UserID,
		SessionID:  req.SessionID,
		UserEmail:  req.UserEmail,
		Language:   req.Language,
		Platform:   req.Platform,
		UserAgent:  r.UserAgent(),
	})
}

func (s *ChatService) History(r *http.Request) (any, error) {
	userID, err := URLParam(r, "user_id")
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	opts := session.HistoryOptions{
		SessionID:       query.Get("session_id"),
		IncludeMessages: query.Get("include_messages") == "true",
	}
	opts.Page, _ = strconv.Atoi(query.Get("page"))
	opts.Limit, _ = strconv.Atoi(query.Get("limit"))
	opts.MessageLimit, _ = strconv.Atoi(query.Get("message_limit"))

	return s.svc.History(r.Context(), userID, opts)
}

func (s *ChatService) EndSession(r *http.Request) (any, error) {
	userID, err := URLParam(r, "user_id")
	if err != nil {
		return nil, err
	}
	sessionID, err := URLParam(r, "session_id")
	if err != nil {
		return nil, err
	}

	if err := s.svc.EndSession(r.Context(), userID, sessionID); err != nil {
		return nil, err
	}
	return map[string]string{"status": "ended"}, nil
}
