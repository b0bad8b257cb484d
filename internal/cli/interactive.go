package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paperstreet/tradetalk/internal/assistant"
	"github.com/paperstreet/tradetalk/internal/config"
)

// runChatREPL drives the interactive terminal chat. One REPL run is one
// session: it ends the session on exit so history reads show it closed.
func runChatREPL(cfg *config.Config) error {
	ctx := context.Background()

	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ClearScreen()
	DisplayWelcomeBanner()

	userID, err := PromptForUserID()
	if err != nil {
		return err
	}

	var sessionID string
	for {
		message, err := PromptForMessage()
		if err != nil {
			// Ctrl-C or closed stdin ends the chat
			break
		}
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			confirmed, err := PromptForConfirmation("End this chat session?")
			if err != nil || confirmed {
				break
			}
			continue
		}

		out, err := svc.Chat(ctx, assistant.ChatInput{
			Message:   message,
			UserID:    userID,
			SessionID: sessionID,
			Platform:  "cli",
		})
		if err != nil {
			if errors.Is(err, assistant.ErrInvalidInput) {
				DisplayError(err)
				continue
			}
			return fmt.Errorf("chat failed: %w", err)
		}

		if sessionID == "" {
			sessionID = out.SessionID
			DisplaySessionHeader(userID, sessionID)
		}
		DisplayAssistantReply(out.Response, out.StockData, out.Suggestions)
	}

	if sessionID != "" {
		if err := svc.EndSession(ctx, userID, sessionID); err != nil {
			slog.Warn("ending session", "error", err)
		}
	}
	fmt.Println("👋 Goodbye!")
	return nil
}
