package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"

	"github.com/paperstreet/tradetalk/internal/config"
	"github.com/paperstreet/tradetalk/internal/models"
)

// Generator produces the conversational reply from the handler's narrative
// context. It is an opaque collaborator: the core only supplies formatted
// context and consumes free text.
type Generator interface {
	Generate(ctx context.Context, prompt string, history []models.Message) (string, error)
}

const systemPrompt = `You are TradeTalk, a friendly assistant inside a stock trading simulator.
Answer briefly and conversationally using ONLY the market context supplied in the user message.
Never invent prices. Remind users this is a simulator only when they ask about real money.`

// ChatModelGenerator adapts an eino chat model to the Generator contract.
type ChatModelGenerator struct {
	model *openai.ChatModel
}

// NewChatModelGenerator builds the OpenAI-compatible chat model backend.
func NewChatModelGenerator(ctx context.Context, cfg *config.Config) (*ChatModelGenerator, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	maxTokens := 512
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:   cfg.OpenAIBaseURL,
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.ChatModel,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}
	return &ChatModelGenerator{model: chatModel}, nil
}

func (g *ChatModelGenerator) Generate(ctx context.Context, prompt string, history []models.Message) (string, error) {
	messages := []*schema.Message{schema.SystemMessage(systemPrompt)}
	for _, msg := range history {
		if msg.Sender == models.SenderAssistant {
			messages = append(messages, schema.AssistantMessage(msg.Text, nil))
		} else {
			messages = append(messages, schema.UserMessage(msg.Text))
		}
	}
	messages = append(messages, schema.UserMessage(prompt))

	reply, err := g.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return reply.Content, nil
}

// cannedReply covers generation failures with a small set of topic-aware
// fallbacks keyed on simple keyword checks. The narrative context itself is
// already user-presentable, so it leads the reply.
func cannedReply(narrative, userText string) string {
	if narrative != "" {
		return narrative
	}

	lower := strings.ToLower(userText)
	switch {
	case strings.Contains(lower, "buy") || strings.Contains(lower, "sell"):
		return "Trading happens on the trade page. Pick a stock, choose a quantity, and place a simulated order there."
	case strings.Contains(lower, "portfolio") || strings.Contains(lower, "holding"):
		return "Your simulated portfolio is on the portfolio page, including holdings and returns."
	case strings.Contains(lower, "price") || strings.Contains(lower, "stock"):
		return "I can look up live prices for you. Try asking with a ticker symbol, like \"what is TCS stock price\"."
	case strings.Contains(lower, "news"):
		return "Ask me for market news, or news about a specific stock, and I'll fetch the latest headlines."
	default:
		return "I can help with stock prices, market news, top movers, and comparisons. What would you like to know?"
	}
}
