package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/paperstreet/tradetalk/internal/dispatch"
	"github.com/paperstreet/tradetalk/internal/marketdata"
	"github.com/paperstreet/tradetalk/internal/models"
	"github.com/paperstreet/tradetalk/internal/session"
)

type fakeProvider struct {
	quotes map[string]*models.QuoteRecord
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Quote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	if record, ok := f.quotes[symbol]; ok {
		return record, nil
	}
	return nil, marketdata.ErrNotFound
}

func (f *fakeProvider) Movers(ctx context.Context, kind string) ([]models.Mover, error) {
	return nil, marketdata.ErrNotFound
}

func (f *fakeProvider) News(ctx context.Context, symbol string) ([]models.NewsArticle, error) {
	return nil, marketdata.ErrNotFound
}

type echoGenerator struct{ fail bool }

func (g *echoGenerator) Generate(ctx context.Context, prompt string, history []models.Message) (string, error) {
	if g.fail {
		return "", errors.New("model unavailable")
	}
	return "generated: " + prompt, nil
}

type failingStore struct{ session.Store }

func (f *failingStore) AppendTurn(ctx context.Context, userID, sessionID, userEmail string,
	userMsg, assistantMsg models.Message, meta session.ClientMeta) (*models.ChatSession, error) {
	return nil, errors.New("database down")
}

func newTestService(t *testing.T, quotes map[string]*models.QuoteRecord, gen Generator, store session.Store) *Service {
	t.Helper()
	gateway := marketdata.NewGateway(&fakeProvider{quotes: quotes}, &fakeProvider{})
	if store == nil {
		store = session.NewMemoryStore()
	}
	return NewService(dispatch.NewDispatcher(gateway), store, gen)
}

func tcsQuote() *models.QuoteRecord {
	return &models.QuoteRecord{
		Symbol: "TCS",
		Price:  decimal.NewFromFloat(3500),
		Source: "fake",
	}
}

func TestChatRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	_, err := svc.Chat(context.Background(), ChatInput{Message: "  ", UserID: "u1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Chat(context.Background(), ChatInput{
		Message: strings.Repeat("x", 1001), UserID: "u1",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Chat(context.Background(), ChatInput{Message: "hello"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestChatResolvesQuoteAndPersistsTurn(t *testing.T) {
	store := session.NewMemoryStore()
	svc := newTestService(t, map[string]*models.QuoteRecord{"TCS": tcsQuote()}, nil, store)

	out, err := svc.Chat(context.Background(), ChatInput{
		Message: "What is TCS stock price", UserID: "u1", SessionID: "s1",
	})
	require.NoError(t, err)
	require.NotNil(t, out.StockData)
	require.Equal(t, "TCS", out.StockData.Symbol)
	require.Equal(t, "s1", out.SessionID)
	require.NotEmpty(t, out.Suggestions)

	page, err := store.GetHistory(context.Background(), "u1", session.HistoryOptions{
		SessionID: "s1", IncludeMessages: true,
	})
	require.NoError(t, err)
	require.Len(t, page.Sessions, 1)
	require.Len(t, page.Sessions[0].Messages, 2)
	require.Equal(t, models.SenderUser, page.Sessions[0].Messages[0].Sender)
	require.Equal(t, models.SenderAssistant, page.Sessions[0].Messages[1].Sender)
}

func TestChatGeneratesSessionIDWhenMissing(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	out, err := svc.Chat(context.Background(), ChatInput{Message: "hello there", UserID: "u1"})
	require.NoError(t, err)
	require.NotEmpty(t, out.SessionID)
}

func TestChatSurvivesPersistenceFailure(t *testing.T) {
	store := &failingStore{Store: session.NewMemoryStore()}
	svc := newTestService(t, map[string]*models.QuoteRecord{"TCS": tcsQuote()}, nil, store)

	out, err := svc.Chat(context.Background(), ChatInput{
		Message: "What is TCS stock price", UserID: "u1", SessionID: "s1",
	})
	require.NoError(t, err)
	require.NotNil(t, out.StockData)
}

func TestChatFallsBackToCannedReplyOnGenerationFailure(t *testing.T) {
	svc := newTestService(t, map[string]*models.QuoteRecord{"TCS": tcsQuote()},
		&echoGenerator{fail: true}, nil)

	out, err := svc.Chat(context.Background(), ChatInput{
		Message: "What is TCS stock price", UserID: "u1", SessionID: "s1",
	})
	require.NoError(t, err)
	// The canned path falls back to the composed narrative.
	require.Contains(t, out.Response, "TCS")
}

func TestChatUsesGenerator(t *testing.T) {
	svc := newTestService(t, map[string]*models.QuoteRecord{"TCS": tcsQuote()},
		&echoGenerator{}, nil)

	out, err := svc.Chat(context.Background(), ChatInput{
		Message: "What is TCS stock price", UserID: "u1", SessionID: "s1",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out.Response, "generated:"))
}

func TestVoiceNavigationIntent(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	out, err := svc.Voice(context.Background(), VoiceInput{
		Transcript: "go to portfolio", UserID: "u1", SessionID: "s1",
	})
	require.NoError(t, err)
	require.Equal(t, models.IntentNavigate, out.Intent)
	require.Equal(t, "/portfolio", out.IntentData.Route)
}

func TestVoiceStockDataForwardsThroughDispatcher(t *testing.T) {
	store := session.NewMemoryStore()
	svc := newTestService(t, map[string]*models.QuoteRecord{"TCS": tcsQuote()}, nil, store)

	out, err := svc.Voice(context.Background(), VoiceInput{
		Transcript: "what is the price of TCS", UserID: "u1", SessionID: "s1",
	})
	require.NoError(t, err)
	require.Equal(t, models.IntentStockData, out.Intent)
	require.NotNil(t, out.StockData)

	page, err := store.GetHistory(context.Background(), "u1", session.HistoryOptions{
		SessionID: "s1", IncludeMessages: true,
	})
	require.NoError(t, err)
	messages := page.Sessions[0].Messages
	require.Equal(t, models.TypeVoiceInput, messages[0].Type)
	require.NotNil(t, messages[0].VoiceMetadata)
	require.True(t, messages[0].VoiceMetadata.IsVoiceInput)
	require.Equal(t, models.TypeVoiceResponse, messages[1].Type)
}

func TestEndSessionValidation(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	require.ErrorIs(t, svc.EndSession(context.Background(), "", "s1"), ErrInvalidInput)
}
