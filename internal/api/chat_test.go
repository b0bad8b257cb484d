package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/paperstreet/tradetalk/internal/assistant"
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

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	provider := &fakeProvider{quotes: map[string]*models.QuoteRecord{
		"TCS": {Symbol: "TCS", Price: decimal.NewFromFloat(3500), Source: "fake"},
	}}
	gateway := marketdata.NewGateway(provider, &fakeProvider{})
	svc := assistant.NewService(dispatch.NewDispatcher(gateway), session.NewMemoryStore(), nil)
	server := httptest.NewServer(NewRouter(svc))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func TestChatEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/chat", ChatRequest{
		Message: "What is TCS stock price", UserID: "u1", SessionID: "s1",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out assistant.ChatOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotNil(t, out.StockData)
	require.Equal(t, "TCS", out.StockData.Symbol)
	require.Equal(t, "s1", out.SessionID)
}

func TestChatEndpointRejectsEmptyMessage(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/chat", ChatRequest{Message: "", UserID: "u1"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatEndpointUnknownSymbolIsStillOK(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/chat", ChatRequest{
		Message: "What is ZZZZ stock price", UserID: "u1",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out assistant.ChatOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Nil(t, out.StockData)
	require.NotEmpty(t, out.Response)
}

func TestVoiceEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/voice", VoiceRequest{
		Transcript: "go to portfolio", UserID: "u1",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out assistant.VoiceOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, models.IntentNavigate, out.Intent)
	require.Equal(t, "/portfolio", out.IntentData.Route)
}

func TestHistoryEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/chat", ChatRequest{
		Message: "hello there", UserID: "u1", SessionID: "s1",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(server.URL + "/api/history/u1?include_messages=true")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page session.HistoryPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.EqualValues(t, 1, page.Total)
	require.Len(t, page.Sessions[0].Messages, 2)
}

func TestEndSessionEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/chat", ChatRequest{
		Message: "hello there", UserID: "u1", SessionID: "s1",
	})
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/api/sessions/u1/s1/end", struct{}{})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEndSessionEndpointUnknownSessionIs404(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, fmt.Sprintf("%s/api/sessions/u1/%s/end", server.URL, "nope"), struct{}{})
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
