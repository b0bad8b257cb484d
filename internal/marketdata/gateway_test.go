package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paperstreet/tradetalk/internal/models"
)

type stubProvider struct {
	name     string
	quotes   map[string]*models.QuoteRecord
	attempts []string
	movers   []models.Mover
	news     []models.NewsArticle
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Quote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	s.attempts = append(s.attempts, symbol)
	if record, ok := s.quotes[symbol]; ok {
		return record, nil
	}
	return nil, ErrNotFound
}

func (s *stubProvider) Movers(ctx context.Context, kind string) ([]models.Mover, error) {
	if len(s.movers) == 0 {
		return nil, ErrNotFound
	}
	return s.movers, nil
}

func (s *stubProvider) News(ctx context.Context, symbol string) ([]models.NewsArticle, error) {
	if len(s.news) == 0 {
		return nil, ErrNotFound
	}
	return s.news, nil
}

func record(symbol, source string) *models.QuoteRecord {
	return &models.QuoteRecord{
		Symbol:     symbol,
		Price:      decimal.NewFromFloat(123.45),
		Source:     source,
		ResolvedAt: time.Now(),
	}
}

func TestVariants(t *testing.T) {
	got := Variants("TCS")
	want := []string{"TCS", "TCS.NS", "TCS.BO"}
	if len(got) != len(want) {
		t.Fatalf("Variants(TCS) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Variants(TCS) = %v, want %v", got, want)
		}
	}

	got = Variants("RELIANCE.NS")
	want = []string{"RELIANCE.NS", "RELIANCE.BO", "RELIANCE"}
	if len(got) != len(want) {
		t.Fatalf("Variants(RELIANCE.NS) = %v, want %v", got, want)
	}
}

func TestGetQuoteIndianTickerPrefersIndiaProvider(t *testing.T) {
	global := &stubProvider{name: "global", quotes: map[string]*models.QuoteRecord{
		"TCS.NS": record("TCS.NS", "global"),
	}}
	india := &stubProvider{name: "india", quotes: map[string]*models.QuoteRecord{
		"TCS.NS": record("TCS.NS", "india"),
	}}
	g := NewGateway(global, india)

	got := g.GetQuote(context.Background(), "TCS")
	if got == nil {
		t.Fatal("expected a quote")
	}
	if got.Source != "india" {
		t.Fatalf("expected india provider to win, got %s", got.Source)
	}
}

func TestGetQuoteFallsBackToSecondProvider(t *testing.T) {
	global := &stubProvider{name: "global"}
	india := &stubProvider{name: "india", quotes: map[string]*models.QuoteRecord{
		"AAPL": record("AAPL", "india"),
	}}
	g := NewGateway(global, india)

	got := g.GetQuote(context.Background(), "AAPL")
	if got == nil || got.Source != "india" {
		t.Fatalf("expected fallback provider to answer, got %+v", got)
	}
	// AAPL is not on the Indian allow-list, so the global provider must have
	// been tried first and exhausted all its variants.
	if len(global.attempts) != len(Variants("AAPL")) {
		t.Fatalf("global provider tried %d variants, want %d",
			len(global.attempts), len(Variants("AAPL")))
	}
}

func TestGetQuoteExhaustedReturnsNilWithinBoundedAttempts(t *testing.T) {
	global := &stubProvider{name: "global"}
	india := &stubProvider{name: "india"}
	g := NewGateway(global, india)

	if got := g.GetQuote(context.Background(), "ZZZZZZ"); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}

	maxAttempts := len(Variants("ZZZZZZ"))
	if len(global.attempts) > maxAttempts || len(india.attempts) > maxAttempts {
		t.Fatalf("unbounded attempts: global=%d india=%d max=%d",
			len(global.attempts), len(india.attempts), maxAttempts)
	}
}

func TestGetQuoteUsesCache(t *testing.T) {
	global := &stubProvider{name: "global", quotes: map[string]*models.QuoteRecord{
		"AAPL": record("AAPL", "global"),
	}}
	g := NewGateway(global, &stubProvider{name: "india"},
		WithQuoteCache(time.Minute, 8))

	first := g.GetQuote(context.Background(), "AAPL")
	attemptsAfterFirst := len(global.attempts)
	second := g.GetQuote(context.Background(), "AAPL")

	if first == nil || second == nil {
		t.Fatal("expected quotes from both calls")
	}
	if len(global.attempts) != attemptsAfterFirst {
		t.Fatalf("second lookup hit the provider, attempts=%d", len(global.attempts))
	}
}

func TestTopMoversFallsThroughProviders(t *testing.T) {
	global := &stubProvider{name: "global"}
	india := &stubProvider{name: "india", movers: []models.Mover{{Symbol: "TCS"}}}
	g := NewGateway(global, india)

	movers := g.TopMovers(context.Background(), KindGainers)
	if len(movers) != 1 || movers[0].Symbol != "TCS" {
		t.Fatalf("unexpected movers: %+v", movers)
	}
}

func TestIsIndianTickerStripsSuffix(t *testing.T) {
	for _, symbol := range []string{"RELIANCE", "RELIANCE.NS", "RELIANCE.BO", "reliance.nse"} {
		if !IsIndianTicker(symbol) {
			t.Fatalf("expected %s to be recognized", symbol)
		}
	}
	if IsIndianTicker("AAPL") {
		t.Fatal("AAPL should not be on the allow-list")
	}
}
