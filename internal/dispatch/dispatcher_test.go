package dispatch

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paperstreet/tradetalk/internal/marketdata"
	"github.com/paperstreet/tradetalk/internal/models"
)

type fakeProvider struct {
	name   string
	quotes map[string]*models.QuoteRecord
	movers map[string][]models.Mover
	news   []models.NewsArticle
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Quote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	if record, ok := f.quotes[symbol]; ok {
		return record, nil
	}
	return nil, marketdata.ErrNotFound
}

func (f *fakeProvider) Movers(ctx context.Context, kind string) ([]models.Mover, error) {
	if movers, ok := f.movers[kind]; ok {
		return movers, nil
	}
	return nil, marketdata.ErrNotFound
}

func (f *fakeProvider) News(ctx context.Context, symbol string) ([]models.NewsArticle, error) {
	if len(f.news) == 0 {
		return nil, marketdata.ErrNotFound
	}
	return f.news, nil
}

func quoteFor(symbol string, price float64) *models.QuoteRecord {
	return &models.QuoteRecord{
		Symbol:        symbol,
		Price:         decimal.NewFromFloat(price),
		Change:        decimal.NewFromFloat(1.5),
		ChangePercent: decimal.NewFromFloat(0.8),
		Source:        "test",
		ResolvedAt:    time.Now(),
	}
}

func testDispatcher(provider *fakeProvider) *Dispatcher {
	gateway := marketdata.NewGateway(provider, &fakeProvider{name: "empty"})
	return NewDispatcher(gateway)
}

func TestDispatchQuote(t *testing.T) {
	d := testDispatcher(&fakeProvider{
		name:   "global",
		quotes: map[string]*models.QuoteRecord{"TCS": quoteFor("TCS", 3500)},
	})

	result, err := d.Dispatch(context.Background(), "What is TCS stock price")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if result.StockData == nil || result.StockData.Symbol != "TCS" {
		t.Fatalf("expected TCS stock data, got %+v", result.StockData)
	}
	if !strings.Contains(result.NarrativeContext, "TCS") {
		t.Fatalf("narrative missing symbol:\n%s", result.NarrativeContext)
	}
}

func TestDispatchQuoteSymbolNotFoundIsSuccess(t *testing.T) {
	d := testDispatcher(&fakeProvider{name: "global"})

	result, err := d.Dispatch(context.Background(), "What is ZZZZZZ stock price")
	if err != nil {
		t.Fatalf("unresolvable symbol must not error: %v", err)
	}
	if result.StockData != nil {
		t.Fatal("expected nil stock data")
	}
	if !strings.Contains(result.NarrativeContext, "couldn't find") {
		t.Fatalf("expected explanatory narrative, got:\n%s", result.NarrativeContext)
	}
}

func TestDispatchRuleOrderDeterminism(t *testing.T) {
	d := testDispatcher(&fakeProvider{
		name: "global",
		quotes: map[string]*models.QuoteRecord{
			"TCS":  quoteFor("TCS", 3500),
			"INFY": quoteFor("INFY", 1400),
		},
	})

	// Matches both the comparison rule and the quote rule ("price of ...");
	// the comparison rule appears first in the table, so it must win.
	result, err := d.Dispatch(context.Background(), "compare TCS and INFY price of both")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	comparison, ok := result.AdditionalData.(*models.Comparison)
	if !ok {
		t.Fatalf("expected comparison payload, got %T", result.AdditionalData)
	}
	if comparison.Type != "stock_comparison" {
		t.Fatalf("unexpected payload type %q", comparison.Type)
	}
}

func TestDispatchCompare(t *testing.T) {
	d := testDispatcher(&fakeProvider{
		name: "global",
		quotes: map[string]*models.QuoteRecord{
			"TCS":  quoteFor("TCS", 3500),
			"INFY": quoteFor("INFY", 1400),
		},
	})

	result, err := d.Dispatch(context.Background(), "Compare TCS and INFY")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	comparison, ok := result.AdditionalData.(*models.Comparison)
	if !ok {
		t.Fatalf("expected comparison payload, got %T", result.AdditionalData)
	}
	if comparison.First.Symbol != "TCS" || comparison.Second.Symbol != "INFY" {
		t.Fatalf("unexpected pair: %s vs %s", comparison.First.Symbol, comparison.Second.Symbol)
	}
}

func TestDispatchGainers(t *testing.T) {
	d := testDispatcher(&fakeProvider{
		name: "global",
		movers: map[string][]models.Mover{
			"gainers": {{Symbol: "ADANIENT", ChangePercent: decimal.NewFromFloat(5.2)}},
		},
	})

	result, err := d.Dispatch(context.Background(), "show me top gainers today")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	list, ok := result.AdditionalData.(*models.MoverList)
	if !ok || list.Kind != "gainers" {
		t.Fatalf("unexpected payload: %+v", result.AdditionalData)
	}
}

func TestDispatchGlossary(t *testing.T) {
	d := testDispatcher(&fakeProvider{name: "global"})

	result, err := d.Dispatch(context.Background(), "what is the P/E ratio")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(result.NarrativeContext, "price-to-earnings") {
		t.Fatalf("expected glossary entry, got:\n%s", result.NarrativeContext)
	}
	if result.StockData != nil {
		t.Fatal("glossary reply should not carry stock data")
	}
}

func TestDispatchPortfolioPointer(t *testing.T) {
	d := testDispatcher(&fakeProvider{name: "global"})

	result, err := d.Dispatch(context.Background(), "show my portfolio")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(result.NarrativeContext, "portfolio page") {
		t.Fatalf("expected redirect message, got:\n%s", result.NarrativeContext)
	}
}

func TestDispatchUnmatchedFallsThroughToFallback(t *testing.T) {
	d := testDispatcher(&fakeProvider{name: "global"})

	result, err := d.Dispatch(context.Background(), "hello there friend")
	if err != nil {
		t.Fatalf("fallback must not error: %v", err)
	}
	if !strings.Contains(result.NarrativeContext, "I can help you") {
		t.Fatalf("expected help text, got:\n%s", result.NarrativeContext)
	}
}

func TestDispatchFallbackOpportunisticLookup(t *testing.T) {
	d := testDispatcher(&fakeProvider{
		name:   "global",
		quotes: map[string]*models.QuoteRecord{"NVDA": quoteFor("NVDA", 120)},
	})

	result, err := d.Dispatch(context.Background(), "NVDA?")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if result.StockData == nil || result.StockData.Symbol != "NVDA" {
		t.Fatalf("expected opportunistic quote, got %+v", result.StockData)
	}
}
