package voice

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/paperstreet/tradetalk/internal/models"
)

func TestClassifyNavigation(t *testing.T) {
	intent := Classify("go to portfolio", nil)
	if intent.Type != models.IntentNavigate {
		t.Fatalf("expected navigate, got %s", intent.Type)
	}
	if intent.Data != "/portfolio" {
		t.Fatalf("expected /portfolio, got %v", intent.Data)
	}
	if intent.Confidence < 0.5 {
		t.Fatalf("confidence too low: %f", intent.Confidence)
	}
}

func TestClassifyAction(t *testing.T) {
	intent := Classify("buy TSLA right now", nil)
	if intent.Type != models.IntentAction {
		t.Fatalf("expected action, got %s", intent.Type)
	}
	if intent.Action != "buy" {
		t.Fatalf("expected buy, got %s", intent.Action)
	}
	if intent.StockSymbol != "TSLA" {
		t.Fatalf("expected TSLA, got %s", intent.StockSymbol)
	}
}

func TestClassifyStockDataShortCircuit(t *testing.T) {
	record := &models.QuoteRecord{Symbol: "TCS", Price: decimal.NewFromInt(3500)}
	intent := Classify("whatever was asked", record)
	if intent.Type != models.IntentStockData {
		t.Fatalf("expected stock_data, got %s", intent.Type)
	}
	if intent.Confidence != 0.9 {
		t.Fatalf("expected fixed 0.9 confidence, got %f", intent.Confidence)
	}
	if intent.Data != record {
		t.Fatal("expected the resolved record to be passed through")
	}
}

func TestClassifyStockKeywords(t *testing.T) {
	intent := Classify("what is the price of INFY", nil)
	if intent.Type != models.IntentStockData {
		t.Fatalf("expected stock_data, got %s", intent.Type)
	}
	if intent.StockSymbol != "INFY" {
		t.Fatalf("expected INFY, got %s", intent.StockSymbol)
	}
}

func TestClassifyCompare(t *testing.T) {
	intent := Classify("compare TCS and INFY", nil)
	if intent.Type != models.IntentCompare {
		t.Fatalf("expected compare, got %s", intent.Type)
	}
	if len(intent.Symbols) != 2 || intent.Symbols[0] != "TCS" || intent.Symbols[1] != "INFY" {
		t.Fatalf("expected [TCS INFY], got %v", intent.Symbols)
	}
}

func TestClassifySearch(t *testing.T) {
	intent := Classify("search for pharma companies", nil)
	if intent.Type != models.IntentSearch {
		t.Fatalf("expected search, got %s", intent.Type)
	}
	if intent.Query != "pharma companies" {
		t.Fatalf("unexpected query: %q", intent.Query)
	}
}

func TestClassifyHelp(t *testing.T) {
	intent := Classify("how do i place an order", nil)
	if intent.Type != models.IntentHelp {
		t.Fatalf("expected help, got %s", intent.Type)
	}
}

func TestClassifyDefaultAnswer(t *testing.T) {
	intent := Classify("thanks a lot", nil)
	if intent.Type != models.IntentAnswer {
		t.Fatalf("expected answer, got %s", intent.Type)
	}
	if intent.Confidence != 0.5 {
		t.Fatalf("expected fixed 0.5 confidence, got %f", intent.Confidence)
	}
}

func TestConfidenceScalesWithCoverage(t *testing.T) {
	short := Classify("go to portfolio", nil)
	long := Classify("hey could you please go to portfolio for me now", nil)
	if short.Confidence <= long.Confidence {
		t.Fatalf("coverage boost inverted: short=%f long=%f",
			short.Confidence, long.Confidence)
	}
}
