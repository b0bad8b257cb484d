package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteRecord is a normalized market snapshot assembled from whichever
// provider answered first. It is request-scoped: attached to a Message's
// StockData but never persisted on its own.
type QuoteRecord struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	DayLow        decimal.Decimal `json:"day_low"`
	DayHigh       decimal.Decimal `json:"day_high"`
	YearLow       decimal.Decimal `json:"year_low"`
	YearHigh      decimal.Decimal `json:"year_high"`
	MarketCap     decimal.Decimal `json:"market_cap"`
	PE            decimal.Decimal `json:"pe"`
	EPS           decimal.Decimal `json:"eps"`
	Volume        int64           `json:"volume"`
	Sector        string          `json:"sector,omitempty"`
	Industry      string          `json:"industry,omitempty"`
	Source        string          `json:"source"`
	ResolvedAt    time.Time       `json:"resolved_at"`
}

// Mover is one entry of a top-gainers or top-losers list.
type Mover struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// NewsArticle represents a news article
type NewsArticle struct {
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Symbol      string    `json:"symbol,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Comparison pairs two resolved quotes for a two-way comparison reply.
type Comparison struct {
	Type   string       `json:"type"`
	First  *QuoteRecord `json:"first"`
	Second *QuoteRecord `json:"second"`
}

// MoverList is the structured payload attached to a movers reply.
type MoverList struct {
	Type   string  `json:"type"`
	Kind   string  `json:"kind"` // gainers or losers
	Movers []Mover `json:"movers"`
}

// NewsList is the structured payload attached to a news reply.
type NewsList struct {
	Type     string        `json:"type"`
	Symbol   string        `json:"symbol,omitempty"`
	Articles []NewsArticle `json:"articles"`
}
