// Package marketdata resolves symbols to normalized quote records through an
// ordered provider fallback chain.
package marketdata

import (
	"context"
	"errors"
	"strings"

	"github.com/paperstreet/tradetalk/internal/models"
)

// Mover list kinds.
const (
	KindGainers = "gainers"
	KindLosers  = "losers"
)

var (
	// ErrNotFound means a provider answered but had no usable data for the
	// symbol variant. The gateway moves on to the next candidate.
	ErrNotFound = errors.New("marketdata: symbol not found")
)

// Provider is one upstream market data API. Implementations are read-only
// and carry their own request timeout; a failed call is never retried here.
type Provider interface {
	Name() string
	Quote(ctx context.Context, symbol string) (*models.QuoteRecord, error)
	Movers(ctx context.Context, kind string) ([]models.Mover, error)
	News(ctx context.Context, symbol string) ([]models.NewsArticle, error)
}

var exchangeSuffixes = []string{".NSE", ".NS", ".BO"}

// StripSuffix removes a known exchange suffix from a symbol.
func StripSuffix(symbol string) string {
	upper := strings.ToUpper(strings.TrimSpace(symbol))
	for _, suffix := range exchangeSuffixes {
		if strings.HasSuffix(upper, suffix) {
			return strings.TrimSuffix(upper, suffix)
		}
	}
	return upper
}

// Variants returns the ordered symbol spellings tried against each provider:
// the bare symbol, NSE and BSE suffixed forms, then the suffix-stripped base.
// Duplicates are removed while preserving order.
func Variants(symbol string) []string {
	upper := strings.ToUpper(strings.TrimSpace(symbol))
	base := StripSuffix(upper)

	candidates := []string{upper, base + ".NS", base + ".BO", base}
	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// indianTickers is a cheap locale pre-filter, not a correctness guarantee.
// A symbol on this list is merely tried against the India-friendly provider
// first; the other provider is always consulted as fallback.
var indianTickers = map[string]bool{
	"RELIANCE": true, "TCS": true, "INFY": true, "HDFCBANK": true,
	"ICICIBANK": true, "SBIN": true, "BHARTIARTL": true, "HINDUNILVR": true,
	"BAJFINANCE": true, "ASIANPAINT": true, "MARUTI": true, "WIPRO": true,
	"TATAMOTORS": true, "TATASTEEL": true, "ADANIENT": true, "ITC": true,
	"KOTAKBANK": true, "AXISBANK": true, "LT": true, "HCLTECH": true,
	"SUNPHARMA": true, "TITAN": true, "ULTRACEMCO": true, "NTPC": true,
	"POWERGRID": true, "ONGC": true, "COALINDIA": true, "JSWSTEEL": true,
}

// IsIndianTicker reports whether the suffix-stripped symbol is on the
// known Indian ticker allow-list.
func IsIndianTicker(symbol string) bool {
	return indianTickers[StripSuffix(symbol)]
}
