package marketdata

import (
	"context"
	"log/slog"
	"time"

	"github.com/paperstreet/tradetalk/internal/models"
)

// Gateway resolves symbols against an ordered provider chain. The ordering
// follows a cheap locale heuristic: known Indian tickers are tried against
// the India-friendly provider first, everything else against the global
// provider first. The other provider is always tried as fallback.
type Gateway struct {
	global  Provider
	india   Provider
	cache   *quoteCache
	scraper *ArticleScraper
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithQuoteCache enables the short-TTL quote cache.
func WithQuoteCache(ttl time.Duration, maxSize int) GatewayOption {
	return func(g *Gateway) {
		g.cache = newQuoteCache(ttl, maxSize)
	}
}

// WithArticleScraper enables body enrichment for headline-only news items.
func WithArticleScraper(scraper *ArticleScraper) GatewayOption {
	return func(g *Gateway) {
		g.scraper = scraper
	}
}

// NewGateway wires the global-first and India-first providers.
func NewGateway(global, india Provider, opts ...GatewayOption) *Gateway {
	g := &Gateway{global: global, india: india}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) providerOrder(symbol string) []Provider {
	if IsIndianTicker(symbol) {
		return []Provider{g.india, g.global}
	}
	return []Provider{g.global, g.india}
}

// GetQuote resolves a symbol to a quote record, trying each (provider,
// variant) pair once in order. Returns nil only after every combination has
// been exhausted; individual provider failures are swallowed and logged.
func (g *Gateway) GetQuote(ctx context.Context, symbol string) *models.QuoteRecord {
	if symbol == "" {
		return nil
	}

	if g.cache != nil {
		if record, ok := g.cache.get(StripSuffix(symbol)); ok {
			return record
		}
	}

	variants := Variants(symbol)
	for _, provider := range g.providerOrder(symbol) {
		if provider == nil {
			continue
		}
		for _, variant := range variants {
			record, err := provider.Quote(ctx, variant)
			if err != nil {
				slog.Debug("quote attempt failed",
					"provider", provider.Name(), "variant", variant, "error", err)
				continue
			}
			if record == nil {
				continue
			}
			if g.cache != nil {
				g.cache.set(StripSuffix(symbol), record)
			}
			return record
		}
	}

	slog.Warn("all providers exhausted", "symbol", symbol)
	return nil
}

// TopMovers returns the gainers or losers list from the first provider that
// has one.
func (g *Gateway) TopMovers(ctx context.Context, kind string) []models.Mover {
	for _, provider := range []Provider{g.global, g.india} {
		if provider == nil {
			continue
		}
		movers, err := provider.Movers(ctx, kind)
		if err != nil {
			slog.Debug("movers attempt failed",
				"provider", provider.Name(), "kind", kind, "error", err)
			continue
		}
		if len(movers) > 0 {
			return movers
		}
	}
	return nil
}

// GetNews returns recent articles, symbol-scoped when symbol is non-empty.
func (g *Gateway) GetNews(ctx context.Context, symbol string) []models.NewsArticle {
	for _, provider := range []Provider{g.global, g.india} {
		if provider == nil {
			continue
		}
		articles, err := provider.News(ctx, symbol)
		if err != nil {
			slog.Debug("news attempt failed",
				"provider", provider.Name(), "symbol", symbol, "error", err)
			continue
		}
		if len(articles) > 0 {
			g.enrichLead(ctx, articles)
			return articles
		}
	}
	return nil
}

// enrichLead fills in the lead article's body when the provider payload only
// carried a headline. Best effort: a scrape failure leaves the article as is.
func (g *Gateway) enrichLead(ctx context.Context, articles []models.NewsArticle) {
	if g.scraper == nil || len(articles) == 0 {
		return
	}
	lead := &articles[0]
	if lead.Content != "" || lead.URL == "" {
		return
	}
	body, err := g.scraper.FetchBody(ctx, lead.URL)
	if err != nil {
		slog.Debug("article scrape failed", "url", lead.URL, "error", err)
		return
	}
	lead.Content = body
}
