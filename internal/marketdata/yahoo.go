package marketdata

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"

	"github.com/paperstreet/tradetalk/internal/models"
)

// YahooClient handles Yahoo Finance data operations. Yahoo resolves NSE and
// BSE listings through the .NS and .BO suffixes, which makes it the
// India-friendly side of the fallback chain.
type YahooClient struct {
	timeout time.Duration
}

// NewYahooClient creates a new Yahoo Finance client.
func NewYahooClient(timeout time.Duration) *YahooClient {
	return &YahooClient{timeout: timeout}
}

func (yc *YahooClient) Name() string { return "yahoo" }

// Quote gets current quote data for a symbol. The underlying client has no
// context support, so the call runs under a local deadline and is abandoned
// on expiry.
func (yc *YahooClient) Quote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, yc.timeout)
	defer cancel()

	type result struct {
		q   *finance.Equity
		err error
	}
	ch := make(chan result, 1)
	go func() {
		q, err := equity.Get(symbol)
		ch <- result{q, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("quote for %s: %w", symbol, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, res.err)
		}
		if res.q == nil || res.q.RegularMarketPrice == 0 {
			return nil, ErrNotFound
		}
		q := res.q
		return &models.QuoteRecord{
			Symbol:        q.Symbol,
			Name:          q.ShortName,
			Price:         decimal.NewFromFloat(q.RegularMarketPrice),
			Change:        decimal.NewFromFloat(q.RegularMarketChange),
			ChangePercent: decimal.NewFromFloat(q.RegularMarketChangePercent),
			DayLow:        decimal.NewFromFloat(q.RegularMarketDayLow),
			DayHigh:       decimal.NewFromFloat(q.RegularMarketDayHigh),
			YearLow:       decimal.NewFromFloat(q.FiftyTwoWeekLow),
			YearHigh:      decimal.NewFromFloat(q.FiftyTwoWeekHigh),
			MarketCap:     decimal.NewFromInt(q.MarketCap),
			PE:            decimal.NewFromFloat(q.TrailingPE),
			EPS:           decimal.NewFromFloat(q.EpsTrailingTwelveMonths),
			Volume:        int64(q.RegularMarketVolume),
			Source:        yc.Name(),
			ResolvedAt:    time.Now(),
		}, nil
	}
}

// Movers is not offered by this provider.
func (yc *YahooClient) Movers(ctx context.Context, kind string) ([]models.Mover, error) {
	return nil, ErrNotFound
}

// News is not offered by this provider.
func (yc *YahooClient) News(ctx context.Context, symbol string) ([]models.NewsArticle, error) {
	return nil, ErrNotFound
}
