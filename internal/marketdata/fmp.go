package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/paperstreet/tradetalk/internal/models"
)

// FMPClient handles Financial Modeling Prep API operations.
type FMPClient struct {
	client *resty.Client
	apiKey string
}

// NewFMPClient creates a new FMP client with a fixed request timeout.
func NewFMPClient(apiKey string, timeout time.Duration) *FMPClient {
	client := resty.New()
	client.SetBaseURL("https://financialmodelingprep.com/api/v3")
	client.SetTimeout(timeout)

	return &FMPClient{
		client: client,
		apiKey: apiKey,
	}
}

func (fc *FMPClient) Name() string { return "fmp" }

// fmpQuote is the raw quote payload returned by FMP.
type fmpQuote struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
	DayLow            float64 `json:"dayLow"`
	DayHigh           float64 `json:"dayHigh"`
	YearLow           float64 `json:"yearLow"`
	YearHigh          float64 `json:"yearHigh"`
	MarketCap         float64 `json:"marketCap"`
	PE                float64 `json:"pe"`
	EPS               float64 `json:"eps"`
	Volume            int64   `json:"volume"`
}

type fmpProfile struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// Quote gets a quote for a symbol. Returns ErrNotFound for empty responses
// so the gateway can advance to the next variant.
func (fc *FMPClient) Quote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	if fc.apiKey == "" {
		return nil, fmt.Errorf("FMP API key not configured")
	}

	resp, err := fc.client.R().
		SetContext(ctx).
		SetQueryParam("apikey", fc.apiKey).
		Get("/quote/" + symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var quotes []fmpQuote
	if err := json.Unmarshal(resp.Body(), &quotes); err != nil {
		return nil, fmt.Errorf("failed to parse quote response: %w", err)
	}
	if len(quotes) == 0 || quotes[0].Price == 0 {
		return nil, ErrNotFound
	}

	q := quotes[0]
	record := &models.QuoteRecord{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         decimal.NewFromFloat(q.Price),
		Change:        decimal.NewFromFloat(q.Change),
		ChangePercent: decimal.NewFromFloat(q.ChangesPercentage),
		DayLow:        decimal.NewFromFloat(q.DayLow),
		DayHigh:       decimal.NewFromFloat(q.DayHigh),
		YearLow:       decimal.NewFromFloat(q.YearLow),
		YearHigh:      decimal.NewFromFloat(q.YearHigh),
		MarketCap:     decimal.NewFromFloat(q.MarketCap),
		PE:            decimal.NewFromFloat(q.PE),
		EPS:           decimal.NewFromFloat(q.EPS),
		Volume:        q.Volume,
		Source:        fc.Name(),
		ResolvedAt:    time.Now(),
	}

	// Sector and industry live on the profile endpoint; best effort only.
	if profile, err := fc.profile(ctx, symbol); err == nil {
		record.Sector = profile.Sector
		record.Industry = profile.Industry
	}

	return record, nil
}

func (fc *FMPClient) profile(ctx context.Context, symbol string) (*fmpProfile, error) {
	resp, err := fc.client.R().
		SetContext(ctx).
		SetQueryParam("apikey", fc.apiKey).
		Get("/profile/" + symbol)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d", resp.StatusCode())
	}

	var profiles []fmpProfile
	if err := json.Unmarshal(resp.Body(), &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrNotFound
	}
	return &profiles[0], nil
}

type fmpMover struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
}

// Movers gets the top gainers or losers list.
func (fc *FMPClient) Movers(ctx context.Context, kind string) ([]models.Mover, error) {
	if fc.apiKey == "" {
		return nil, fmt.Errorf("FMP API key not configured")
	}

	endpoint := "/stock_market/gainers"
	if kind == KindLosers {
		endpoint = "/stock_market/losers"
	}

	resp, err := fc.client.R().
		SetContext(ctx).
		SetQueryParam("apikey", fc.apiKey).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", kind, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var raw []fmpMover
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse movers response: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}

	movers := make([]models.Mover, 0, len(raw))
	for _, m := range raw {
		movers = append(movers, models.Mover{
			Symbol:        m.Symbol,
			Name:          m.Name,
			Price:         decimal.NewFromFloat(m.Price),
			Change:        decimal.NewFromFloat(m.Change),
			ChangePercent: decimal.NewFromFloat(m.ChangesPercentage),
		})
	}
	return movers, nil
}

type fmpNews struct {
	Symbol        string `json:"symbol"`
	Title         string `json:"title"`
	Text          string `json:"text"`
	URL           string `json:"url"`
	Site          string `json:"site"`
	PublishedDate string `json:"publishedDate"`
}

// News gets recent articles, symbol-scoped when symbol is non-empty.
func (fc *FMPClient) News(ctx context.Context, symbol string) ([]models.NewsArticle, error) {
	if fc.apiKey == "" {
		return nil, fmt.Errorf("FMP API key not configured")
	}

	req := fc.client.R().
		SetContext(ctx).
		SetQueryParam("apikey", fc.apiKey).
		SetQueryParam("limit", "10")
	if symbol != "" {
		req.SetQueryParam("tickers", symbol)
	}

	resp, err := req.Get("/stock_news")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var raw []fmpNews
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}

	articles := make([]models.NewsArticle, 0, len(raw))
	for _, n := range raw {
		published, _ := time.Parse("2006-01-02 15:04:05", n.PublishedDate)
		articles = append(articles, models.NewsArticle{
			Title:       n.Title,
			Content:     n.Text,
			URL:         n.URL,
			Source:      n.Site,
			Symbol:      n.Symbol,
			PublishedAt: published,
		})
	}
	return articles, nil
}
