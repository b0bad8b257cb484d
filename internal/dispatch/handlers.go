package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/paperstreet/tradetalk/internal/compose"
	"github.com/paperstreet/tradetalk/internal/marketdata"
	"github.com/paperstreet/tradetalk/internal/models"
	"github.com/paperstreet/tradetalk/internal/symbols"
)

func (d *Dispatcher) handleQuote(ctx context.Context, req Request) (*HandlerResult, error) {
	capture := ""
	if len(req.Match) > 1 {
		capture = req.Match[1]
	}
	symbol := symbols.ResolveCapture(capture, req.Text)
	if symbol == "" {
		return &HandlerResult{
			NarrativeContext: "I couldn't figure out which stock you mean. Try a ticker symbol like TCS or RELIANCE, or a company name.",
		}, nil
	}

	record := d.gateway.GetQuote(ctx, symbol)
	if record == nil {
		return &HandlerResult{
			NarrativeContext: fmt.Sprintf("I couldn't find market data for %s right now. It may be an unlisted symbol, or the data providers are unavailable.", symbol),
		}, nil
	}

	return &HandlerResult{
		NarrativeContext: compose.Quote(record),
		StockData:        record,
	}, nil
}

func (d *Dispatcher) handleGainers(ctx context.Context, req Request) (*HandlerResult, error) {
	return d.handleMovers(ctx, marketdata.KindGainers)
}

func (d *Dispatcher) handleLosers(ctx context.Context, req Request) (*HandlerResult, error) {
	return d.handleMovers(ctx, marketdata.KindLosers)
}

func (d *Dispatcher) handleMovers(ctx context.Context, kind string) (*HandlerResult, error) {
	movers := d.gateway.TopMovers(ctx, kind)
	if len(movers) == 0 {
		return &HandlerResult{
			NarrativeContext: fmt.Sprintf("I couldn't fetch today's top %s. The market data providers seem to be unavailable, please try again shortly.", kind),
		}, nil
	}
	if len(movers) > 5 {
		movers = movers[:5]
	}

	return &HandlerResult{
		NarrativeContext: compose.Movers(kind, movers),
		AdditionalData: &models.MoverList{
			Type:   "top_movers",
			Kind:   kind,
			Movers: movers,
		},
	}, nil
}

func (d *Dispatcher) handleNews(ctx context.Context, req Request) (*HandlerResult, error) {
	symbol := ""
	if len(req.Match) > 1 {
		symbol = symbols.ResolveCapture(req.Match[1], req.Match[1])
	} else {
		symbol = symbols.Resolve(req.Text)
	}

	articles := d.gateway.GetNews(ctx, symbol)
	if len(articles) == 0 {
		subject := "the market"
		if symbol != "" {
			subject = symbol
		}
		return &HandlerResult{
			NarrativeContext: fmt.Sprintf("I couldn't fetch news for %s right now.", subject),
		}, nil
	}
	if len(articles) > 5 {
		articles = articles[:5]
	}

	return &HandlerResult{
		NarrativeContext: compose.News(symbol, articles),
		AdditionalData: &models.NewsList{
			Type:     "stock_news",
			Symbol:   symbol,
			Articles: articles,
		},
	}, nil
}

func (d *Dispatcher) handleCompare(ctx context.Context, req Request) (*HandlerResult, error) {
	if len(req.Match) < 3 {
		return &HandlerResult{
			NarrativeContext: "Tell me two stocks to compare, for example: compare TCS and INFY.",
		}, nil
	}

	firstSym := symbols.ResolveCapture(req.Match[1], req.Match[1])
	secondSym := symbols.ResolveCapture(req.Match[2], req.Match[2])
	if firstSym == "" || secondSym == "" || firstSym == secondSym {
		return &HandlerResult{
			NarrativeContext: "I need two distinct stocks to compare, for example: compare TCS and INFY.",
		}, nil
	}

	// The two lookups are independent, so they run concurrently.
	type lookup struct {
		record *models.QuoteRecord
	}
	firstCh := make(chan lookup, 1)
	go func() {
		firstCh <- lookup{d.gateway.GetQuote(ctx, firstSym)}
	}()
	second := d.gateway.GetQuote(ctx, secondSym)
	first := (<-firstCh).record

	if first == nil || second == nil {
		missing := firstSym
		if first != nil {
			missing = secondSym
		}
		return &HandlerResult{
			NarrativeContext: fmt.Sprintf("I couldn't find data for %s, so the comparison is incomplete. Try again with listed tickers.", missing),
		}, nil
	}

	return &HandlerResult{
		NarrativeContext: compose.Comparison(first, second),
		AdditionalData: &models.Comparison{
			Type:   "stock_comparison",
			First:  first,
			Second: second,
		},
	}, nil
}

var indexInfo = "The two benchmark indices for Indian equities are the NIFTY 50, " +
	"covering fifty large caps on the National Stock Exchange, and the SENSEX, " +
	"covering thirty established companies on the Bombay Stock Exchange. " +
	"Index levels move with the weighted prices of their constituents and are " +
	"the usual shorthand for how \"the market\" did today."

func (d *Dispatcher) handleIndex(ctx context.Context, req Request) (*HandlerResult, error) {
	return &HandlerResult{NarrativeContext: indexInfo}, nil
}

// Static topic table for the educational glossary.
var glossary = map[string]string{
	"pe ratio": "The P/E (price-to-earnings) ratio divides a stock's price by its earnings per share. " +
		"A high P/E means the market pays a premium for each unit of earnings, usually expecting growth; " +
		"a low P/E can mean a bargain or a business in trouble. Compare P/E within the same sector.",
	"market cap": "Market capitalization is the total value of a company's shares: share price times shares outstanding. " +
		"It is the standard size measure, splitting companies into large caps, mid caps, and small caps.",
	"eps": "EPS (earnings per share) is a company's profit divided by its share count. " +
		"It is the denominator of the P/E ratio and the most common per-share profitability measure.",
	"stock market": "The stock market is where shares of public companies are bought and sold. " +
		"In India the two main exchanges are the NSE and the BSE; prices move with supply and demand " +
		"as investors weigh company performance and the wider economy.",
}

func glossaryKey(captured string) string {
	key := strings.ToLower(strings.TrimSpace(captured))
	key = strings.ReplaceAll(key, "/", "")
	key = strings.ReplaceAll(key, "capitalization", "cap")
	return key
}

func (d *Dispatcher) handleGlossary(ctx context.Context, req Request) (*HandlerResult, error) {
	if len(req.Match) > 1 {
		if entry, ok := glossary[glossaryKey(req.Match[1])]; ok {
			return &HandlerResult{NarrativeContext: entry}, nil
		}
	}
	return &HandlerResult{
		NarrativeContext: "I can explain the P/E ratio, market cap, EPS, or how the stock market works. Which one?",
	}, nil
}

func (d *Dispatcher) handlePortfolio(ctx context.Context, req Request) (*HandlerResult, error) {
	return &HandlerResult{
		NarrativeContext: "Your portfolio lives on the portfolio page, with your holdings, invested value, and returns. Open it from the main menu to see the full breakdown.",
	}, nil
}

const helpText = "I can help you with stock prices (\"what is TCS stock price\"), " +
	"top gainers and losers, market news, comparing two stocks " +
	"(\"compare TCS and INFY\"), and explanations of terms like P/E ratio " +
	"or market cap. What would you like to know?"

// handleFallback runs when no rule matches: it opportunistically tries a
// symbol lookup and otherwise produces the static help message.
func (d *Dispatcher) handleFallback(ctx context.Context, req Request) (*HandlerResult, error) {
	if symbol := symbols.Resolve(req.Text); symbol != "" {
		if record := d.gateway.GetQuote(ctx, symbol); record != nil {
			return &HandlerResult{
				NarrativeContext: compose.Quote(record),
				StockData:        record,
			}, nil
		}
	}

	return &HandlerResult{NarrativeContext: helpText}, nil
}
