// Package compose formats resolved market data into structured text blocks.
// Pure formatting: no network or persistence access, stable field order so
// callers can assert on substrings.
package compose

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paperstreet/tradetalk/internal/marketdata"
	"github.com/paperstreet/tradetalk/internal/models"
)

// Quote renders a quote record as a sectioned text block.
func Quote(q *models.QuoteRecord) string {
	if q == nil {
		return ""
	}

	var sb strings.Builder
	name := q.Name
	if name == "" {
		name = q.Symbol
	}
	fmt.Fprintf(&sb, "%s (%s)\n", name, q.Symbol)

	fmt.Fprintf(&sb, "Price: %s (%s, %s%%)\n",
		money(q.Price), signed(q.Change), signed(q.ChangePercent))

	sb.WriteString("Key metrics:")
	if !q.MarketCap.IsZero() {
		fmt.Fprintf(&sb, " Market Cap %s", humanize(q.MarketCap))
	}
	if !q.PE.IsZero() {
		fmt.Fprintf(&sb, " | P/E %s", q.PE.StringFixed(2))
	}
	if !q.EPS.IsZero() {
		fmt.Fprintf(&sb, " | EPS %s", q.EPS.StringFixed(2))
	}
	if q.Volume > 0 {
		fmt.Fprintf(&sb, " | Volume %d", q.Volume)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Day range: %s - %s\n", money(q.DayLow), money(q.DayHigh))
	fmt.Fprintf(&sb, "52-week range: %s - %s\n", money(q.YearLow), money(q.YearHigh))

	if q.Sector != "" || q.Industry != "" {
		fmt.Fprintf(&sb, "Sector: %s | Industry: %s\n", q.Sector, q.Industry)
	}

	return sb.String()
}

// Movers renders a gainers/losers list, one line per entry.
func Movers(kind string, movers []models.Mover) string {
	if len(movers) == 0 {
		return ""
	}

	var sb strings.Builder
	title := "Top gainers today"
	if kind == marketdata.KindLosers {
		title = "Top losers today"
	}
	fmt.Fprintf(&sb, "%s:\n", title)
	for i, m := range movers {
		name := m.Name
		if name == "" {
			name = m.Symbol
		}
		fmt.Fprintf(&sb, "%d. %s (%s): %s (%s%%)\n",
			i+1, name, m.Symbol, money(m.Price), signed(m.ChangePercent))
	}
	return sb.String()
}

// News renders headlines with source and an optional first-line summary.
func News(symbol string, articles []models.NewsArticle) string {
	if len(articles) == 0 {
		return ""
	}

	var sb strings.Builder
	if symbol != "" {
		fmt.Fprintf(&sb, "Latest news for %s:\n", symbol)
	} else {
		sb.WriteString("Latest market news:\n")
	}
	for i, a := range articles {
		fmt.Fprintf(&sb, "%d. %s", i+1, a.Title)
		if a.Source != "" {
			fmt.Fprintf(&sb, " (%s)", a.Source)
		}
		sb.WriteString("\n")
		if a.Content != "" {
			fmt.Fprintf(&sb, "   %s\n", firstLine(a.Content, 200))
		}
	}
	return sb.String()
}

// Comparison renders two quotes side by side with a like-for-like metric
// rundown.
func Comparison(first, second *models.QuoteRecord) string {
	if first == nil || second == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Comparing %s and %s:\n\n", first.Symbol, second.Symbol)
	sb.WriteString(Quote(first))
	sb.WriteString("\n")
	sb.WriteString(Quote(second))

	sb.WriteString("\n")
	if first.ChangePercent.GreaterThan(second.ChangePercent) {
		fmt.Fprintf(&sb, "%s is ahead today on percentage change.\n", first.Symbol)
	} else if second.ChangePercent.GreaterThan(first.ChangePercent) {
		fmt.Fprintf(&sb, "%s is ahead today on percentage change.\n", second.Symbol)
	} else {
		sb.WriteString("Both are moving in step today.\n")
	}
	return sb.String()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func signed(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if d.Sign() > 0 {
		return "+" + s
	}
	return s
}

var magnitudes = []struct {
	floor  decimal.Decimal
	suffix string
}{
	{decimal.New(1, 12), "T"},
	{decimal.New(1, 9), "B"},
	{decimal.New(1, 6), "M"},
}

func humanize(d decimal.Decimal) string {
	for _, m := range magnitudes {
		if d.GreaterThanOrEqual(m.floor) {
			return d.Div(m.floor).StringFixed(2) + m.suffix
		}
	}
	return d.StringFixed(0)
}

func firstLine(s string, max int) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
