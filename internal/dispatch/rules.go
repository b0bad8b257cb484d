package dispatch

import "regexp"

// The ordered command table. Earlier rules shadow later ones, so the more
// specific shapes (comparison, glossary, movers) come before the broad
// quote-lookup patterns.
func (d *Dispatcher) buildRules() []Rule {
	return []Rule{
		{
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)compare\s+(\S+)\s+(?:and|with|to|vs\.?|versus)\s+(\S+)`),
				regexp.MustCompile(`(?i)(\S+)\s+(?:vs\.?|versus)\s+(\S+)`),
			},
			Handle:      d.handleCompare,
			Description: "two-way stock comparison",
		},
		{
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)top\s+gainers?`),
				regexp.MustCompile(`(?i)biggest\s+gainers?`),
				regexp.MustCompile(`(?i)best\s+perform(?:ers?|ing)`),
			},
			Handle:      d.handleGainers,
			Description: "top gainers",
		},
		{
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)top\s+losers?`),
				regexp.MustCompile(`(?i)biggest\s+losers?`),
				regexp.MustCompile(`(?i)worst\s+perform(?:ers?|ing)`),
			},
			Handle:      d.handleLosers,
			Description: "top losers",
		},
		{
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)news\s+(?:about|on|for)\s+(.+)`),
				regexp.MustCompile(`(?i)\bnews\b`),
				regexp.MustCompile(`(?i)\bheadlines\b`),
				regexp.MustCompile(`(?i)what'?s\s+happening`),
			},
			Handle:      d.handleNews,
			Description: "market and stock news",
		},
		{
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:nifty|sensex)\b`),
				regexp.MustCompile(`(?i)market\s+ind(?:ex|ices)`),
			},
			Handle:      d.handleIndex,
			Description: "market index info",
		},
		{
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)what\s+is\s+(?:a\s+|an\s+|the\s+)?(p/?e\s+ratio|market\s+cap(?:italization)?|eps|stock\s+market)`),
				regexp.MustCompile(`(?i)explain\s+(?:a\s+|an\s+|the\s+)?(p/?e\s+ratio|market\s+cap(?:italization)?|eps|stock\s+market)`),
			},
			Handle:      d.handleGlossary,
			Description: "educational glossary",
		},
		{
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)my\s+(?:portfolio|holdings|investments)`),
				regexp.MustCompile(`(?i)\bportfolio\b`),
			},
			Handle:      d.handlePortfolio,
			Description: "portfolio pointer",
		},
		{
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:price|quote)\s+(?:of|for)\s+(.+)`),
				regexp.MustCompile(`(?i)what\s+is\s+(.+?)\s+(?:stock|share)(?:\s+price)?`),
				regexp.MustCompile(`(?i)how\s+is\s+(.+?)\s+(?:doing|performing|trading)`),
				regexp.MustCompile(`(?i)tell\s+me\s+about\s+(.+)`),
				regexp.MustCompile(`(?i)(.+?)\s+(?:stock|share)\s+price`),
			},
			Handle:      d.handleQuote,
			Description: "stock quote lookup",
		},
	}
}
