// Package symbols maps free-form text to candidate ticker symbols.
package symbols

import (
	"regexp"
	"strings"
)

// Noise words commonly captured alongside a ticker in a rule capture group.
var noiseWords = map[string]bool{
	"STOCK": true,
	"PRICE": true,
	"DATA":  true,
	"ABOUT": true,
}

// Stop words skipped during the uppercase token scan.
var stopWords = map[string]bool{
	"STOCK": true, "SHARE": true, "COMPANY": true, "DATA": true,
	"PRICE": true, "INFO": true, "ABOUT": true, "TELL": true,
	"SHOW": true, "GIVE": true, "WHAT": true, "THE": true,
	"IS": true, "ARE": true, "AND": true, "OR": true, "BUT": true,
	"FOR": true, "WITH": true, "TO": true, "FROM": true, "BY": true,
	"AT": true, "IN": true, "ON": true, "OF": true,
}

// aliases maps lowercased company names to their primary listing symbol.
// Substring lookup, so longer keys should be distinctive enough not to
// collide inside ordinary words.
var aliases = []struct {
	key    string
	symbol string
}{
	{"reliance", "RELIANCE"},
	{"tata consultancy", "TCS"},
	{"tata motors", "TATAMOTORS"},
	{"tata steel", "TATASTEEL"},
	{"infosys", "INFY"},
	{"hdfc bank", "HDFCBANK"},
	{"icici bank", "ICICIBANK"},
	{"state bank", "SBIN"},
	{"bharti airtel", "BHARTIARTL"},
	{"hindustan unilever", "HINDUNILVR"},
	{"bajaj finance", "BAJFINANCE"},
	{"asian paints", "ASIANPAINT"},
	{"maruti", "MARUTI"},
	{"wipro", "WIPRO"},
	{"adani", "ADANIENT"},
	{"itc", "ITC"},
	{"apple", "AAPL"},
	{"microsoft", "MSFT"},
	{"google", "GOOGL"},
	{"alphabet", "GOOGL"},
	{"amazon", "AMZN"},
	{"tesla", "TSLA"},
	{"nvidia", "NVDA"},
	{"netflix", "NFLX"},
	{"meta", "META"},
}

var upperToken = regexp.MustCompile(`\b[A-Z]{2,15}\b`)

// Resolve maps free text to a candidate ticker symbol. It scans uppercase
// tokens first, then falls back to the company-name alias table. Returns ""
// when nothing plausible is found. Deterministic, no side effects.
func Resolve(text string) string {
	for _, token := range upperToken.FindAllString(text, -1) {
		if stopWords[token] {
			continue
		}
		return token
	}

	lower := strings.ToLower(text)
	for _, a := range aliases {
		if strings.Contains(lower, a.key) {
			return a.symbol
		}
	}

	return ""
}

// ResolveCapture prefers a symbol taken from a rule's regex capture group,
// stripping noise words first, before falling back to Resolve on the full
// text.
func ResolveCapture(capture, text string) string {
	if capture != "" {
		cleaned := strings.ToUpper(strings.TrimSpace(capture))
		fields := strings.Fields(cleaned)
		kept := fields[:0]
		for _, f := range fields {
			if noiseWords[f] {
				continue
			}
			kept = append(kept, f)
		}
		candidate := strings.Join(kept, "")
		if len(candidate) >= 2 && len(candidate) <= 15 && isLetters(candidate) {
			return candidate
		}
	}
	return Resolve(text)
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
