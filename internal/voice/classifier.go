// Package voice categorizes transcribed speech into a fixed intent taxonomy
// for the voice UI layer. It is deliberately independent of the text command
// dispatcher: the two serve different consumers (UI navigation vs. chat reply
// generation) and use different taxonomies.
package voice

import (
	"strings"

	"github.com/paperstreet/tradetalk/internal/models"
	"github.com/paperstreet/tradetalk/internal/symbols"
)

var navigationRoutes = []struct {
	route    string
	triggers []string
}{
	{"dashboard", []string{"go to dashboard", "open dashboard", "show dashboard", "home page", "main page"}},
	{"portfolio", []string{"go to portfolio", "open portfolio", "show portfolio", "my portfolio", "my holdings"}},
	{"watchlist", []string{"go to watchlist", "open watchlist", "show watchlist", "my watchlist"}},
	{"market", []string{"go to market", "open market", "show market", "market overview"}},
	{"news", []string{"go to news", "open news", "news page"}},
	{"orders", []string{"go to orders", "open orders", "show orders", "my orders", "order history"}},
	{"settings", []string{"go to settings", "open settings", "show settings", "preferences"}},
}

var actionPhrases = []struct {
	action   string
	triggers []string
}{
	{"buy", []string{"buy", "purchase", "invest in"}},
	{"sell", []string{"sell", "exit position"}},
	{"add_watchlist", []string{"add to watchlist", "watch this", "track this"}},
	{"remove_watchlist", []string{"remove from watchlist", "stop tracking", "unwatch"}},
	{"set_alert", []string{"set alert", "set an alert", "alert me", "notify me"}},
}

var stockKeywords = []string{
	"price", "quote", "ticker", "market cap", "pe ratio", "stock", "share price", "trading at",
}

var searchTriggers = []string{"search for", "search", "find", "look up", "look for"}

var compareTriggers = []string{"compare", "versus", " vs ", "difference between"}

var newsTriggers = []string{"news", "headlines", "latest on", "what's happening"}

var helpTriggers = []string{"help", "how do i", "how to", "what can you do", "guide me"}

// Classify categorizes a transcript into an Intent. The caller may pass an
// already-resolved quote record, which short-circuits stock-data
// classification at fixed 0.9 confidence. First matching category wins.
func Classify(transcript string, resolved *models.QuoteRecord) models.Intent {
	lower := strings.ToLower(strings.TrimSpace(transcript))
	if lower == "" {
		return models.Intent{Type: models.IntentError, Confidence: 0}
	}

	for _, nav := range navigationRoutes {
		for _, trigger := range nav.triggers {
			if strings.Contains(lower, trigger) {
				return models.Intent{
					Type:       models.IntentNavigate,
					Data:       "/" + nav.route,
					Route:      "/" + nav.route,
					Confidence: confidence(trigger, lower),
				}
			}
		}
	}

	for _, act := range actionPhrases {
		for _, trigger := range act.triggers {
			if strings.Contains(lower, trigger) {
				return models.Intent{
					Type:        models.IntentAction,
					Data:        act.action,
					Action:      act.action,
					StockSymbol: symbols.Resolve(transcript),
					Confidence:  confidence(trigger, lower),
				}
			}
		}
	}

	if resolved != nil {
		return models.Intent{
			Type:        models.IntentStockData,
			Data:        resolved,
			StockSymbol: resolved.Symbol,
			Confidence:  0.9,
		}
	}
	// Compare is checked before generic stock keywords: "compare TCS and
	// INFY" mentions stock terms but has a more specific shape.
	if intent, ok := classifyCompare(transcript, lower); ok {
		return intent
	}
	for _, keyword := range stockKeywords {
		if strings.Contains(lower, keyword) {
			return models.Intent{
				Type:        models.IntentStockData,
				StockSymbol: symbols.Resolve(transcript),
				Confidence:  confidence(keyword, lower),
			}
		}
	}
	if symbol := symbols.Resolve(transcript); symbol != "" && len(strings.Fields(lower)) <= 4 {
		return models.Intent{
			Type:        models.IntentStockData,
			StockSymbol: symbol,
			Confidence:  0.5,
		}
	}

	for _, trigger := range searchTriggers {
		if strings.Contains(lower, trigger) {
			query := strings.TrimSpace(strings.Replace(lower, trigger, "", 1))
			return models.Intent{
				Type:       models.IntentSearch,
				Data:       query,
				Query:      query,
				Confidence: confidence(trigger, lower),
			}
		}
	}

	for _, trigger := range newsTriggers {
		if strings.Contains(lower, trigger) {
			return models.Intent{
				Type:        models.IntentNews,
				StockSymbol: symbols.Resolve(transcript),
				Confidence:  confidence(trigger, lower),
			}
		}
	}

	for _, trigger := range helpTriggers {
		if strings.Contains(lower, trigger) {
			topic := strings.TrimSpace(strings.Replace(lower, trigger, "", 1))
			return models.Intent{
				Type:       models.IntentHelp,
				Data:       topic,
				Query:      topic,
				Confidence: confidence(trigger, lower),
			}
		}
	}

	return models.Intent{
		Type:       models.IntentAnswer,
		Data:       transcript,
		Confidence: 0.5,
	}
}

func classifyCompare(transcript, lower string) (models.Intent, bool) {
	matched := ""
	for _, trigger := range compareTriggers {
		if strings.Contains(lower, trigger) {
			matched = trigger
			break
		}
	}
	if matched == "" {
		return models.Intent{}, false
	}

	pair := extractSymbolPair(transcript)
	intent := models.Intent{
		Type:       models.IntentCompare,
		Symbols:    pair,
		Confidence: confidence(matched, lower),
	}
	if len(pair) == 2 {
		intent.Data = pair
	}
	return intent, true
}

// extractSymbolPair pulls up to two distinct symbols from the transcript,
// in order of appearance.
func extractSymbolPair(transcript string) []string {
	var pair []string
	for _, word := range strings.Fields(transcript) {
		symbol := symbols.Resolve(word)
		if symbol == "" {
			continue
		}
		if len(pair) > 0 && pair[0] == symbol {
			continue
		}
		pair = append(pair, symbol)
		if len(pair) == 2 {
			break
		}
	}
	return pair
}

// confidence starts at 0.5 and climbs toward 0.9 as the matched phrase
// covers more of the message.
func confidence(matched, message string) float64 {
	matchedWords := len(strings.Fields(matched))
	totalWords := len(strings.Fields(message))
	if totalWords == 0 {
		return 0.5
	}
	score := 0.5 + 0.4*float64(matchedWords)/float64(totalWords)
	if score > 0.9 {
		score = 0.9
	}
	return score
}
