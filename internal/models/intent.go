package models

// Intent types produced by the voice classifier.
const (
	IntentNavigate  = "navigate"
	IntentStockData = "stock_data"
	IntentAction    = "action"
	IntentSearch    = "search"
	IntentCompare   = "compare"
	IntentNews      = "news"
	IntentHelp      = "help"
	IntentAnswer    = "answer"
	IntentError     = "error"
)

// Intent is the classified purpose of a voice transcript. Produced fresh per
// classification call and discarded after the response is composed.
type Intent struct {
	Type        string   `json:"type"`
	Data        any      `json:"data,omitempty"`
	Confidence  float64  `json:"confidence"`
	StockSymbol string   `json:"stock_symbol,omitempty"`
	Route       string   `json:"route,omitempty"`
	Action      string   `json:"action,omitempty"`
	Query       string   `json:"query,omitempty"`
	Symbols     []string `json:"symbols,omitempty"`
}
