// Package dispatch routes free-form chat text to the first matching command
// handler. Rule order is configuration: the table is evaluated top to bottom
// and the first rule with a matching pattern wins, so precedence lives in
// data rather than control flow.
package dispatch

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/paperstreet/tradetalk/internal/marketdata"
	"github.com/paperstreet/tradetalk/internal/models"
)

// HandlerResult is the outcome of a successful dispatch. A handler that
// cannot resolve its subject still succeeds: it explains the miss in
// NarrativeContext and leaves the data fields nil.
type HandlerResult struct {
	NarrativeContext string
	StockData        *models.QuoteRecord
	AdditionalData   any
}

// Request carries the matched input into a handler.
type Request struct {
	Text  string
	Match []string // submatches of the winning pattern, if any
}

// Handler processes one matched command.
type Handler func(ctx context.Context, req Request) (*HandlerResult, error)

// Rule is one ordered entry of the command table.
type Rule struct {
	Patterns    []*regexp.Regexp
	Handle      Handler
	Description string
}

// Dispatcher owns the rule table and the collaborators handlers need.
type Dispatcher struct {
	gateway *marketdata.Gateway
	rules   []Rule
}

// NewDispatcher builds the process-wide rule table. The table is read-only
// after construction.
func NewDispatcher(gateway *marketdata.Gateway) *Dispatcher {
	d := &Dispatcher{gateway: gateway}
	d.rules = d.buildRules()
	return d
}

// Rules exposes the ordered table, mainly for help text and tests.
func (d *Dispatcher) Rules() []Rule {
	return d.rules
}

// Dispatch matches text against the rule table and runs the winning handler,
// or the generic fallback when nothing matches. Only unexpected handler
// errors propagate.
func (d *Dispatcher) Dispatch(ctx context.Context, text string) (*HandlerResult, error) {
	for _, rule := range d.rules {
		for _, pattern := range rule.Patterns {
			match := pattern.FindStringSubmatch(text)
			if match == nil {
				continue
			}
			slog.Debug("dispatching command", "rule", rule.Description)
			return rule.Handle(ctx, Request{Text: text, Match: match})
		}
	}

	slog.Debug("no rule matched, using fallback")
	return d.handleFallback(ctx, Request{Text: text})
}
