// Package extract turns recognized receipt text into a suggested total
// amount. The deterministic heuristic is a pure function over the text;
// an optional remote text-insight capability refines it when available.
package extract

import (
	"context"
	"fmt"
	"regexp"

	"billscan/internal/insight"
	applog "billscan/internal/log"

	"github.com/shopspring/decimal"
)

// tokenRe matches a numeric token: digits with exactly two fractional
// digits, or bare digits. Alternation order matters: on "12.345" the
// decimal branch claims "12.34" and the trailing "5" becomes its own
// token. Currency symbols and thousands separators are not stripped, so
// "1,234.56" tokenizes as "1" and "234.56". Both behaviors are kept on
// purpose and pinned by tests.
var tokenRe = regexp.MustCompile(`\d+\.\d{2}|\d+`)

const promptFormat = `The following text was read from a photographed receipt.
Reply with the final total amount paid, as a bare number with two decimal places, no currency symbol or extra text.

%s`

// LastAmount is the deterministic fallback: it scans text for all
// numeric tokens in order of appearance and returns the last one.
// Receipts conventionally place the grand total as the final
// amount-like figure after itemized lines and subtotals; this is a
// heuristic, not a guarantee. ok is false when no token exists.
func LastAmount(text string) (amount decimal.Decimal, ok bool) {
	tokens := tokenRe.FindAllString(text, -1)
	if len(tokens) == 0 {
		return decimal.Zero, false
	}
	return parseToken(tokens[len(tokens)-1])
}

// FirstAmount returns the first numeric token in text, used on insight
// replies where the answer is expected to lead.
func FirstAmount(text string) (amount decimal.Decimal, ok bool) {
	token := tokenRe.FindString(text)
	if token == "" {
		return decimal.Zero, false
	}
	return parseToken(token)
}

func parseToken(token string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Round(2), true
}

// Extractor produces a best-guess total from recognized text. The
// insight capability is consulted first when present; its answer is
// trusted over the fallback solely on parse success, with no
// cross-validation.
type Extractor struct {
	insight insight.TextInsight
	logger  *applog.Logger
}

func New(ti insight.TextInsight, logger *applog.Logger) *Extractor {
	return &Extractor{
		insight: ti,
		logger:  logger.WithComponent(applog.ComponentExtract),
	}
}

// Suggest returns the suggested total for the recognized text, or
// ok=false when no amount can be detected by either path. It never
// returns an error: insight unavailability or failure downgrades
// silently to the deterministic fallback, and an extraction miss is a
// caller-visible condition, not a fault.
func (e *Extractor) Suggest(ctx context.Context, text string) (amount decimal.Decimal, ok bool) {
	if reply, err := e.insight.Complete(ctx, fmt.Sprintf(promptFormat, text)); err == nil {
		if amount, ok = FirstAmount(reply); ok {
			e.logger.DebugContext(ctx, "Amount taken from insight reply",
				applog.FieldAmount, amount.StringFixed(2))
			return amount, true
		}
		e.logger.DebugContext(ctx, "Insight reply had no numeric token")
	}
	return LastAmount(text)
}
