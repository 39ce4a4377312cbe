package monitor

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"aktien-alarm-bot/internal/currency"
	"aktien-alarm-bot/internal/quote"
	"aktien-alarm-bot/internal/rationale"
)

// EvaluateSymbol fetches the latest quote for one symbol and decides
// whether it crosses the threshold. It returns nil when no alert is
// due: insufficient data, a sample from a previous trading day, or a
// delta inside the threshold band.
//
// The threshold's sign is ignored: both directions are checked against
// its absolute value. A threshold of 0 alerts on every nonzero delta.
// There is no per-symbol cooldown, so a condition that keeps holding
// re-alerts on every cycle. Both are long-standing behavior, kept as is.
func (s *Service) EvaluateSymbol(ctx context.Context, symbol string, threshold float64) (*AlertEvent, error) {
	sample, err := s.quotes.LatestAndPreviousClose(ctx, symbol)
	if err != nil {
		if errors.Is(err, quote.ErrUnavailable) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "quote fetch for %s failed", symbol)
	}

	// Off-hours and stale provider data carry yesterday's date and are
	// silently skipped.
	today := s.now()
	if sample.Timestamp.Year() != today.Year() ||
		sample.Timestamp.Month() != today.Month() ||
		sample.Timestamp.Day() != today.Day() {
		return nil, nil
	}

	delta := sample.DeltaPct()
	if delta == 0 {
		// A flat move never alerts, not even at threshold 0.
		return nil, nil
	}
	thresholdAbs := math.Abs(threshold)

	var direction Direction
	switch {
	case delta >= thresholdAbs:
		direction = DirectionUp
	case delta <= -thresholdAbs:
		direction = DirectionDown
	default:
		return nil, nil
	}

	name := s.quotes.CompanyName(ctx, symbol)

	// Alerts always price in the currency implied by the symbol's
	// exchange suffix, regardless of what the provider reports.
	cur := currency.ForSymbol(symbol)

	return &AlertEvent{
		Symbol:       symbol,
		CompanyName:  name,
		DeltaPct:     delta,
		Direction:    direction,
		Price:        sample.LatestClose,
		Currency:     cur,
		ThresholdAbs: thresholdAbs,
		Rationale: s.rationale.Explain(ctx, rationale.AlertContext{
			Symbol:      symbol,
			CompanyName: name,
			DeltaPct:    delta,
			Price:       sample.LatestClose,
			Currency:    cur,
		}),
		Timestamp: sample.Timestamp,
	}, nil
}
