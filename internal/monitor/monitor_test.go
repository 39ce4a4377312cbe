package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aktien-alarm-bot/internal/quote"
	"aktien-alarm-bot/internal/rationale"
)

var testNow = time.Date(2026, 8, 31, 15, 30, 0, 0, time.Local)

type fakeQuoter struct {
	samples map[string]quote.QuoteSample
	errs    map[string]error
	panics  map[string]bool
	fetches int
}

func (f *fakeQuoter) LatestAndPreviousClose(_ context.Context, symbol string) (quote.QuoteSample, error) {
	f.fetches++
	if f.panics[symbol] {
		panic("provider exploded")
	}
	if err, ok := f.errs[symbol]; ok {
		return quote.QuoteSample{}, err
	}
	return f.samples[symbol], nil
}

func (f *fakeQuoter) CompanyName(_ context.Context, symbol string) string {
	return symbol + " AG"
}

type fakeRationale struct {
	text string
}

func (f fakeRationale) Explain(ctx context.Context, a rationale.AlertContext) string {
	return f.text
}

type fakeNotifier struct {
	sent    []string
	failure error
}

func (f *fakeNotifier) SendAlert(text string) error {
	if f.failure != nil {
		return f.failure
	}
	f.sent = append(f.sent, text)
	return nil
}

type fakeLoader struct {
	entries map[string]float64
}

func (f fakeLoader) Load() map[string]float64 {
	return f.entries
}

func sampleAt(symbol string, previous, latest float64, ts time.Time) quote.QuoteSample {
	return quote.QuoteSample{
		Symbol:        symbol,
		PreviousClose: previous,
		LatestClose:   latest,
		Timestamp:     ts,
		Currency:      "USD",
	}
}

func newTestService(quotes *fakeQuoter, loader fakeLoader, notifier *fakeNotifier) *Service {
	return NewService(quotes, fakeRationale{text: "Testanalyse"}, loader, notifier,
		WithClock(func() time.Time { return testNow }),
	)
}

func TestEvaluateSymbolThresholds(t *testing.T) {
	cases := []struct {
		name      string
		previous  float64
		latest    float64
		threshold float64
		direction Direction
		alert     bool
	}{
		{"above positive threshold", 100, 101, 0.5, DirectionUp, true},
		{"below negative band", 100, 99, 0.5, DirectionDown, true},
		{"inside band", 100, 100.1, 0.2, "", false},
		{"exactly at threshold", 100, 100.5, 0.5, DirectionUp, true},
		{"exactly at negative threshold", 100, 99.5, 0.5, DirectionDown, true},
		{"negative threshold uses absolute value up", 100, 101, -0.5, DirectionUp, true},
		{"negative threshold uses absolute value down", 100, 99.4, -0.5, DirectionDown, true},
		{"zero threshold any rise", 100, 100.01, 0, DirectionUp, true},
		{"zero threshold any fall", 100, 99.99, 0, DirectionDown, true},
		{"zero threshold flat", 100, 100, 0, "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			quotes := &fakeQuoter{samples: map[string]quote.QuoteSample{
				"AAPL": sampleAt("AAPL", c.previous, c.latest, testNow),
			}}
			svc := newTestService(quotes, fakeLoader{}, &fakeNotifier{})

			event, err := svc.EvaluateSymbol(context.Background(), "AAPL", c.threshold)
			require.NoError(t, err)

			if !c.alert {
				assert.Nil(t, event)
				return
			}
			require.NotNil(t, event)
			assert.Equal(t, c.direction, event.Direction)
		})
	}
}

func TestEvaluateSymbolDownScenario(t *testing.T) {
	// Watchlist {"AAPL": -0.5}, previous=100, latest=99.4: delta -0.6%.
	quotes := &fakeQuoter{samples: map[string]quote.QuoteSample{
		"AAPL": sampleAt("AAPL", 100, 99.4, testNow),
	}}
	svc := newTestService(quotes, fakeLoader{}, &fakeNotifier{})

	event, err := svc.EvaluateSymbol(context.Background(), "AAPL", -0.5)
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Equal(t, DirectionDown, event.Direction)
	assert.InDelta(t, -0.6, event.DeltaPct, 1e-9)
	assert.Equal(t, 0.5, event.ThresholdAbs)
	assert.Equal(t, 99.4, event.Price)
	assert.Equal(t, "AAPL AG", event.CompanyName)
	assert.Equal(t, "Testanalyse", event.Rationale)
}

func TestEvaluateSymbolBelowThresholdNoAlert(t *testing.T) {
	// Watchlist {"SAP.DE": 0.2}, previous=100, latest=100.1: 0.1 < 0.2.
	quotes := &fakeQuoter{samples: map[string]quote.QuoteSample{
		"SAP.DE": sampleAt("SAP.DE", 100, 100.1, testNow),
	}}
	svc := newTestService(quotes, fakeLoader{}, &fakeNotifier{})

	event, err := svc.EvaluateSymbol(context.Background(), "SAP.DE", 0.2)
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestEvaluateSymbolCurrencyFromSymbolSuffix(t *testing.T) {
	// The alert currency comes from the exchange suffix, not from the
	// provider metadata carried on the sample.
	quotes := &fakeQuoter{samples: map[string]quote.QuoteSample{
		"SAP.DE": sampleAt("SAP.DE", 100, 99, testNow),
	}}
	svc := newTestService(quotes, fakeLoader{}, &fakeNotifier{})

	event, err := svc.EvaluateSymbol(context.Background(), "SAP.DE", 0.5)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "EUR", event.Currency)
}

func TestEvaluateSymbolStaleSampleNeverAlerts(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	quotes := &fakeQuoter{samples: map[string]quote.QuoteSample{
		"AAPL": sampleAt("AAPL", 100, 150, yesterday),
	}}
	svc := newTestService(quotes, fakeLoader{}, &fakeNotifier{})

	event, err := svc.EvaluateSymbol(context.Background(), "AAPL", 0.1)
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestEvaluateSymbolUnavailableDataSkips(t *testing.T) {
	quotes := &fakeQuoter{errs: map[string]error{"AAPL": quote.ErrUnavailable}}
	svc := newTestService(quotes, fakeLoader{}, &fakeNotifier{})

	event, err := svc.EvaluateSymbol(context.Background(), "AAPL", 0.1)
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestRunPassEmptyWatchlistFetchesNothing(t *testing.T) {
	quotes := &fakeQuoter{}
	notifier := &fakeNotifier{}
	svc := newTestService(quotes, fakeLoader{entries: map[string]float64{}}, notifier)

	svc.RunPass(context.Background())

	assert.Zero(t, quotes.fetches)
	assert.Empty(t, notifier.sent)
}

func TestRunPassIsolatesSymbolFailures(t *testing.T) {
	quotes := &fakeQuoter{
		samples: map[string]quote.QuoteSample{
			"AAPL": sampleAt("AAPL", 100, 101, testNow),
			"NVDA": sampleAt("NVDA", 100, 98, testNow),
		},
		errs: map[string]error{"BROKEN": errors.New("connection reset")},
	}
	notifier := &fakeNotifier{}
	loader := fakeLoader{entries: map[string]float64{
		"AAPL":   0.5,
		"BROKEN": 0.5,
		"NVDA":   0.5,
	}}
	svc := newTestService(quotes, loader, notifier)

	svc.RunPass(context.Background())

	assert.Equal(t, 3, quotes.fetches)
	assert.Len(t, notifier.sent, 2)
}

func TestRunPassSurvivesPanickingSymbol(t *testing.T) {
	quotes := &fakeQuoter{
		samples: map[string]quote.QuoteSample{
			"AAPL": sampleAt("AAPL", 100, 101, testNow),
			"NVDA": sampleAt("NVDA", 100, 98, testNow),
		},
		panics: map[string]bool{"BOOM": true},
	}
	notifier := &fakeNotifier{}
	loader := fakeLoader{entries: map[string]float64{
		"AAPL": 0.5,
		"BOOM": 0.5,
		"NVDA": 0.5,
	}}
	svc := newTestService(quotes, loader, notifier)

	require.NotPanics(t, func() {
		svc.RunPass(context.Background())
	})
	assert.Len(t, notifier.sent, 2)
}

func TestRunPassSendFailureDoesNotStopPass(t *testing.T) {
	quotes := &fakeQuoter{samples: map[string]quote.QuoteSample{
		"AAPL": sampleAt("AAPL", 100, 101, testNow),
		"NVDA": sampleAt("NVDA", 100, 98, testNow),
	}}
	notifier := &fakeNotifier{failure: errors.New("telegram down")}
	loader := fakeLoader{entries: map[string]float64{"AAPL": 0.5, "NVDA": 0.5}}
	svc := newTestService(quotes, loader, notifier)

	require.NotPanics(t, func() {
		svc.RunPass(context.Background())
	})
	assert.Equal(t, 2, quotes.fetches)
}

func TestRunPassRepeatsAlertsAcrossCycles(t *testing.T) {
	// No cooldown: a condition that keeps holding re-alerts every pass.
	quotes := &fakeQuoter{samples: map[string]quote.QuoteSample{
		"AAPL": sampleAt("AAPL", 100, 101, testNow),
	}}
	notifier := &fakeNotifier{}
	loader := fakeLoader{entries: map[string]float64{"AAPL": 0.5}}
	svc := newTestService(quotes, loader, notifier)

	svc.RunPass(context.Background())
	svc.RunPass(context.Background())

	assert.Len(t, notifier.sent, 2)
}

func TestRenderAlert(t *testing.T) {
	event := AlertEvent{
		Symbol:       "SAP.DE",
		CompanyName:  "SAP SE",
		DeltaPct:     -0.6,
		Direction:    DirectionDown,
		Price:        99.4,
		Currency:     "EUR",
		ThresholdAbs: 0.5,
		Rationale:    "Sektorweite Korrektur.",
		Timestamp:    testNow,
	}

	text := RenderAlert(event)

	assert.Contains(t, text, "🔴")
	assert.Contains(t, text, "gefallen")
	assert.Contains(t, text, "`SAP.DE`")
	assert.Contains(t, text, "SAP SE")
	assert.Contains(t, text, "EUR")
	assert.Contains(t, text, "±0\\.50%")
	assert.Contains(t, text, "KI\\-Analyse")
	assert.Contains(t, text, "Sektorweite Korrektur\\.")
}

func TestRenderAlertUpDirection(t *testing.T) {
	event := AlertEvent{
		Symbol:       "AAPL",
		CompanyName:  "Apple Inc.",
		DeltaPct:     1.25,
		Direction:    DirectionUp,
		Price:        231.59,
		Currency:     "USD",
		ThresholdAbs: 1,
		Rationale:    "Starke Quartalszahlen.",
		Timestamp:    testNow,
	}

	text := RenderAlert(event)

	assert.Contains(t, text, "🟢")
	assert.Contains(t, text, "gestiegen")
	assert.Contains(t, text, "\\+1\\.25%")
}
