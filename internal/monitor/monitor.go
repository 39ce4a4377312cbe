package monitor

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"aktien-alarm-bot/internal/quote"
	"aktien-alarm-bot/internal/rationale"
)

// Quoter is the market-data dependency of the monitor.
type Quoter interface {
	LatestAndPreviousClose(ctx context.Context, symbol string) (quote.QuoteSample, error)
	CompanyName(ctx context.Context, symbol string) string
}

// Loader reloads the watchlist. The monitor reads fresh on every pass
// so command-driven edits take effect on the next tick.
type Loader interface {
	Load() map[string]float64
}

// Notifier delivers a rendered alert to the configured recipient.
type Notifier interface {
	SendAlert(text string) error
}

// Recorder keeps an audit trail of emitted alerts. Recording is best
// effort and never blocks an alert.
type Recorder interface {
	RecordAlert(e AlertEvent) error
}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// AlertEvent is one triggered threshold crossing, ready to be rendered
// and sent.
type AlertEvent struct {
	Symbol       string
	CompanyName  string
	DeltaPct     float64
	Direction    Direction
	Price        float64
	Currency     string
	ThresholdAbs float64
	Rationale    string
	Timestamp    time.Time
}

// Service runs the polling loop: reload the watchlist, evaluate every
// symbol sequentially, sleep, repeat.
type Service struct {
	quotes    Quoter
	rationale rationale.Service
	watchlist Loader
	notifier  Notifier
	recorder  Recorder
	metrics   *Metrics
	interval  time.Duration
	now       func() time.Time
}

func NewService(quotes Quoter, explainer rationale.Service, watchlist Loader, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		quotes:    quotes,
		rationale: explainer,
		watchlist: watchlist,
		notifier:  notifier,
		interval:  60 * time.Second,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

func WithInterval(d time.Duration) Option {
	return func(s *Service) { s.interval = d }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Start launches the monitoring loop in its own goroutine. The loop
// runs until the context is cancelled, which in practice means until
// process exit.
func (s *Service) Start(ctx context.Context) {
	go func() {
		log.Infof("Aktien-Monitoring gestartet (alle %v)", s.interval)
		for {
			s.RunPass(ctx)

			select {
			case <-ctx.Done():
				log.Info("Aktien-Monitoring beendet")
				return
			case <-time.After(s.interval):
			}
		}
	}()
}

// RunPass evaluates every watched symbol once. Symbols are processed
// one at a time, each behind its own recover boundary, so a single
// symbol's failure never terminates the pass or the loop.
func (s *Service) RunPass(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.PassesTotal.Inc()
	}

	entries := s.watchlist.Load()
	if len(entries) == 0 {
		log.Debug("watchlist is empty, nothing to monitor")
		return
	}

	for symbol, threshold := range entries {
		s.checkSymbol(ctx, symbol, threshold)
	}
}

// checkSymbol evaluates one symbol and sends the alert if it fires.
// Panics and errors are contained here; the caller moves on to the
// next symbol regardless.
func (s *Service) checkSymbol(ctx context.Context, symbol string, threshold float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Fehler bei %s: panic: %v", symbol, r)
			if s.metrics != nil {
				s.metrics.SymbolErrors.Inc()
			}
		}
	}()

	event, err := s.EvaluateSymbol(ctx, symbol, threshold)
	if err != nil {
		log.Errorf("Fehler bei %s: %v", symbol, err)
		if s.metrics != nil {
			s.metrics.SymbolErrors.Inc()
		}
		return
	}
	if event == nil {
		return
	}

	if err := s.notifier.SendAlert(RenderAlert(*event)); err != nil {
		// Not retried: the next cycle re-evaluates the condition.
		log.Errorf("Fehler bei %s: Alarm konnte nicht gesendet werden: %v", symbol, err)
		if s.metrics != nil {
			s.metrics.SymbolErrors.Inc()
		}
		return
	}

	log.Infof("Alarm gesendet für %s: %.2f%%", symbol, event.DeltaPct)
	if s.metrics != nil {
		s.metrics.AlertsSent.Inc()
	}

	if s.recorder != nil {
		if err := s.recorder.RecordAlert(*event); err != nil {
			log.Errorf("Alarm für %s konnte nicht protokolliert werden: %v", symbol, err)
		}
	}
}
