package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"aktien-alarm-bot/internal/currency"
)

var (
	// ErrUnavailable means the provider returned fewer samples than a
	// delta computation needs. The caller skips the symbol this cycle.
	ErrUnavailable = errors.New("not enough quote data")
	// ErrNotFound means the provider has no data for the symbol at all.
	ErrNotFound = errors.New("symbol not found")
)

// QuoteSample is one latest/previous close observation pair for a
// symbol. Timestamp is naive local time, provider timezone already
// stripped.
type QuoteSample struct {
	Symbol        string
	PreviousClose float64
	LatestClose   float64
	Timestamp     time.Time
	Currency      string
}

// DeltaPct is the intraday percentage change between the previous and
// the latest close.
func (s QuoteSample) DeltaPct() float64 {
	return (s.LatestClose - s.PreviousClose) / s.PreviousClose * 100
}

// Point is one timestamped close, used for intraday charts.
type Point struct {
	Time  time.Time
	Close float64
}

// Client fetches quotes from the Yahoo Finance v8 chart API.
type Client struct {
	BaseURL    string
	httpClient *http.Client
	names      *nameCache
}

func NewClient() *Client {
	return &Client{
		BaseURL: "https://query1.finance.yahoo.com",
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
		names: newNameCache(30 * time.Minute),
	}
}

// chartResponse mirrors the part of the v8 chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string `json:"currency"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				LongName             string `json:"longName"`
				ShortName            string `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *Client) fetchChart(ctx context.Context, symbol, dataRange, interval string) (*chartResponse, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s", c.BaseURL, symbol, dataRange, interval)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not build chart request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (aktien-alarm-bot)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "chart request for %s failed", symbol)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("chart request for %s returned status %d", symbol, resp.StatusCode)
	}

	var parsed chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrapf(err, "could not parse chart response for %s", symbol)
	}
	if parsed.Chart.Error != nil {
		return nil, errors.Errorf("provider error for %s: %s", symbol, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, ErrNotFound
	}
	return &parsed, nil
}

// closes extracts the non-nil close points of the first chart result.
func (c *Client) closes(parsed *chartResponse) []Point {
	result := parsed.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}

	loc := time.Local
	if result.Meta.ExchangeTimezoneName != "" {
		if l, err := time.LoadLocation(result.Meta.ExchangeTimezoneName); err == nil {
			loc = l
		}
	}

	var points []Point
	rawCloses := result.Indicators.Quote[0].Close
	for i, ts := range result.Timestamp {
		if i >= len(rawCloses) || rawCloses[i] == nil {
			continue
		}
		points = append(points, Point{
			Time:  naiveLocal(time.Unix(ts, 0).In(loc)),
			Close: *rawCloses[i],
		})
	}
	return points
}

// naiveLocal drops the provider timezone and reinterprets the wall
// clock as local time, matching how the sample date is compared to the
// local "today".
func naiveLocal(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
}

// LatestAndPreviousClose fetches a one-day window of minute closes and
// returns the last two as a QuoteSample. Fewer than two observations
// degrade to ErrUnavailable, never to a crash.
func (c *Client) LatestAndPreviousClose(ctx context.Context, symbol string) (QuoteSample, error) {
	parsed, err := c.fetchChart(ctx, symbol, "1d", "1m")
	if err != nil {
		log.Debugf("quote fetch for %s failed: %v", symbol, err)
		return QuoteSample{}, ErrUnavailable
	}

	points := c.closes(parsed)
	if len(points) < 2 {
		return QuoteSample{}, ErrUnavailable
	}

	cur := parsed.Chart.Result[0].Meta.Currency
	if cur == "" {
		cur = currency.ForSymbol(symbol)
	}

	latest := points[len(points)-1]
	previous := points[len(points)-2]
	return QuoteSample{
		Symbol:        symbol,
		PreviousClose: previous.Close,
		LatestClose:   latest.Close,
		Timestamp:     latest.Time,
		Currency:      cur,
	}, nil
}

// CurrentClose fetches the latest daily close for the on-demand /preis
// command.
func (c *Client) CurrentClose(ctx context.Context, symbol string) (float64, error) {
	parsed, err := c.fetchChart(ctx, symbol, "1d", "1d")
	if err != nil {
		log.Debugf("price fetch for %s failed: %v", symbol, err)
		return 0, ErrNotFound
	}

	points := c.closes(parsed)
	if len(points) == 0 {
		return 0, ErrNotFound
	}
	return points[len(points)-1].Close, nil
}

// IntradayCloses fetches the full minute-close series of the current
// trading day, used by the /chart command.
func (c *Client) IntradayCloses(ctx context.Context, symbol string) ([]Point, error) {
	parsed, err := c.fetchChart(ctx, symbol, "1d", "1m")
	if err != nil {
		return nil, ErrNotFound
	}

	points := c.closes(parsed)
	if len(points) == 0 {
		return nil, ErrNotFound
	}
	return points, nil
}

// CompanyName resolves a human-readable company name, falling back to
// the raw symbol on any failure. Results are cached because the name
// is looked up on every alert.
func (c *Client) CompanyName(ctx context.Context, symbol string) string {
	if name, found := c.names.get(symbol); found {
		return name
	}

	parsed, err := c.fetchChart(ctx, symbol, "1d", "1d")
	if err != nil {
		log.Debugf("company name lookup for %s failed: %v", symbol, err)
		return symbol
	}

	meta := parsed.Chart.Result[0].Meta
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	c.names.set(symbol, name)
	return name
}
