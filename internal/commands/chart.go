package commands

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// CommandChart renders the intraday close series of a symbol as a PNG
// and returns the image together with a MarkdownV2 caption.
func CommandChart(ctx context.Context, q Quoter, argument string) ([]byte, string, error) {
	log.Debugf("processing command /chart with argument: %s", argument)

	symbol := strings.ToUpper(strings.TrimSpace(argument))
	if symbol == "" {
		return nil, "⚠️ Bitte gib ein Ticker\\-Symbol an, z\\.B\\. `/chart SAP.DE`", nil
	}

	points, err := q.IntradayCloses(ctx, symbol)
	if err != nil {
		return nil, "", errors.Wrapf(err, "command /chart %s", symbol)
	}
	if len(points) < 2 {
		return nil, "", errors.Errorf("command /chart %s: not enough intraday data", symbol)
	}

	times := make([]time.Time, 0, len(points))
	closes := make([]float64, 0, len(points))
	for _, p := range points {
		times = append(times, p.Time)
		closes = append(closes, p.Close)
	}

	name := q.CompanyName(ctx, symbol)
	lineColor := drawing.Color{R: 0, G: 122, B: 255, A: 255}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s (%s) Intraday", name, symbol),
		Width:  1200,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeHourValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    symbol,
				XValues: times,
				YValues: closes,
				Style: chart.Style{
					StrokeColor: lineColor,
					FillColor:   lineColor.WithAlpha(35),
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, "", errors.Wrapf(err, "command /chart %s: render failed", symbol)
	}

	caption := fmt.Sprintf("📈 Intraday\\-Chart für `%s`", symbol)
	return buf.Bytes(), caption, nil
}
