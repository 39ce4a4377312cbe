package commands

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"aktien-alarm-bot/internal/currency"
	"aktien-alarm-bot/internal/quote"
	"aktien-alarm-bot/lib/helpers"
)

// Quoter is the market-data dependency of the on-demand commands.
type Quoter interface {
	CurrentClose(ctx context.Context, symbol string) (float64, error)
	IntradayCloses(ctx context.Context, symbol string) ([]quote.Point, error)
	CompanyName(ctx context.Context, symbol string) string
}

// Watchlist is the threshold-store dependency of the watchlist commands.
type Watchlist interface {
	Load() map[string]float64
	Set(symbol string, threshold float64) bool
	SetAll(threshold float64) bool
}

// StartText is the static /start help message.
func StartText() string {
	return "🚀 Willkommen beim Aktien\\-Alarm\\-Bot\\!\n" +
		"Befehle:\n" +
		"• `/preis SYMBOL` \\- aktueller Kurs\n" +
		"• `/setze SYMBOL SCHWELLE` \\- z\\.B\\. `/setze SAP.DE -0,2`\n" +
		"• `/setall SCHWELLE` \\- alle auf ±Schwelle setzen\n" +
		"• `/liste` \\- aktuelle Überwachungsliste\n" +
		"• `/chart SYMBOL` \\- Intraday\\-Chart\n" +
		"• `/verlauf` \\- letzte Alarme\n" +
		"• `/chatid` \\- deine Chat\\-ID anzeigen"
}

// CommandPreis answers /preis SYMBOL with the latest close.
func CommandPreis(ctx context.Context, q Quoter, argument string) (string, error) {
	log.Debugf("processing command /preis with argument: %s", argument)

	symbol := strings.ToUpper(strings.TrimSpace(argument))
	if symbol == "" {
		return "⚠️ Bitte gib ein Ticker\\-Symbol an, z\\.B\\. `/preis SAP.DE`", nil
	}

	price, err := q.CurrentClose(ctx, symbol)
	if err != nil {
		return "", errors.Wrapf(err, "command /preis %s", symbol)
	}

	return fmt.Sprintf("📊 Kurs von `%s`: *%s %s*",
		symbol,
		helpers.FormatPrice(price, true),
		currency.ForSymbol(symbol),
	), nil
}

// CommandSetze answers /setze SYMBOL SCHWELLE, upserting one watchlist
// entry. The threshold accepts both comma and dot decimal separators.
func CommandSetze(w Watchlist, argument string) (string, error) {
	log.Debugf("processing command /setze with argument: %s", argument)

	args := strings.Fields(argument)
	if len(args) != 2 {
		return "⚠️ Benutzung: `/setze SYMBOL SCHWELLE`\n" +
			"Beispiel: `/setze AAPL -0.1` oder `/setze SAP.DE -0,15`", nil
	}

	symbol := strings.ToUpper(args[0])
	threshold, err := helpers.ParseDecimal(args[1])
	if err != nil {
		return "❌ Ungültiger Wert\\. Bitte gib eine Zahl ein, z\\.B\\. `-0.1` oder `0,2`\\.", nil
	}

	if !w.Set(symbol, threshold) {
		return "", errors.Errorf("command /setze: could not persist watchlist entry for %s", symbol)
	}

	return fmt.Sprintf("✅ Schwellenwert für `%s` auf `%.4f` gesetzt\\.\n"+
		"🔍 Ab jetzt wird ±%s%% überwacht\\.",
		symbol,
		threshold,
		helpers.EscapeMarkdownV2(fmt.Sprintf("%.2f", math.Abs(threshold))),
	), nil
}

// CommandSetall answers /setall SCHWELLE, overwriting the threshold of
// every existing entry.
func CommandSetall(w Watchlist, argument string) (string, error) {
	log.Debugf("processing command /setall with argument: %s", argument)

	args := strings.Fields(argument)
	if len(args) != 1 {
		return "⚠️ Benutzung: `/setall SCHWELLE`\n" +
			"Beispiel: `/setall -0.5` oder `/setall 0,2`", nil
	}

	threshold, err := helpers.ParseDecimal(args[0])
	if err != nil {
		return "❌ Bitte eine gültige Zahl eingeben, z\\.B\\. `-0.15` oder `0,3`\\.", nil
	}

	if !w.SetAll(threshold) {
		return "", errors.New("command /setall: could not persist watchlist")
	}

	return fmt.Sprintf("✅ Alle Schwellenwerte auf `%.4f` gesetzt\\.\n"+
		"🔍 Ab jetzt wird ±%s%% überwacht\\.",
		threshold,
		helpers.EscapeMarkdownV2(fmt.Sprintf("%.2f", math.Abs(threshold))),
	), nil
}

// CommandListe answers /liste with every watchlist entry, its absolute
// threshold and resolved currency.
func CommandListe(w Watchlist) (string, error) {
	entries := w.Load()
	if len(entries) == 0 {
		return "📋 Keine Aktien zur Überwachung\\.", nil
	}

	symbols := make([]string, 0, len(entries))
	for symbol := range entries {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	var b strings.Builder
	b.WriteString("📊 Aktuelle Überwachung \\(± in beide Richtungen\\):\n")
	for _, symbol := range symbols {
		b.WriteString(fmt.Sprintf("• `%s` → ±%s%% \\(%s\\)\n",
			symbol,
			helpers.EscapeMarkdownV2(fmt.Sprintf("%.2f", math.Abs(entries[symbol]))),
			currency.ForSymbol(symbol),
		))
	}

	return b.String(), nil
}
