package monitor

import (
	"fmt"

	"aktien-alarm-bot/lib/helpers"
)

// RenderAlert builds the MarkdownV2 alert message. The glyphs are
// cosmetic, the structure follows the classic notification layout:
// direction line, price, sample time, threshold, rationale block.
func RenderAlert(e AlertEvent) string {
	marker := "🟢"
	verb := "gestiegen"
	if e.Direction == DirectionDown {
		marker = "🔴"
		verb = "gefallen"
	}

	return fmt.Sprintf(
		"%s *%s* \\(`%s`\\) ist um %s%% *%s*\\!\n"+
			"💰 Kurs: *%s %s*\n"+
			"📅 %s, %s\n"+
			"🎯 Schwelle: ±%s%%\n\n"+
			"🧠 *KI\\-Analyse*:\n%s",
		marker,
		helpers.EscapeMarkdownV2(e.CompanyName),
		e.Symbol,
		helpers.FormatPercent(e.DeltaPct, true),
		verb,
		helpers.FormatPrice(e.Price, true),
		e.Currency,
		helpers.EscapeMarkdownV2(e.Timestamp.Format("2006-01-02")),
		e.Timestamp.Format("15:04:05"),
		helpers.EscapeMarkdownV2(fmt.Sprintf("%.2f", e.ThresholdAbs)),
		helpers.EscapeMarkdownV2(e.Rationale),
	)
}
