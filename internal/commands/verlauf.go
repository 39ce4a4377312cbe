package commands

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"aktien-alarm-bot/internal/database"
	"aktien-alarm-bot/lib/helpers"
)

// CommandVerlauf answers /verlauf with the most recent alerts from the
// audit log.
func CommandVerlauf(limit int) (string, error) {
	entries, err := database.GetRecentAlerts(limit)
	if err != nil {
		return "", errors.Wrap(err, "command /verlauf")
	}

	if len(entries) == 0 {
		return "📭 Noch keine Alarme gesendet\\.", nil
	}

	var b strings.Builder
	b.WriteString("🕘 Letzte Alarme:\n")
	for _, e := range entries {
		marker := "🟢"
		if e.Direction == "down" {
			marker = "🔴"
		}
		b.WriteString(fmt.Sprintf("%s `%s` %s%% am %s\n",
			marker,
			e.Symbol,
			helpers.FormatPercent(e.DeltaPct, true),
			helpers.EscapeMarkdownV2(e.CreatedAt),
		))
	}

	return b.String(), nil
}
