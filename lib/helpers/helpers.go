package helpers

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func EscapeMarkdownV2(text string) string {
	charactersToEscape := []string{".", "-", "_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "=", "|", "{", "}", "!"}

	for _, char := range charactersToEscape {
		text = strings.ReplaceAll(text, char, "\\"+char)
	}
	return text
}

// FormatPrice renders a close price with two decimals and a thousand
// separator, e.g. 1,234.56.
func FormatPrice(price float64, escapeMarkdown bool) string {
	formatted := humanize.CommafWithDigits(price, 2)

	if escapeMarkdown {
		return EscapeMarkdownV2(formatted)
	}
	return formatted
}

// FormatPercent renders a percentage with two decimals and an explicit
// sign for positive values.
func FormatPercent(pct float64, escapeMarkdown bool) string {
	p := message.NewPrinter(language.English)
	formatted := p.Sprintf("%.2f", pct)
	if pct >= 0 {
		formatted = "+" + formatted
	}

	if escapeMarkdown {
		return EscapeMarkdownV2(formatted)
	}
	return formatted
}

// ParseDecimal accepts both the German comma and the dot decimal
// separator, so "/setze SAP.DE -0,15" and "/setze AAPL -0.15" both work.
func ParseDecimal(input string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	return strconv.ParseFloat(normalized, 64)
}
