package currency

import "strings"

// suffixes maps exchange ticker suffixes to their trading currency.
// Longest suffix wins, so ".L" cannot shadow a longer match.
var suffixes = []struct {
	suffix   string
	currency string
}{
	{".DE", "EUR"},
	{".PA", "EUR"},
	{".MI", "EUR"},
	{".AX", "AUD"},
	{".TO", "CAD"},
	{".L", "GBP"},
}

// ForSymbol resolves the currency of a ticker from its exchange suffix.
// Symbols without a known suffix trade in USD (AAPL, NVDA, META, ...).
func ForSymbol(symbol string) string {
	s := strings.ToUpper(symbol)
	for _, m := range suffixes {
		if strings.HasSuffix(s, m.suffix) {
			return m.currency
		}
	}
	return "USD"
}
