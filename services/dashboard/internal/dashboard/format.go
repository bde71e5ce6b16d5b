package dashboard

import (
	"fmt"
	"math"
)

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatDollars rounds to whole dollars: 1234.6 -> "$1,235".
func FormatDollars(amount float64) string {
	rounded := int(math.Round(amount))
	if rounded < 0 {
		return "-$" + FormatInt(-rounded)
	}
	return "$" + FormatInt(rounded)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
