package pricing

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// PriceNotation selects how a formatted price is decorated.
type PriceNotation string

const (
	// NotationSymbol prefixes the currency symbol (default).
	NotationSymbol PriceNotation = "symbol"
	// NotationText suffixes the currency word.
	NotationText PriceNotation = "text"
)

// FormatPrice renders a price with thousand separators in the requested
// notation.
func FormatPrice(price Money, notation PriceNotation) string {
	if notation == NotationText {
		return groupDigits(price) + "원"
	}
	return "₩" + groupDigits(price)
}

// FormatRate renders a discount rate as a whole percentage (0.1 -> "10%").
func FormatRate(rate float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(rate*100)))
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func groupDigits(v Money) string {
	s := strconv.FormatInt(v, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
