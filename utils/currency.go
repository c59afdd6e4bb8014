package utils

import (
	"fmt"
	"strings"
)

// FormatPriceCents formats an integer amount of cents as a currency string.
// Example: 1234567 -> "R$ 12.345,67"
func FormatPriceCents(cents int) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	integerPart := fmt.Sprintf("%d", cents/100)
	decimalPart := fmt.Sprintf("%02d", cents%100)

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	formatted := fmt.Sprintf("R$ %s,%s", strings.Join(groups, "."), decimalPart)
	if negative {
		return "-" + formatted
	}
	return formatted
}
