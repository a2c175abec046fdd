package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CleanName trims s and squeezes its first double space. Later runs of spaces
// are left as OCR produced them.
func CleanName(s string) string {
	return strings.Replace(strings.TrimSpace(s), "  ", " ", 1)
}

// CleanPrice strips currency markers ("$" and its OCR misread "S") and parses
// the remainder as an exact decimal.
func CleanPrice(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("S", "", "$", "").Replace(s)
	d, err := decimal.NewFromString(strings.TrimSpace(cleaned))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", s, err)
	}
	return d, nil
}
