package utils

import (
	"strconv"
	"strings"
)

// FormatQuantity renders a stock quantity without trailing zeros ("12", "2.5").
func FormatQuantity(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// StrToFloat parses a quantity-like string. Empty input is zero.
func StrToFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
