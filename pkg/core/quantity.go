package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseQuantity converts user text into a quantity.
// Text that is not a finite number yields ErrInvalidInput.
func ParseQuantity(s string) (float64, error) {
	q, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, ErrInvalidInput
	}
	return q, nil
}

// FormatQuantity renders whole numbers without a fractional part (7, not 7.0).
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
