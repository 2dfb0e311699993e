package utils

import (
	"math"
	"strconv"
	"strings"
)

// Round6 rounds to six decimal places, matching the precision the daily
// aggregates are stored with.
func Round6(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*1e6) / 1e6
}

// ParseOptionalFloat parses a table cell as a float. Empty cells, non-numeric
// text, zero and non-finite values all come back nil so a failed parse can
// never masquerade as a real rate.
func ParseOptionalFloat(cell string) *float64 {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value == 0 {
		return nil
	}

	return &value
}

// ParseFiniteFloat parses a cell that must hold a finite number.
func ParseFiniteFloat(cell string) (float64, bool) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}
