// Package value converts the textual payloads of document scalars into
// typed Go values.
//
// These helpers solve common problems:
//   - Decimal amounts with surrounding whitespace
//   - Indicator booleans ("true"/"false", "1"/"0")
//   - Dates qualified by UN/CEFACT format codes (102, 610, 616)
//
// Every helper reports failure through its second return value instead of
// an error; callers substitute their own defaults.
package value

import (
	"strconv"
	"strings"
)

// =============================================================================
// NUMERIC VALUES
// =============================================================================

// Decimal parses an amount or quantity such as "1234.50".
func Decimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int parses an integer such as a line number.
func Int(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

// =============================================================================
// BOOLEAN VALUES
// =============================================================================

// Indicator parses a udt:Indicator payload.
func Indicator(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}
