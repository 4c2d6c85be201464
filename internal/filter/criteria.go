// Package filter narrows the scholarship datasets down to the rows matching a
// student's criteria and projects them into response records.
package filter

import (
	"strconv"
	"strings"
)

// Criteria is the decoded JSON object a client sends to a filter endpoint.
type Criteria map[string]any

// Skipped records a row that was dropped because it could not be processed.
// Row is the zero-based index in the source table.
type Skipped struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type Result[T any] struct {
	Matches []T
	Skipped []Skipped
}

func (r *Result[T]) skip(row int, reason string) {
	r.Skipped = append(r.Skipped, Skipped{Row: row, Reason: reason})
}

// isUnset reports whether v is one of the null sentinels that disable a
// criterion. Strings are compared as sent, so "  " is a value.
func isUnset(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		switch t {
		case "", "null", "undefined":
			return true
		}
	}
	return false
}

// toText renders a criterion value the way it is compared against a cell.
func toText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// toNumber accepts JSON numbers and numeric strings.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// toFlag normalizes a boolean-ish criterion to "Yes" or "No".
func toFlag(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case float64:
		if t != 0 {
			return "Yes"
		}
		return "No"
	case int:
		if t != 0 {
			return "Yes"
		}
		return "No"
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "false", "no", "n", "0", "off":
			return "No"
		}
		return "Yes"
	}
	return "Yes"
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// formatDecimal prints f with at least one fractional digit, so 80 reads
// "80.0" and 72.5 reads "72.5".
func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}
