package scores

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceScore converts a decoded JSON value into an integer score.
//
// Numbers are truncated toward zero. Strings are read up to the first
// character that is not part of a leading signed integer ("42abc" is 42,
// "0x1f" is 31). Every other value, and anything outside the int64 range,
// coerces to 0.
func CoerceScore(v any) int64 {
	switch s := v.(type) {
	case json.Number:
		if n, err := s.Int64(); err == nil {
			return n
		}
		f, err := s.Float64()
		if err != nil {
			return 0
		}
		return truncate(f)
	case float64:
		return truncate(s)
	case int:
		return int64(s)
	case int64:
		return s
	case string:
		return parseIntPrefix(s)
	default:
		return 0
	}
}

func truncate(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

func parseIntPrefix(s string) int64 {
	s = strings.TrimSpace(s)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base, isDigit := 10, isDecimal
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, isDigit = 16, isHex
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

func isDecimal(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
