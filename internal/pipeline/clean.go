package pipeline

import (
	"math"
	"strconv"
	"strings"
)

// Clean coerces one raw scalar into its canonical numeric-leaning form.
// A single-element collection is unwrapped first; missing markers (nil, NaN,
// "N/A", "None", "") become 0; other strings are trimmed and kept; anything
// numeric becomes a float64. The result is always a float64, a non-empty
// string, or the "0" sentinel, and Clean is idempotent.
//
// Every component routes scalar sanitizing through here; nothing downstream
// re-derives missing-value rules.
func Clean(v any) any { return clean(v, false) }

// CleanText is Clean with the string expectation: missing values become the
// "0" sentinel instead of numeric zero.
func CleanText(v any) any { return clean(v, true) }

// Number cleans v and coerces the result to a float64. Strings that do not
// parse as numbers (thousands separators stripped) collapse to 0.
func Number(v any) float64 {
	switch c := Clean(v).(type) {
	case float64:
		return c
	case string:
		s := strings.ReplaceAll(c, ",", "")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Text cleans v with the string expectation and renders the result as a
// string. Never empty: missing values come back as "0".
func Text(v any) string {
	switch c := CleanText(v).(type) {
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return "0"
	}
}

func clean(v any, wantString bool) any {
	v = unwrap(v)

	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}

	if isMissing(v) {
		if wantString {
			return "0"
		}
		return float64(0)
	}

	switch t := v.(type) {
	case string:
		return t
	default:
		return toFloat(t)
	}
}

// unwrap reduces a collection-wrapped scalar to its first element; an empty
// collection counts as missing.
func unwrap(v any) any {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return nil
		}
		return t[0]
	case []string:
		if len(t) == 0 {
			return nil
		}
		return t[0]
	case []float64:
		if len(t) == 0 {
			return nil
		}
		return t[0]
	default:
		return v
	}
}

func isMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(t)
	case float32:
		return math.IsNaN(float64(t))
	case string:
		return t == "" || t == "N/A" || t == "None"
	default:
		return false
	}
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}
