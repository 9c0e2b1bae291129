// Package locale maps spreadsheet-locale numeric text to canonical numbers.
package locale

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CanonicalSeparator is the decimal separator numbers are normalized to.
const CanonicalSeparator = "."

// Policy describes how decimal separators appear in source text.
type Policy struct {
	// DecimalSeparator is replaced by "." before parsing, e.g. "," for de_CH exports.
	DecimalSeparator string
}

// Default returns the comma-decimal policy used by the turbine sheets.
func Default() Policy {
	return Policy{DecimalSeparator: ","}
}

// Normalize rewrites the policy separator to a period. Applying it twice is a no-op.
func (p Policy) Normalize(s string) string {
	if p.DecimalSeparator == "" || p.DecimalSeparator == CanonicalSeparator {
		return s
	}
	return strings.ReplaceAll(s, p.DecimalSeparator, CanonicalSeparator)
}

// ParseNumber coerces a cell or property value to a float.
// The second result is false when the value is absent or not numeric;
// callers store such values as null.
func (p Policy) ParseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		return p.ParseText(n.String())
	case string:
		return p.ParseText(n)
	default:
		return 0, false
	}
}

// ParseText normalizes s and parses it as a decimal number.
func (p Policy) ParseText(s string) (float64, bool) {
	s = strings.TrimSpace(p.Normalize(s))
	if s == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}

	f, _ := d.Float64()
	return finite(f)
}

// IsNumericText reports whether s parses as a number under the policy.
func (p Policy) IsNumericText(s string) bool {
	_, ok := p.ParseText(s)
	return ok
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
