package record

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MultiValueSeparator joins list items in the tabular representation.
const MultiValueSeparator = ", "

// MultiValue is a list of tags. In a spreadsheet it is a comma-separated string,
// in GeoJSON a list of strings.
type MultiValue []string

// ParseMultiValue splits a comma-separated string, trims every item and drops empty ones.
// Blank input yields an empty, non-nil list.
func ParseMultiValue(s string) MultiValue {
	out := MultiValue{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// MultiValueFromList converts a decoded JSON list to a MultiValue.
// It returns false for anything that is not a list.
func MultiValueFromList(v any) (MultiValue, bool) {
	switch list := v.(type) {
	case MultiValue:
		return list, true
	case []string:
		return MultiValue(list), true
	case []any:
		out := make(MultiValue, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out, true
	default:
		return nil, false
	}
}

// String returns the tabular form. An empty list yields "".
func (m MultiValue) String() string {
	return strings.Join(m, MultiValueSeparator)
}

// MarshalJSON encodes the list form; an empty list is [] rather than null.
func (m MultiValue) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(m))
}
