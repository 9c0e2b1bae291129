// Package convert turns spreadsheet tables into GeoJSON feature collections and back.
//
// Both directions share one schema so that they stay inverses of each other on the
// numeric, multi-value and geometry columns. Field-level problems (unparseable numbers,
// blank lists) become null or empty values; structural problems abort the conversion
// with a single error.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/woozymasta/exceljson/internal/locale"
	"github.com/woozymasta/exceljson/internal/record"
	"github.com/woozymasta/exceljson/internal/schema"
)

var (
	ErrMissingColumn   = errors.New("missing required column")
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// RowError ties a geometry problem to its source row.
type RowError struct {
	Err error
	Row int
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// GeometryError collects every row whose geometry could not be parsed.
type GeometryError struct {
	Rows []RowError
}

func (e *GeometryError) Error() string {
	msgs := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		msgs[i] = r.Error()
	}

	noun := "rows"
	if len(e.Rows) == 1 {
		noun = "row"
	}
	return fmt.Sprintf("%v in %d %s: %s", ErrInvalidGeometry, len(e.Rows), noun, strings.Join(msgs, "; "))
}

func (e *GeometryError) Unwrap() error { return ErrInvalidGeometry }

// Converter holds the schema and locale policy used by both directions.
type Converter struct {
	schema *schema.Schema
	locale locale.Policy
}

// New returns a converter for the given schema and locale policy.
func New(s *schema.Schema, p locale.Policy) *Converter {
	return &Converter{schema: s, locale: p}
}

// Schema returns the registry the converter was built with.
func (c *Converter) Schema() *schema.Schema { return c.schema }

// coerceNumeric replaces every numeric column value with a float or nil.
func (c *Converter) coerceNumeric(rec *record.Record) {
	for _, name := range c.schema.NumericColumns() {
		v, ok := rec.Get(name)
		if !ok {
			continue
		}
		rec.Set(name, c.number(v))
	}
}

func (c *Converter) number(v any) any {
	if f, ok := c.locale.ParseNumber(v); ok {
		return f
	}
	return nil
}

// cellText renders a scalar cell as text, e.g. a numeric cell in the list column.
func cellText(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

func missingColumn(name, source string) error {
	return fmt.Errorf("%w %q in %s", ErrMissingColumn, name, source)
}
