package convert

import (
	"fmt"

	"github.com/woozymasta/exceljson/internal/geo"
	"github.com/woozymasta/exceljson/internal/record"
)

// TabularToGeo converts spreadsheet rows to point features.
// Records are modified in place. Any row without a parseable WKT point fails the
// whole conversion with a *GeometryError listing every such row.
func (c *Converter) TabularToGeo(t *record.Table) (*geo.FeatureCollection, error) {
	geomCol := c.schema.GeometryColumn()
	if !t.HasColumn(geomCol) {
		return nil, missingColumn(geomCol, "spreadsheet")
	}
	for _, name := range c.schema.NumericColumns() {
		if !t.HasColumn(name) {
			return nil, missingColumn(name, "spreadsheet")
		}
	}

	for _, rec := range t.Records {
		c.coerceNumeric(rec)
		c.splitMultiValue(rec)
	}
	c.normalizeNumericText(t)

	fc := geo.NewFeatureCollection(len(t.Records))
	var geomErr GeometryError

	for i, rec := range t.Records {
		row := rec.Row
		if row == 0 {
			row = i + 1
		}

		raw, _ := rec.Get(geomCol)
		text, ok := raw.(string)
		if !ok && raw != nil {
			geomErr.Rows = append(geomErr.Rows, RowError{Row: row, Err: fmt.Errorf("%s is not WKT text", geomCol)})
			continue
		}

		point, err := geo.ParsePoint(text)
		if err != nil {
			geomErr.Rows = append(geomErr.Rows, RowError{Row: row, Err: err})
			continue
		}

		props := record.New()
		props.Row = rec.Row
		rec.Each(func(key string, value any) {
			if key != geomCol {
				props.Set(key, value)
			}
		})

		f, err := geo.NewPointFeature(point, props)
		if err != nil {
			geomErr.Rows = append(geomErr.Rows, RowError{Row: row, Err: err})
			continue
		}
		fc.Features = append(fc.Features, f)
	}

	if len(geomErr.Rows) > 0 {
		return nil, &geomErr
	}

	return fc, nil
}

// splitMultiValue turns the comma-separated list column into a MultiValue.
func (c *Converter) splitMultiValue(rec *record.Record) {
	name := c.schema.MultiValueColumn()
	if !rec.Has(name) {
		return
	}

	v, _ := rec.Get(name)
	if list, ok := record.MultiValueFromList(v); ok {
		rec.Set(name, list)
		return
	}

	text, _ := cellText(v)
	rec.Set(name, record.ParseMultiValue(text))
}

// normalizeNumericText rewrites locale decimal text in number-typed passthrough
// columns to period form. A column qualifies when it holds at least one numeric cell
// and every other non-empty value is locale numeric text.
func (c *Converter) normalizeNumericText(t *record.Table) {
	for _, name := range t.Columns {
		if c.schema.IsNumericColumn(name) || name == c.schema.GeometryColumn() || name == c.schema.MultiValueColumn() {
			continue
		}
		if !c.numericTyped(t, name) {
			continue
		}

		for _, rec := range t.Records {
			if s, ok := rec.Get(name); ok {
				if text, isText := s.(string); isText {
					rec.Set(name, c.locale.Normalize(text))
				}
			}
		}
	}
}

func (c *Converter) numericTyped(t *record.Table, name string) bool {
	typed := false
	for _, rec := range t.Records {
		v, _ := rec.Get(name)
		switch val := v.(type) {
		case nil:
		case float64:
			typed = true
		case string:
			if !c.locale.IsNumericText(val) {
				return false
			}
		default:
			return false
		}
	}
	return typed
}
