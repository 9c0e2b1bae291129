package convert

import (
	"fmt"

	"github.com/woozymasta/exceljson/internal/geo"
	"github.com/woozymasta/exceljson/internal/record"
)

// GeoToTabular flattens features into spreadsheet rows.
// Columns are the union of property keys in first-seen order followed by the
// geometry column as WKT and the derived latitude and longitude columns.
// Features without geometry get null coordinates.
func (c *Converter) GeoToTabular(fc *geo.FeatureCollection) (*record.Table, error) {
	geomCol := c.schema.GeometryColumn()
	latCol := c.schema.LatitudeColumn()
	lonCol := c.schema.LongitudeColumn()
	derived := map[string]bool{geomCol: true, latCol: true, lonCol: true}

	var columns []string
	seen := make(map[string]bool)
	for _, f := range fc.Features {
		if f.Properties == nil {
			f.Properties = record.New()
		}
		f.Properties.Each(func(key string, _ any) {
			if !seen[key] && !derived[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		})
	}
	for _, name := range c.schema.NumericColumns() {
		if !seen[name] {
			return nil, missingColumn(name, "GeoJSON properties")
		}
	}
	columns = append(columns, geomCol, latCol, lonCol)

	table := &record.Table{
		Columns: columns,
		Records: make([]*record.Record, 0, len(fc.Features)),
	}

	for i, f := range fc.Features {
		props := f.Properties

		c.joinMultiValue(props)
		c.normalizeNumeric(props)
		c.coerceNumeric(props)

		point, err := f.Point()
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i+1, err)
		}

		rec := record.New()
		rec.Row = i + 1
		for _, name := range columns[:len(columns)-3] {
			v, _ := props.Get(name)
			rec.Set(name, v)
		}

		if point == nil {
			rec.Set(geomCol, nil)
			rec.Set(latCol, nil)
			rec.Set(lonCol, nil)
		} else {
			text, err := geo.FormatPoint(point)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i+1, err)
			}
			rec.Set(geomCol, text)
			rec.Set(latCol, point.Y())
			rec.Set(lonCol, point.X())
		}

		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// joinMultiValue flattens a list value to its comma-joined form; scalars pass through.
func (c *Converter) joinMultiValue(props *record.Record) {
	name := c.schema.MultiValueColumn()
	if !props.Has(name) {
		return
	}

	v, _ := props.Get(name)
	if list, ok := record.MultiValueFromList(v); ok {
		props.Set(name, list.String())
	}
}

// normalizeNumeric applies the decimal separator substitution to numeric text
// without parsing it.
func (c *Converter) normalizeNumeric(props *record.Record) {
	for _, name := range c.schema.NumericColumns() {
		if v, ok := props.Get(name); ok {
			if s, isText := v.(string); isText {
				props.Set(name, c.locale.Normalize(s))
			}
		}
	}
}
