// Package schema declares which columns of a turbine record get numeric coercion,
// which one is the multi-value field and which one holds the point geometry.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Built-in column names.
const (
	DefaultMultiValueColumn = "Kanton"
	DefaultGeometryColumn   = "geometry"
	DefaultLatitudeColumn   = "lat"
	DefaultLongitudeColumn  = "lon"
)

// DefaultNumericColumns lists the columns coerced to numbers by the built-in schema.
var DefaultNumericColumns = []string{
	"GesamthoeheM",
	"KEV-Liste",
	"Rotordurchmesser",
	"TotalTurbinen",
	"MW",
	"GWhA",
}

// ErrInvalidDefinition is returned by New for inconsistent column sets.
var ErrInvalidDefinition = errors.New("invalid schema definition")

// Definition is the configurable form of a Schema.
type Definition struct {
	Numeric    []string `yaml:"numeric,omitempty" json:"numeric"`
	MultiValue string   `yaml:"multi_value,omitempty" json:"multi_value"`
	Geometry   string   `yaml:"geometry,omitempty" json:"geometry"`
	Latitude   string   `yaml:"latitude,omitempty" json:"latitude"`
	Longitude  string   `yaml:"longitude,omitempty" json:"longitude"`
}

// Schema is an immutable column registry shared by both converters.
type Schema struct {
	numericSet map[string]struct{}
	multiValue string
	geometry   string
	latitude   string
	longitude  string
	numeric    []string
}

// Default returns the built-in turbine schema.
func Default() *Schema {
	s, err := New(Definition{})
	if err != nil {
		panic(err)
	}

	return s
}

// New builds a Schema from a definition. Empty fields fall back to the built-in values.
func New(def Definition) (*Schema, error) {
	numeric := def.Numeric
	if len(numeric) == 0 {
		numeric = DefaultNumericColumns
	}

	s := &Schema{
		numeric:    make([]string, 0, len(numeric)),
		numericSet: make(map[string]struct{}, len(numeric)),
		multiValue: orDefault(def.MultiValue, DefaultMultiValueColumn),
		geometry:   orDefault(def.Geometry, DefaultGeometryColumn),
		latitude:   orDefault(def.Latitude, DefaultLatitudeColumn),
		longitude:  orDefault(def.Longitude, DefaultLongitudeColumn),
	}

	for _, name := range numeric {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty numeric column name", ErrInvalidDefinition)
		}
		if _, dup := s.numericSet[name]; dup {
			return nil, fmt.Errorf("%w: numeric column %q listed twice", ErrInvalidDefinition, name)
		}
		s.numericSet[name] = struct{}{}
		s.numeric = append(s.numeric, name)
	}

	// every special column must be distinct from the others and from the numeric set
	special := []string{s.multiValue, s.geometry, s.latitude, s.longitude}
	seen := make(map[string]bool, len(special))
	for _, name := range special {
		if seen[name] {
			return nil, fmt.Errorf("%w: column %q has more than one role", ErrInvalidDefinition, name)
		}
		seen[name] = true
		if s.IsNumericColumn(name) {
			return nil, fmt.Errorf("%w: column %q cannot be numeric", ErrInvalidDefinition, name)
		}
	}

	return s, nil
}

// IsNumericColumn reports whether values of the column are coerced to numbers.
func (s *Schema) IsNumericColumn(name string) bool {
	_, ok := s.numericSet[name]
	return ok
}

// NumericColumns returns the numeric columns in declaration order.
func (s *Schema) NumericColumns() []string {
	out := make([]string, len(s.numeric))
	copy(out, s.numeric)
	return out
}

// MultiValueColumn returns the name of the comma-separated list column.
func (s *Schema) MultiValueColumn() string { return s.multiValue }

// GeometryColumn returns the name of the WKT point column.
func (s *Schema) GeometryColumn() string { return s.geometry }

// LatitudeColumn returns the name of the derived latitude column.
func (s *Schema) LatitudeColumn() string { return s.latitude }

// LongitudeColumn returns the name of the derived longitude column.
func (s *Schema) LongitudeColumn() string { return s.longitude }

// Definition returns the effective definition, e.g. for publishing over the API.
func (s *Schema) Definition() Definition {
	return Definition{
		Numeric:    s.NumericColumns(),
		MultiValue: s.multiValue,
		Geometry:   s.geometry,
		Latitude:   s.latitude,
		Longitude:  s.longitude,
	}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
