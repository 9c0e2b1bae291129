package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()

	for _, name := range DefaultNumericColumns {
		assert.True(t, s.IsNumericColumn(name), name)
	}
	assert.False(t, s.IsNumericColumn("Kanton"))
	assert.False(t, s.IsNumericColumn("Name"))
	assert.Equal(t, "Kanton", s.MultiValueColumn())
	assert.Equal(t, "geometry", s.GeometryColumn())
	assert.Equal(t, "lat", s.LatitudeColumn())
	assert.Equal(t, "lon", s.LongitudeColumn())
}

func TestNumericColumnsIsACopy(t *testing.T) {
	s := Default()
	cols := s.NumericColumns()
	cols[0] = "changed"

	assert.Equal(t, DefaultNumericColumns[0], s.NumericColumns()[0])
	assert.False(t, s.IsNumericColumn("changed"))
}

func TestNew(t *testing.T) {
	s, err := New(Definition{
		Numeric:    []string{"height", " power "},
		MultiValue: "regions",
		Geometry:   "wkt",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"height", "power"}, s.NumericColumns())
	assert.True(t, s.IsNumericColumn("power"))
	assert.Equal(t, "regions", s.MultiValueColumn())
	assert.Equal(t, "wkt", s.GeometryColumn())
	assert.Equal(t, "lat", s.LatitudeColumn())
}

func TestNewRejectsInconsistentDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{name: "blank numeric", def: Definition{Numeric: []string{"MW", " "}}},
		{name: "duplicate numeric", def: Definition{Numeric: []string{"MW", "MW"}}},
		{name: "geometry is numeric", def: Definition{Numeric: []string{"MW"}, Geometry: "MW"}},
		{name: "multi value is geometry", def: Definition{MultiValue: "geometry"}},
		{name: "lat equals lon", def: Definition{Latitude: "y", Longitude: "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.def)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}
