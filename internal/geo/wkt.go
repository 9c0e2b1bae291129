package geo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

var (
	ErrEmptyGeometry = errors.New("empty geometry")
	ErrNotPoint      = errors.New("geometry is not a point")
)

// ParsePoint parses WKT text such as "POINT (7.5 47.1)".
func ParsePoint(text string) (*geom.Point, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyGeometry
	}

	g, err := wkt.Unmarshal(text)
	if err != nil {
		return nil, fmt.Errorf("parse WKT %q: %w", text, err)
	}

	p, ok := g.(*geom.Point)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotPoint, text)
	}
	if len(p.FlatCoords()) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyGeometry, text)
	}

	return p, nil
}

// FormatPoint returns the WKT text of a point.
func FormatPoint(p *geom.Point) (string, error) {
	return wkt.Marshal(p)
}

// NewPoint returns a 2D point.
func NewPoint(x, y float64) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{x, y})
}
