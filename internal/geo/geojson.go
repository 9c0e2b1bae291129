// Package geo handles GeoJSON feature collections and WKT point geometry.
package geo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/woozymasta/exceljson/internal/record"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"gopkg.in/yaml.v3"
)

const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
)

// Format selects the textual encoding of a feature collection.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrNotFeatureCollection = errors.New("not a GeoJSON FeatureCollection")
	ErrUnknownFormat        = errors.New("unknown output format")
)

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

// Feature pairs a geometry with column-ordered properties.
// A nil Geometry encodes as GeoJSON null.
type Feature struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties *record.Record    `json:"properties"`
}

// NewFeatureCollection returns an empty collection with room for n features.
func NewFeatureCollection(n int) *FeatureCollection {
	return &FeatureCollection{
		Type:     TypeFeatureCollection,
		Features: make([]*Feature, 0, n),
	}
}

// NewPointFeature builds a feature from a point and its properties.
func NewPointFeature(p *geom.Point, props *record.Record) (*Feature, error) {
	g, err := geojson.Encode(p)
	if err != nil {
		return nil, fmt.Errorf("encode point: %w", err)
	}

	return &Feature{
		Type:       TypeFeature,
		Geometry:   g,
		Properties: props,
	}, nil
}

// Point returns the feature geometry as a point. A null geometry yields nil, nil;
// any other geometry type is an error.
func (f *Feature) Point() (*geom.Point, error) {
	if f.Geometry == nil {
		return nil, nil
	}

	g, err := f.Geometry.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}

	p, ok := g.(*geom.Point)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotPoint, f.Geometry.Type)
	}
	if len(p.FlatCoords()) < 2 {
		return nil, nil
	}

	return p, nil
}

// Decode parses a GeoJSON document. Properties keep the order of the document.
func Decode(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse GeoJSON: %w", err)
	}

	if fc.Type != TypeFeatureCollection {
		return nil, fmt.Errorf("%w: type %q", ErrNotFeatureCollection, fc.Type)
	}

	for i, f := range fc.Features {
		if f == nil {
			return nil, fmt.Errorf("%w: feature %d is null", ErrNotFeatureCollection, i)
		}
		if f.Properties == nil {
			f.Properties = record.New()
		}
		f.Properties.Row = i + 1
	}

	return &fc, nil
}

// Encode marshals the collection in the requested format.
func Encode(fc *FeatureCollection, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON, "":
		return append(data, '\n'), nil
	case FormatYAML:
		return jsonToYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// jsonToYAML re-encodes JSON as block-style YAML, keeping key order.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style &^= yaml.FlowStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}
