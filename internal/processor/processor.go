// Package processor runs whole conversions: read the source, convert, write the result.
package processor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/exceljson/internal/config"
	"github.com/woozymasta/exceljson/internal/convert"
	"github.com/woozymasta/exceljson/internal/geo"
	"github.com/woozymasta/exceljson/internal/locale"
	"github.com/woozymasta/exceljson/internal/schema"
	"github.com/woozymasta/exceljson/internal/sheet"

	"github.com/rs/zerolog/log"
)

// Direction selects which pipeline a conversion runs.
type Direction int

const (
	// ToGeoJSON converts a spreadsheet to GeoJSON.
	ToGeoJSON Direction = iota
	// ToSpreadsheet converts GeoJSON to a spreadsheet.
	ToSpreadsheet
)

// ErrNoSource is reported when the caller did not pick an input file.
var ErrNoSource = errors.New("no source file selected")

func (d Direction) String() string {
	if d == ToSpreadsheet {
		return "geojson2xlsx"
	}
	return "xlsx2geojson"
}

// DefaultExt returns the extension of the files the direction produces.
func (d Direction) DefaultExt() string {
	if d == ToSpreadsheet {
		return ".xlsx"
	}
	return ".json"
}

func (d Direction) sourceKind() string {
	if d == ToSpreadsheet {
		return "GeoJSON"
	}
	return "Excel"
}

func (d Direction) targetKind() string {
	if d == ToSpreadsheet {
		return "Excel"
	}
	return "JSON"
}

// Processor converts complete files in memory. It holds no per-conversion state.
type Processor struct {
	conv   *convert.Converter
	sheet  string
	format geo.Format
}

// New builds a processor from configuration.
func New(cfg *config.Config) (*Processor, error) {
	s := schema.Default()
	if cfg.Schema != nil {
		var err error
		if s, err = schema.New(*cfg.Schema); err != nil {
			return nil, err
		}
	}

	format := geo.Format(cfg.Format)
	if format != geo.FormatJSON && format != geo.FormatYAML {
		return nil, fmt.Errorf("%w: %q", geo.ErrUnknownFormat, cfg.Format)
	}

	return &Processor{
		conv:   convert.New(s, locale.Policy{DecimalSeparator: cfg.DecimalSeparator}),
		sheet:  cfg.Sheet,
		format: format,
	}, nil
}

// Schema returns the column registry in use.
func (p *Processor) Schema() *schema.Schema { return p.conv.Schema() }

// Format returns the GeoJSON output encoding.
func (p *Processor) Format() geo.Format { return p.format }

// Convert reads the whole source from r and writes the converted document to w.
// Nothing is written unless the conversion succeeds. It returns the record count.
func (p *Processor) Convert(d Direction, r io.Reader, w io.Writer) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read source: %w", err)
	}

	out, n, err := p.convertBytes(d, data)
	if err != nil {
		return 0, err
	}

	if _, err := w.Write(out); err != nil {
		return 0, fmt.Errorf("write result: %w", err)
	}
	return n, nil
}

func (p *Processor) convertBytes(d Direction, data []byte) ([]byte, int, error) {
	switch d {
	case ToGeoJSON:
		table, err := sheet.Read(bytes.NewReader(data), p.sheet)
		if err != nil {
			return nil, 0, err
		}

		fc, err := p.conv.TabularToGeo(table)
		if err != nil {
			return nil, 0, err
		}

		out, err := geo.Encode(fc, p.format)
		if err != nil {
			return nil, 0, err
		}
		return out, len(fc.Features), nil

	case ToSpreadsheet:
		fc, err := geo.Decode(data)
		if err != nil {
			return nil, 0, err
		}

		table, err := p.conv.GeoToTabular(fc)
		if err != nil {
			return nil, 0, err
		}

		var buf bytes.Buffer
		if err := sheet.Write(&buf, p.sheet, table); err != nil {
			return nil, 0, err
		}
		return buf.Bytes(), len(table.Records), nil

	default:
		return nil, 0, fmt.Errorf("unknown direction %d", d)
	}
}

// Run performs one conversion driven by the prompter: it asks for the source,
// converts, asks for the destination and reports the outcome.
// An empty destination cancels the conversion without writing or reporting.
func (p *Processor) Run(d Direction, ui Prompter) error {
	src := ui.SourcePath()
	if src == "" {
		err := fmt.Errorf("%w: please select a %s file first", ErrNoSource, d.sourceKind())
		ui.Failure("Error", err)
		return err
	}

	log.Debug().
		Str("direction", d.String()).
		Str("source", src).
		Msg("Starting conversion")

	data, err := os.ReadFile(src)
	if err != nil {
		err = fmt.Errorf("read source: %w", err)
		ui.Failure("Conversion failed", err)
		return err
	}

	out, n, err := p.convertBytes(d, data)
	if err != nil {
		ui.Failure("Conversion failed", err)
		return err
	}

	dst := ui.DestinationPath(d.DefaultExt())
	if dst == "" {
		log.Info().Str("source", src).Msg("No destination selected, nothing written")
		return nil
	}

	if err := writeFile(dst, out); err != nil {
		err = fmt.Errorf("write result: %w", err)
		ui.Failure("Conversion failed", err)
		return err
	}

	log.Info().
		Str("direction", d.String()).
		Str("source", src).
		Str("destination", dst).
		Int("records", n).
		Msg("Conversion finished")

	ui.Success(fmt.Sprintf("%s file converted to %s successfully (%d records)", d.sourceKind(), d.targetKind(), n))
	return nil
}
