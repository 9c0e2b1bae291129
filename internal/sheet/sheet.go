// Package sheet reads and writes record tables as xlsx workbooks.
package sheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/woozymasta/exceljson/internal/record"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used for new workbooks.
const DefaultSheet = "Sheet1"

var (
	ErrNoHeader        = errors.New("sheet has no header row")
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// Read loads a sheet from an xlsx workbook. An empty sheetName selects the first sheet.
// The first row is the header; fully blank rows are skipped.
func Read(r io.Reader, sheetName string) (*record.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	header := -1
	for i, row := range rows {
		if !blankRow(row) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoHeader, sheetName)
	}

	columns, err := headerColumns(rows[header])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}

	table := &record.Table{
		Columns: columns,
		Records: make([]*record.Record, 0, len(rows)-header-1),
	}

	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		if blankRow(row) {
			continue
		}

		rec := record.New()
		rec.Row = i + 1
		for c, name := range columns {
			var raw string
			if c < len(row) {
				raw = row[c]
			}

			v, err := cellValue(f, sheetName, c+1, i+1, raw)
			if err != nil {
				return nil, err
			}
			rec.Set(name, v)
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// Write stores the table as a single-sheet workbook. Nil values become empty cells.
func Write(w io.Writer, sheetName string, t *record.Table) error {
	if sheetName == "" {
		sheetName = DefaultSheet
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheetName != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheetName); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet writer: %w", err)
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range t.Records {
		cells := make([]any, len(t.Columns))
		for c, name := range t.Columns {
			v, _ := rec.Get(name)
			cells[c], err = cellOutput(v)
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", i+2, name, err)
			}
		}

		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(axis, cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	return f.Write(w)
}

func headerColumns(row []string) ([]string, error) {
	columns := make([]string, len(row))
	seen := make(map[string]bool, len(row))

	for i, cell := range row {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = "column" + strconv.Itoa(i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = true
		columns[i] = name
	}

	return columns, nil
}

// cellValue converts a raw cell to a record value using the cell type.
func cellValue(f *excelize.File, sheet string, col, row int, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}

	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", axis, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// numeric cells carry no type attribute in most writers
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v, nil
		}
	}

	return raw, nil
}

// cellOutput maps a record value to something the stream writer can store.
func cellOutput(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if val == "" {
			return nil, nil
		}
		return val, nil
	case float64, float32, int, int64, bool:
		return val, nil
	case record.MultiValue:
		return cellOutput(val.String())
	case fmt.Stringer:
		return val.String(), nil
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
