package sheet

import (
	"bytes"
	"testing"

	"github.com/woozymasta/exceljson/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != DefaultSheet {
		require.NoError(t, f.SetSheetName(DefaultSheet, sheet))
	}
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, axis, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadCellTypes(t *testing.T) {
	buf := workbook(t, DefaultSheet, [][]any{
		{"Name", "MW", "Kanton", "Aktiv", "geometry"},
		{"Gries", 2.3, "VS", true, "POINT (8.37 46.46)"},
		{"Mont Crosin", "1,5", "BE, JU", false, "POINT (7.02 47.18)"},
	})

	table, err := Read(buf, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "MW", "Kanton", "Aktiv", "geometry"}, table.Columns)
	require.Len(t, table.Records, 2)

	first := table.Records[0]
	assert.Equal(t, 2, first.Row)
	v, _ := first.Get("MW")
	assert.Equal(t, 2.3, v)
	v, _ = first.Get("Aktiv")
	assert.Equal(t, true, v)
	v, _ = first.Get("geometry")
	assert.Equal(t, "POINT (8.37 46.46)", v)

	second := table.Records[1]
	v, _ = second.Get("MW")
	assert.Equal(t, "1,5", v)
	v, _ = second.Get("Kanton")
	assert.Equal(t, "BE, JU", v)
}

func TestReadSkipsBlankRowsAndFillsShortRows(t *testing.T) {
	buf := workbook(t, "Turbines", [][]any{
		{"Name", "MW", "Kanton"},
		{"A", 1.0},
		{nil, nil, nil},
		{"B", nil, "ZH"},
	})

	table, err := Read(buf, "Turbines")
	require.NoError(t, err)
	require.Len(t, table.Records, 2)

	v, ok := table.Records[0].Get("Kanton")
	assert.True(t, ok)
	assert.Nil(t, v)

	v, _ = table.Records[1].Get("MW")
	assert.Nil(t, v)
	assert.Equal(t, 4, table.Records[1].Row)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(workbook(t, DefaultSheet, nil), "")
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = Read(workbook(t, DefaultSheet, [][]any{{"a", "a"}}), "")
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = Read(workbook(t, DefaultSheet, [][]any{{"a"}}), "missing")
	assert.Error(t, err)

	_, err = Read(bytes.NewBufferString("not a workbook"), "")
	assert.Error(t, err)
}

func TestReadNamesBlankHeaders(t *testing.T) {
	table, err := Read(workbook(t, DefaultSheet, [][]any{{"a", nil, "c"}, {1.0, 2.0, 3.0}}), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "column2", "c"}, table.Columns)
}

func TestWriteReadRoundTrip(t *testing.T) {
	rec := record.New()
	rec.Set("Name", "Gries")
	rec.Set("MW", 2.3)
	rec.Set("Kanton", record.MultiValue{"AG", "BE"})
	rec.Set("lat", nil)
	rec.Set("note", "")

	table := &record.Table{
		Columns: []string{"Name", "MW", "Kanton", "lat", "note", "extra"},
		Records: []*record.Record{rec},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "Turbines", table))

	back, err := Read(&buf, "Turbines")
	require.NoError(t, err)
	assert.Equal(t, table.Columns, back.Columns)
	require.Len(t, back.Records, 1)

	got := back.Records[0]
	v, _ := got.Get("Name")
	assert.Equal(t, "Gries", v)
	v, _ = got.Get("MW")
	assert.Equal(t, 2.3, v)
	v, _ = got.Get("Kanton")
	assert.Equal(t, "AG, BE", v)
	for _, empty := range []string{"lat", "note", "extra"} {
		v, _ = got.Get(empty)
		assert.Nil(t, v, empty)
	}
}

func TestCellOutput(t *testing.T) {
	v, err := cellOutput(map[string]any{"a": 1.0})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, v)

	v, err = cellOutput([]any{"x", 2.0})
	require.NoError(t, err)
	assert.Equal(t, `["x",2]`, v)
}
