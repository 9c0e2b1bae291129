package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKeepsColumnOrder(t *testing.T) {
	r := New()
	r.Set("Name", "Mont Crosin")
	r.Set("MW", 2.0)
	r.Set("Kanton", MultiValue{"BE"})
	r.Set("MW", 3.0)

	assert.Equal(t, []string{"Name", "MW", "Kanton"}, r.Keys())
	v, ok := r.Get("MW")
	require.True(t, ok)
	assert.Equal(t, 3.0, v)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Name":"Mont Crosin","MW":3,"Kanton":["BE"]}`, string(data))
	assert.Equal(t, `{"Name":"Mont Crosin","MW":3,"Kanton":["BE"]}`, string(data))
}

func TestRecordUnmarshalKeepsDocumentOrder(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"z":1,"a":"x","m":[1,"b"],"n":null}`), &r))

	assert.Equal(t, []string{"z", "a", "m", "n"}, r.Keys())
	v, _ := r.Get("z")
	assert.Equal(t, 1.0, v)
	v, ok := r.Get("n")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestZeroRecord(t *testing.T) {
	var r Record
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Has("x"))
	r.Delete("x")

	data, err := json.Marshal(&r)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	r.Set("x", 1)
	assert.True(t, r.Has("x"))
	r.Delete("x")
	assert.False(t, r.Has("x"))
}

func TestTableHasColumn(t *testing.T) {
	tbl := &Table{Columns: []string{"a", "b"}}
	assert.True(t, tbl.HasColumn("b"))
	assert.False(t, tbl.HasColumn("c"))
}
