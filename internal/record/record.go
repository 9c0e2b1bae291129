// Package record holds the column-ordered records shared by the spreadsheet and
// GeoJSON sides of a conversion.
package record

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record maps column names to values in column order.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]

	// Row is the 1-based source row (spreadsheet) or feature index, 0 if unknown.
	Row int
}

// New returns an empty record.
func New() *Record {
	return &Record{fields: orderedmap.New[string, any]()}
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r.fields == nil {
		return nil, false
	}
	return r.fields.Get(key)
}

// Set stores value under key. New keys are appended, existing keys keep their position.
func (r *Record) Set(key string, value any) {
	if r.fields == nil {
		r.fields = orderedmap.New[string, any]()
	}
	r.fields.Set(key, value)
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Delete removes key.
func (r *Record) Delete(key string) {
	if r.fields != nil {
		r.fields.Delete(key)
	}
}

// Len returns the number of columns.
func (r *Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Keys returns column names in order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	r.Each(func(key string, _ any) {
		keys = append(keys, key)
	})
	return keys
}

// Each calls fn for every column in order.
func (r *Record) Each(fn func(key string, value any)) {
	if r.fields == nil {
		return
	}
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON encodes the record as a JSON object with keys in column order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return r.fields.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the document.
func (r *Record) UnmarshalJSON(data []byte) error {
	fields := orderedmap.New[string, any]()
	if err := fields.UnmarshalJSON(data); err != nil {
		return err
	}
	r.fields = fields
	return nil
}

// Table is an ordered column set with one record per row.
type Table struct {
	Columns []string
	Records []*Record
}

// HasColumn reports whether name is one of the table columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
