package transcode

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is one transformed row. Keys keep the header's column order.
type Record struct {
	fields *orderedmap.OrderedMap[string, Value]
}

func newRecord(size int) Record {
	return Record{fields: orderedmap.New[string, Value](size)}
}

// set assigns key. A repeated key keeps its first position and takes the
// latest value.
func (r Record) set(key string, v Value) {
	r.fields.Set(key, v)
}

// Get returns the value stored under key.
func (r Record) Get(key string) (Value, bool) {
	if r.fields == nil {
		return Value{}, false
	}
	return r.fields.Get(key)
}

// Keys returns the record's keys in order.
func (r Record) Keys() []string {
	if r.fields == nil {
		return nil
	}
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of fields.
func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// MarshalJSON encodes the record as a compact JSON object in key order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r.fields != nil {
		for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
			if buf.Len() > 1 {
				buf.WriteByte(',')
			}
			key, err := String(pair.Key).MarshalJSON()
			if err != nil {
				return nil, err
			}
			val, err := pair.Value.MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", pair.Key, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping its key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	fields := orderedmap.New[string, Value]()
	if err := fields.UnmarshalJSON(data); err != nil {
		return err
	}
	r.fields = fields
	return nil
}

// Encode writes records as one compact JSON array.
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	// Encoder terminates each document with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a document produced by Encode.
func Decode(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
