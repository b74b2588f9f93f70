package export

import (
	"bytes"
	"encoding/json"

	"github.com/specialistvlad/incidentfilter/internal/incident"
)

// Record is the flat form of one incident. Keys keep the order in which they
// were first seen; a repeated key keeps its first position and its last value.
type Record struct {
	fields []incident.Field
}

// NewRecord flattens record, leaving out elements tagged skipTag.
func NewRecord(record *incident.Node, skipTag string) Record {
	var r Record
	for _, f := range incident.Fields(record, skipTag) {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Build flattens every record in order.
func Build(records []*incident.Node, skipTag string) []Record {
	out := make([]Record, 0, len(records))
	for _, n := range records {
		out = append(out, NewRecord(n, skipTag))
	}
	return out
}

// Set stores value under name.
func (r *Record) Set(name, value string) {
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, incident.Field{Name: name, Value: value})
}

// Fields returns the record's fields in key order.
func (r Record) Fields() []incident.Field {
	return r.fields
}

// Map returns the record as an unordered map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		m[f.Name] = f.Value
	}
	return m
}

// MarshalJSON encodes the record as an object with keys in record order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, f.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeString appends s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
