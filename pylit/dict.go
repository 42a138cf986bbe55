// Package pylit reads and writes the subset of Python literal syntax used by
// mx suite manifests.
//
// A manifest is a Python module whose only meaningful statement is an
// assignment of a dict literal to the name `suite`. Values are strings,
// numbers, booleans, None, lists, tuples and dicts. Dicts keep the order in
// which their keys were written, so that a manifest can be re-serialized
// without reshuffling it.
//
// Values produced by this package have one of the following Go types:
//
//	string, int64, float64, bool, nil, []interface{}, *Dict
package pylit

import (
	"bytes"
	"encoding/json"
)

// A Dict is an insertion-ordered mapping from string keys to values.
type Dict struct {
	keys   []string
	values map[string]interface{}
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{values: make(map[string]interface{})}
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys in insertion order. The returned slice must not be
// modified.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return d.keys
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (interface{}, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Set stores value under key. New keys are appended; existing keys keep their
// position.
func (d *Dict) Set(key string, value interface{}) {
	if d.values == nil {
		d.values = make(map[string]interface{})
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Delete removes key.
func (d *Dict) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i:i], d.keys[i+1:]...)
			break
		}
	}
}

// Map converts the Dict into plain Go maps, recursively. Order is lost.
func (d *Dict) Map() map[string]interface{} {
	if d == nil {
		return nil
	}
	m := make(map[string]interface{}, len(d.keys))
	for _, k := range d.keys {
		m[k] = Plain(d.values[k])
	}
	return m
}

// Plain converts a value so that it contains no *Dict.
func Plain(v interface{}) interface{} {
	switch t := v.(type) {
	case *Dict:
		return t.Map()
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
