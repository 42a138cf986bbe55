package mx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/fossas/mxsuite/pylit"
)

func unmarshalYAML(data []byte) (*pylit.Dict, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	v, err := fromYAML(doc)
	if err != nil {
		return nil, err
	}
	return v.(*pylit.Dict), nil
}

func fromYAML(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case yaml.MapSlice:
		d := pylit.NewDict()
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				return nil, errors.Errorf("mapping keys must be strings, found %v", item.Key)
			}
			if d.Has(key) {
				return nil, errors.Errorf("duplicate key %q", key)
			}
			value, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			d.Set(key, value)
		}
		return d, nil
	case []interface{}:
		list := make([]interface{}, len(t))
		for i, e := range t {
			value, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			list[i] = value
		}
		return list, nil
	case int:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	default:
		return v, nil
	}
}

func marshalYAML(tree *pylit.Dict) ([]byte, error) {
	return yaml.Marshal(toYAML(tree))
}

func toYAML(v interface{}) interface{} {
	switch t := v.(type) {
	case *pylit.Dict:
		m := make(yaml.MapSlice, 0, t.Len())
		for _, k := range t.Keys() {
			value, _ := t.Get(k)
			m = append(m, yaml.MapItem{Key: k, Value: toYAML(value)})
		}
		return m
	case []interface{}:
		list := make([]interface{}, len(t))
		for i, e := range t {
			list[i] = toYAML(e)
		}
		return list
	default:
		return v
	}
}

// unmarshalJSON walks the token stream so that object key order survives.
func unmarshalJSON(data []byte) (*pylit.Dict, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := jsonValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the top-level object")
	}
	d, ok := v.(*pylit.Dict)
	if !ok {
		return nil, errors.Errorf("top-level value must be an object, found %T", v)
	}
	return d, nil
}

func jsonValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			d := pylit.NewDict()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key := kt.(string)
				if d.Has(key) {
					return nil, errors.Errorf("duplicate key %q", key)
				}
				value, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				d.Set(key, value)
			}
			_, err := dec.Token()
			return d, err
		case '[':
			list := []interface{}{}
			for dec.More() {
				value, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, value)
			}
			_, err := dec.Token()
			return list, err
		}
		return nil, errors.Errorf("unexpected %v", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		return t, nil
	}
}

func marshalJSON(tree *pylit.Dict) ([]byte, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// unmarshalTOML orders the keys of every table by their first appearance in
// the document.
func unmarshalTOML(data []byte) (*pylit.Dict, error) {
	var doc map[string]interface{}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	order := make(map[string]int)
	for i, key := range md.Keys() {
		// Implicit tables are not listed; they sort by their first child.
		for n := 1; n <= len(key); n++ {
			path := strings.Join(key[:n], "\x00")
			if _, ok := order[path]; !ok {
				order[path] = i
			}
		}
	}
	return fromTOML(doc, nil, order), nil
}

func fromTOML(m map[string]interface{}, path []string, order map[string]int) *pylit.Dict {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	position := func(k string) int {
		p, ok := order[strings.Join(append(path[:len(path):len(path)], k), "\x00")]
		if !ok {
			return len(order)
		}
		return p
	}
	sort.SliceStable(keys, func(i, j int) bool {
		pi, pj := position(keys[i]), position(keys[j])
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})

	d := pylit.NewDict()
	for _, k := range keys {
		d.Set(k, tomlValue(m[k], append(path[:len(path):len(path)], k), order))
	}
	return d
}

func tomlValue(v interface{}, path []string, order map[string]int) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return fromTOML(t, path, order)
	case []map[string]interface{}:
		list := make([]interface{}, len(t))
		for i, e := range t {
			list[i] = fromTOML(e, path, order)
		}
		return list
	case []interface{}:
		list := make([]interface{}, len(t))
		for i, e := range t {
			list[i] = tomlValue(e, path, order)
		}
		return list
	default:
		return v
	}
}

// marshalTOML writes tables with sorted keys; TOML has no null, so None
// values are dropped.
func marshalTOML(tree *pylit.Dict) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tree.Map()); err != nil {
		return nil, fmt.Errorf("could not encode manifest as TOML: %s", err)
	}
	return buf.Bytes(), nil
}
