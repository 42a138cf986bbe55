package suite

import (
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/fossas/mxsuite/pylit"
)

// Sections whose entries are keyed by name. They are decoded entry by entry so
// that their order survives.
const (
	sectionLicenses      = "licenses"
	sectionLibraries     = "libraries"
	sectionProjects      = "projects"
	sectionDistributions = "distributions"
)

var namedSections = []string{sectionLicenses, sectionLibraries, sectionProjects, sectionDistributions}

// Decode builds a Suite from a manifest tree. Values of the wrong type are
// reported as errors; unknown keys are kept in the Extra fields. Keys match
// field names exactly, so `SUBDIR` is an unknown key rather than `subDir`.
func Decode(tree *pylit.Dict) (*Suite, error) {
	if tree == nil {
		return nil, errors.New("manifest is empty")
	}

	header := tree.Map()
	for _, section := range namedSections {
		delete(header, section)
	}

	var s Suite
	if err := decode(header, &s); err != nil {
		return nil, err
	}
	s.zeros = zeroKeys(header)
	for _, section := range namedSections {
		if v, ok := tree.Get(section); ok && isZero(v) {
			if s.zeros == nil {
				s.zeros = make(map[string]interface{})
			}
			s.zeros[section] = v
		}
	}
	s.Imports.record(header["imports"])

	err := eachEntry(tree, sectionLicenses, func(name string, entry map[string]interface{}) error {
		l := &License{Name: name, zeros: zeroKeys(entry)}
		s.Licenses = append(s.Licenses, l)
		return decode(entry, l)
	})
	if err != nil {
		return nil, err
	}

	err = eachEntry(tree, sectionLibraries, func(name string, entry map[string]interface{}) error {
		l := &Library{Name: name, zeros: zeroKeys(entry)}
		s.Libraries = append(s.Libraries, l)
		return decode(entry, l)
	})
	if err != nil {
		return nil, err
	}

	err = eachEntry(tree, sectionProjects, func(name string, entry map[string]interface{}) error {
		p := &Project{Name: name, zeros: zeroKeys(entry)}
		s.Projects = append(s.Projects, p)
		return decode(entry, p)
	})
	if err != nil {
		return nil, err
	}

	err = eachEntry(tree, sectionDistributions, func(name string, entry map[string]interface{}) error {
		d := &Distribution{Name: name, zeros: zeroKeys(entry)}
		s.Distributions = append(s.Distributions, d)
		return decode(entry, d)
	})
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// record notes the empty keys of the raw `imports` value and of each import
// and URL below it. The raw value has already been decoded into i.
func (i *Imports) record(raw interface{}) {
	m, _ := raw.(map[string]interface{})
	i.zeros = zeroKeys(m)
	suites, _ := m["suites"].([]interface{})
	for n, rawImport := range suites {
		if n >= len(i.Suites) {
			break
		}
		imp := &i.Suites[n]
		im, _ := rawImport.(map[string]interface{})
		imp.zeros = zeroKeys(im)
		urls, _ := im["urls"].([]interface{})
		for k, rawURL := range urls {
			if k >= len(imp.URLs) {
				break
			}
			um, _ := rawURL.(map[string]interface{})
			imp.URLs[k].zeros = zeroKeys(um)
		}
	}
}

func eachEntry(tree *pylit.Dict, section string, fn func(name string, entry map[string]interface{}) error) error {
	v, ok := tree.Get(section)
	if !ok || v == nil {
		return nil
	}
	d, ok := v.(*pylit.Dict)
	if !ok {
		return errors.Errorf("'%s' must be a dict, found %T", section, v)
	}
	for _, name := range d.Keys() {
		entry, _ := d.Get(name)
		ed, ok := entry.(*pylit.Dict)
		if !ok {
			return errors.Errorf("'%s.%s' must be a dict, found %T", section, name, entry)
		}
		if err := fn(name, ed.Map()); err != nil {
			return errors.Wrapf(err, "'%s.%s'", section, name)
		}
	}
	return nil
}

func decode(input map[string]interface{}, result interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     result,
		TagName:    "mapstructure",
		MatchName:  func(key, field string) bool { return key == field },
		DecodeHook: numberToString,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// numberToString lets unquoted numbers such as `javaCompliance: 1.8` in YAML
// or TOML fill string fields. The number is written in its shortest form, so
// `1.10` becomes "1.1" and versions like it must be quoted.
func numberToString(from, to reflect.Kind, data interface{}) (interface{}, error) {
	if to != reflect.String {
		return data, nil
	}
	switch n := data.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
	return data, nil
}

// zeroKeys returns the entries of m whose value is empty, or nil if there are
// none.
func zeroKeys(m map[string]interface{}) map[string]interface{} {
	var zeros map[string]interface{}
	for k, v := range m {
		if !isZero(v) {
			continue
		}
		if zeros == nil {
			zeros = make(map[string]interface{})
		}
		zeros[k] = v
	}
	return zeros
}

func isZero(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	case *pylit.Dict:
		return t.Len() == 0
	}
	return false
}
