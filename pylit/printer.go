package pylit

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	indentUnit = "    "
	lineWidth  = 80
)

// Format renders d as `variable = { ... }` followed by a newline.
func Format(variable string, d *Dict) ([]byte, error) {
	var buf bytes.Buffer
	if err := Print(&buf, variable, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Print writes d to w as an assignment to variable.
//
// Dicts are written one entry per line with trailing commas. Lists of scalars
// are written on one line when they fit; other lists are written one element
// per line.
func Print(w io.Writer, variable string, d *Dict) error {
	bw := bufio.NewWriter(w)
	pr := printer{w: bw}
	pr.write(variable + " = ")
	pr.value(d, 0, len(variable)+3)
	pr.write("\n")
	if pr.err != nil {
		return pr.err
	}
	return bw.Flush()
}

// FormatValue renders a single value on one line where possible.
func FormatValue(v interface{}) (string, error) {
	var buf bytes.Buffer
	pr := printer{w: &buf}
	pr.value(v, 0, 0)
	return buf.String(), pr.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) value(v interface{}, depth, column int) {
	switch t := v.(type) {
	case *Dict:
		p.dict(t, depth)
	case map[string]interface{}:
		p.dict(dictFromMap(t), depth)
	case []interface{}:
		p.list(t, depth, column)
	case []string:
		list := make([]interface{}, len(t))
		for i, s := range t {
			list[i] = s
		}
		p.list(list, depth, column)
	default:
		s, err := scalar(v)
		if err != nil {
			p.err = err
			return
		}
		p.write(s)
	}
}

func (p *printer) dict(d *Dict, depth int) {
	if d.Len() == 0 {
		p.write("{}")
		return
	}
	inner := strings.Repeat(indentUnit, depth+1)
	p.write("{\n")
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		prefix := inner + quote(k) + " : "
		p.write(prefix)
		p.value(v, depth+1, len(prefix))
		p.write(",\n")
	}
	p.write(strings.Repeat(indentUnit, depth) + "}")
}

func (p *printer) list(l []interface{}, depth, column int) {
	if len(l) == 0 {
		p.write("[]")
		return
	}
	if line, ok := inlineList(l); ok && column+len(line)+1 <= lineWidth {
		p.write(line)
		return
	}
	inner := strings.Repeat(indentUnit, depth+1)
	p.write("[\n")
	for _, e := range l {
		p.write(inner)
		p.value(e, depth+1, len(inner))
		p.write(",\n")
	}
	p.write(strings.Repeat(indentUnit, depth) + "]")
}

// inlineList renders l on one line if it only contains scalars.
func inlineList(l []interface{}) (string, bool) {
	parts := make([]string, len(l))
	for i, e := range l {
		s, err := scalar(e)
		if err != nil {
			return "", false
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]", true
}

func scalar(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "None", nil
	case bool:
		if t {
			return "True", nil
		}
		return "False", nil
	case string:
		return quote(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return "", fmt.Errorf("cannot represent %v as a literal", t)
		}
		s := strconv.FormatFloat(t, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, nil
	default:
		return "", fmt.Errorf("cannot represent value of type %T as a literal", v)
	}
}

// quote produces a double-quoted literal. Go escape sequences are a subset of
// the ones Python accepts.
func quote(s string) string {
	return strconv.Quote(s)
}

func dictFromMap(m map[string]interface{}) *Dict {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d := NewDict()
	for _, k := range keys {
		d.Set(k, m[k])
	}
	return d
}
