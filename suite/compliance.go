package suite

import (
	"fmt"
	"strconv"
	"strings"
)

// A Compliance is a parsed javaCompliance marker: an exact version (`1.8`),
// an open range (`1.8+`) or a closed range (`8..11`). Versions are stored as
// feature releases, so `1.8` and `8` are the same.
type Compliance struct {
	Low     int
	High    int // Equal to Low for exact versions; 0 for open ranges.
	OrLater bool
}

// ParseCompliance parses a javaCompliance marker.
func ParseCompliance(s string) (Compliance, error) {
	spec := strings.TrimSpace(s)
	if spec == "" {
		return Compliance{}, fmt.Errorf("empty javaCompliance")
	}

	if strings.HasSuffix(spec, "+") {
		low, err := parseJavaVersion(strings.TrimSuffix(spec, "+"))
		if err != nil {
			return Compliance{}, fmt.Errorf("invalid javaCompliance %q: %s", s, err)
		}
		return Compliance{Low: low, OrLater: true}, nil
	}

	if i := strings.Index(spec, ".."); i >= 0 {
		low, err := parseJavaVersion(spec[:i])
		if err != nil {
			return Compliance{}, fmt.Errorf("invalid javaCompliance %q: %s", s, err)
		}
		high, err := parseJavaVersion(spec[i+2:])
		if err != nil {
			return Compliance{}, fmt.Errorf("invalid javaCompliance %q: %s", s, err)
		}
		if high < low {
			return Compliance{}, fmt.Errorf("invalid javaCompliance %q: range is empty", s)
		}
		return Compliance{Low: low, High: high}, nil
	}

	v, err := parseJavaVersion(spec)
	if err != nil {
		return Compliance{}, fmt.Errorf("invalid javaCompliance %q: %s", s, err)
	}
	return Compliance{Low: v, High: v}, nil
}

// Admits reports whether a JDK with feature release v satisfies c.
func (c Compliance) Admits(v int) bool {
	if v < c.Low {
		return false
	}
	return c.OrLater || v <= c.High
}

func (c Compliance) String() string {
	switch {
	case c.OrLater:
		return strconv.Itoa(c.Low) + "+"
	case c.High != c.Low:
		return strconv.Itoa(c.Low) + ".." + strconv.Itoa(c.High)
	default:
		return strconv.Itoa(c.Low)
	}
}

// parseJavaVersion accepts `1.N` for N <= 8 and plain feature releases.
func parseJavaVersion(s string) (int, error) {
	if strings.HasPrefix(s, "1.") {
		n, err := strconv.Atoi(s[2:])
		if err != nil || n < 1 || n > 8 {
			return 0, fmt.Errorf("unknown Java version %q", s)
		}
		return n, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("unknown Java version %q", s)
	}
	return n, nil
}
