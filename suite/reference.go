package suite

import (
	"fmt"
	"strings"
	"unicode"
)

// A Reference is a parsed dependency string. `suite:NAME` is qualified and
// resolves within the imported suite; a bare `NAME` resolves within the
// declaring suite.
type Reference struct {
	Suite string
	Name  string
}

// ParseReference parses a dependency string.
func ParseReference(s string) (Reference, error) {
	if s == "" {
		return Reference{}, fmt.Errorf("empty dependency reference")
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return Reference{}, fmt.Errorf("dependency reference %q contains whitespace", s)
	}
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		return Reference{Name: s}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Reference{}, fmt.Errorf("dependency reference %q must have the form suite:NAME", s)
		}
		return Reference{Suite: parts[0], Name: parts[1]}, nil
	default:
		return Reference{}, fmt.Errorf("dependency reference %q has more than one `:`", s)
	}
}

// Qualified reports whether r names an imported suite.
func (r Reference) Qualified() bool {
	return r.Suite != ""
}

func (r Reference) String() string {
	if r.Suite == "" {
		return r.Name
	}
	return r.Suite + ":" + r.Name
}
