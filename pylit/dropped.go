package pylit

import (
	"fmt"
	"sort"
)

// Dropped lists the parts of src that Format does not write back: comments
// and top-level statements other than the assignment of a dict to variable.
// Each entry names the line it starts on. Dropped returns nil for a module that
// only assigns variable.
func Dropped(src []byte, variable string) ([]string, error) {
	l := newLexer(string(src))
	want := []string{variable, "=", "{"}
	matched := 0
	depth := 0
	statements := make(map[int]bool)

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokEOF {
			break
		}

		opens, closes := false, false
		if tok.kind == tokPunct {
			switch tok.text {
			case "{", "[", "(":
				opens = true
			case "}", "]", ")":
				closes = true
			}
		}
		if closes {
			depth--
		}
		top := depth == 0
		if opens {
			depth++
		}
		if !top {
			continue
		}

		switch {
		case matched < len(want) && tok.text == want[matched] && (matched == 0) == (tok.kind == tokName):
			matched++
		case matched == len(want) && closes && tok.text == "}":
			matched++
		default:
			if matched < len(want) {
				matched = 0
			}
			statements[tok.line] = true
		}
	}

	var dropped []string
	lines := make([]int, 0, len(statements))
	for line := range statements {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	for _, line := range lines {
		dropped = append(dropped, fmt.Sprintf("line %d: statement", line))
	}
	for _, line := range l.comments {
		dropped = append(dropped, fmt.Sprintf("line %d: comment", line))
	}
	return dropped, nil
}
