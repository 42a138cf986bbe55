package resolve

import (
	"fmt"
)

// A ResolutionError reports an import that could not be materialized at its
// pinned revision.
type ResolutionError struct {
	Import   string
	URL      string
	Revision string
	Cause    error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("could not resolve import %q at revision %s", e.Import, e.Revision)
	if e.URL != "" {
		msg += " from " + e.URL
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}
