package display

import (
	"github.com/briandowns/spinner"
)

var (
	useSpinner bool
	s          *spinner.Spinner
)

// Progress shows message next to a spinner while fn runs. The spinner only
// appears on interactive terminals.
func Progress(message string, fn func() error) error {
	if useSpinner {
		s.Suffix = " " + message
		s.Restart()
		defer s.Stop()
	}
	return fn()
}

// ClearProgress stops the spinner if one is running.
func ClearProgress() {
	if useSpinner {
		s.Stop()
	}
}
