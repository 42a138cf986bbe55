// Package display writes what mxsuite shows on the terminal: log lines on
// STDERR, a progress spinner and JSON documents on STDOUT. Every log entry is
// also appended to a debug log file.
package display

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/briandowns/spinner"
)

var stdout io.Writer = os.Stdout

func init() {
	s = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Writer = os.Stderr
	file = openLogFile()

	// Handler does the level filtering for STDERR; the log file keeps
	// debug entries too.
	log.SetLevel(log.DebugLevel)
	log.SetHandler(log.HandlerFunc(Handler))
}

func openLogFile() *os.File {
	f, err := ioutil.TempFile("", "mxsuite-log-")
	if err != nil {
		log.WithError(err).Warn("running without a debug log file")
		return nil
	}
	return f
}

// JSON writes data to STDOUT as an indented JSON document.
func JSON(data interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
