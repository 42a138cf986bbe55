package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/fatih/color"
)

var (
	mu       sync.Mutex
	file     *os.File
	stderr   io.Writer = os.Stderr
	useColor bool
	debug    bool
	level    = log.InfoLevel
)

// SetInteractive turns colors and ANSI control characters on or off.
func SetInteractive(interactive bool) {
	// Disable Unicode and ANSI control characters on Windows.
	if runtime.GOOS == "windows" {
		interactive = false
	}

	useSpinner = interactive
	useColor = interactive
	color.NoColor = !interactive
}

// SetDebug turns debug logging to STDERR on or off.
//
// The log file always writes debug-level entries.
func SetDebug(on bool) {
	// This sets the `level` variable rather than calling `log.SetLevel`, because
	// calling `log.SetLevel` filters entries by level _before_ they reach the
	// handler.
	mu.Lock()
	defer mu.Unlock()
	debug = on
	if on {
		level = log.DebugLevel
	} else {
		level = log.InfoLevel
	}
}

// File returns the log file name.
func File() string {
	if file == nil {
		return ""
	}
	return file.Name()
}

var levelColors = map[log.Level]func(format string, a ...interface{}) string{
	log.DebugLevel: color.HiBlackString,
	log.InfoLevel:  color.BlueString,
	log.WarnLevel:  color.YellowString,
	log.ErrorLevel: color.RedString,
	log.FatalLevel: color.HiRedString,
}

// Handler handles log entries. It multiplexes them into two outputs, writing
// human-readable messages to STDERR and machine-readable entries to a log file.
func Handler(entry *log.Entry) error {
	mu.Lock()
	defer mu.Unlock()

	if entry.Level >= level {
		fmt.Fprintln(stderr, format(entry))
	}

	if file == nil {
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, byte('\n'))
	_, err = file.Write(data)
	return err
}

func format(entry *log.Entry) string {
	name := strings.ToUpper(entry.Level.String())
	if useColor {
		if c, ok := levelColors[entry.Level]; ok {
			name = c("%s", name)
		}
	}
	msg := name + " " + entry.Message
	if !debug || len(entry.Fields) == 0 {
		return msg
	}

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		msg += fmt.Sprintf(" %s=%v", k, entry.Fields[k])
	}
	return msg
}
