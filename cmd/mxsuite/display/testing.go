package display

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
)

// Capture routes log entries into memory, for tests that assert on what was
// logged. The returned function puts Handler back.
func Capture() (*memory.Handler, func()) {
	h := memory.New()
	log.SetHandler(h)
	return h, func() { log.SetHandler(log.HandlerFunc(Handler)) }
}
