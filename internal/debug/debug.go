// Package debug provides logging that is only enabled when the
// WAYLAND_DEBUG environment variable is set to a positive number.
package debug

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

var logger = log.New(io.Discard)

func init() {
	debugLevel, err := strconv.ParseInt(os.Getenv("WAYLAND_DEBUG"), 10, 0)
	if err != nil {
		return
	}
	if debugLevel > 0 {
		Enable(os.Stderr)
	}
}

// Enable turns debug logging on, writing to w.
func Enable(w io.Writer) {
	logger = log.NewWithOptions(w, log.Options{
		Prefix: "wlseat",
		Level:  log.DebugLevel,
	})
}

func Printf(str string, args ...any) {
	logger.Debugf(str, args...)
}

// Log writes a structured debug entry.
func Log(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}
