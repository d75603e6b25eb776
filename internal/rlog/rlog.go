// Package rlog provides the shared application logger.
package rlog

import (
	"os"

	clog "github.com/charmbracelet/log"
)

// Log is the shared logger for the terminal/editor runtime. It writes to
// stderr so it never interleaves with the alternate-screen TUI.
var Log = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "rat",
})

// SetLevel adjusts the minimum level reported, e.g. from a --debug flag.
func SetLevel(debug bool) {
	if debug {
		Log.SetLevel(clog.DebugLevel)
		return
	}
	Log.SetLevel(clog.WarnLevel)
}
