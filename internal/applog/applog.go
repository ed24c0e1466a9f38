// Package applog provides the module-wide logger, shared by the board,
// engine, and UCI packages so that "info string" diagnostics and search
// traces go through one configured backend.
package applog

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	logging "github.com/op/go-logging"
)

var (
	once    sync.Once
	backend logging.LeveledBackend
)

func initBackend() {
	raw := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortfunc} %{level:.4s} %{message}`,
	)
	formatted := logging.NewBackendFormatter(raw, format)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(logging.INFO, "")
	logging.SetBackend(backend)
}

// Get returns the named logger, creating the shared backend on first use.
func Get(name string) *logging.Logger {
	once.Do(initBackend)
	return logging.MustGetLogger(name)
}

// SetLevel adjusts the minimum level emitted by every logger sharing the
// backend. Valid names: "debug", "info", "warning", "error", "critical".
func SetLevel(name string) {
	once.Do(initBackend)
	lvl, err := logging.LogLevel(name)
	if err != nil {
		return
	}
	backend.SetLevel(lvl, "")
}

// Fatal logs a red, attention-grabbing error and terminates the process.
// Used for startup failures that leave the engine unable to run at all,
// such as a square whose magic-multiplier search never converges.
func Fatal(name, format string, args ...interface{}) {
	Get(name).Error(color.RedString(fmt.Sprintf(format, args...)))
	os.Exit(1)
}
