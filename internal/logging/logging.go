// Package logging wires the process-wide structured logger. Output
// goes to stderr so piped command output stays clean; color is enabled
// only when stderr is a terminal.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup installs the default slog logger. verbose lowers the level to
// debug.
func Setup(verbose bool) {
	w := os.Stderr

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isatty.IsTerminal(w.Fd()),
		}),
	))
}
