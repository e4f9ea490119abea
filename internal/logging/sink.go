package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// The engine logs through a process-wide sink. It is disabled until
// explicitly turned on and, once on, applies to every engine in the process.
var (
	enabled atomic.Bool
	sink    atomic.Pointer[slog.Logger]
)

func init() {
	sink.Store(New(slog.LevelInfo))
}

// Config configures the process-wide sink.
type Config struct {
	Enabled bool
	Level   slog.Level
	JSON    bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// Init replaces the sink's logger and sets the enable flag.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	sink.Store(NewWithWriter(out, cfg.Level, cfg.JSON))
	enabled.Store(cfg.Enabled)
}

// SetLogger replaces the sink's logger without touching the enable flag.
func SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = NewNop()
	}
	sink.Store(logger)
}

// Enable turns the sink on or off.
func Enable(on bool) {
	enabled.Store(on)
}

// Enabled reports whether the sink is on.
func Enabled() bool {
	return enabled.Load()
}

// Log writes msg at level if the sink is enabled. A non-nil err is attached under "err".
func Log(level slog.Level, msg string, err error, args ...any) {
	if !enabled.Load() {
		return
	}
	if err != nil {
		args = append(args, "err", err)
	}
	sink.Load().Log(context.Background(), level, msg, args...)
}
