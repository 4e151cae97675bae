package common

import (
	"io"
	"log/slog"
	"os"
)

// LoggerOptions controls where run logs go.
type LoggerOptions struct {
	// LogFile, when non-empty, receives a copy of every record. The file is
	// truncated at the start of each run.
	LogFile string
	// Quiet suppresses the stderr stream; file logging is unaffected.
	Quiet bool
	// Debug lowers the handler level to slog.LevelDebug.
	Debug bool
}

// NewLogger builds the process logger. It returns a cleanup function that
// closes the log file, if one was opened.
func NewLogger(opts LoggerOptions) (*slog.Logger, func(), error) {
	var writers []io.Writer
	cleanup := func() {}

	if !opts.Quiet {
		writers = append(writers, os.Stderr)
	}
	if opts.LogFile != "" {
		f, err := os.Create(opts.LogFile)
		if err != nil {
			return nil, nil, ConfigurationErrorf("cannot open log file %q: %v", opts.LogFile, err)
		}
		writers = append(writers, f)
		cleanup = func() { _ = f.Close() }
	}

	var w io.Writer = io.Discard
	if len(writers) > 0 {
		w = io.MultiWriter(writers...)
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger, cleanup, nil
}
