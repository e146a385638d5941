// ABOUTME: Global slog setup fanning out to stderr and a JSON log file.
// ABOUTME: Stderr only shows warnings unless verbose output is requested.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

// Log is the global logger instance
var Log = slog.Default()

// Options controls where and how much is logged.
type Options struct {
	Level   slog.Level
	File    string
	Verbose bool
	Stderr  io.Writer
}

// Init installs the global logger and returns a func that closes the log
// file. A log file that cannot be opened is reported on stderr and skipped.
func Init(opts Options) func() error {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	stderrLevel := slog.LevelWarn
	if opts.Verbose {
		stderrLevel = opts.Level
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: stderrLevel}),
	}

	closeFn := func() error { return nil }
	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err != nil {
			fmt.Fprintf(stderr, "warning: %v\n", err)
		} else {
			handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
			closeFn = f.Close
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
	return closeFn
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
