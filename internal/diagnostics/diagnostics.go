// Package diagnostics holds the single error representation the
// assembler ever produces, plus an independent verbose logger. The
// logger exists purely for observability: it never changes control
// flow or the bytes the assembler emits.
package diagnostics

import (
	"fmt"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// FatalError is every error pass 1 or pass 2 detects (lexical,
// syntactic, semantic) tagged with the 1-based source line it was
// detected on.
// There is no warning level and no recovery: the first FatalError
// aborts the process.
type FatalError struct {
	Line int
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// New wraps err with the line it was detected on.
func New(line int, err error) *FatalError {
	return &FatalError{Line: line, Err: err}
}

// NewLogger builds a debug/info/error logger fanned out with
// slog-multi to stderr and, when logFile is non-empty, an
// append-only file. It is independent of FatalError: verbose logging
// never replaces the stdout fatal-error contract.
func NewLogger(level slog.Level, logFile string) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{slog.NewTextHandler(os.Stderr, opts)}

	closer := func() error { return nil }

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewTextHandler(f, opts))
		closer = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// ParseLevel maps the config/CLI log-level string onto a slog.Level,
// defaulting to Info for anything unrecognized.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
