package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger: human-readable console output plus a
// dated log file under logsDir so every run leaves a durable trace. Workers
// share this logger; zerolog writers are safe for concurrent use.
func NewLogger(logsDir, level string, quiet bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if !quiet {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}

	if logsDir != "" {
		if err := EnsureDirs(logsDir); err == nil {
			logPath := filepath.Join(logsDir, fmt.Sprintf("collect_%s.log", time.Now().Format("20060102")))
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err == nil {
				writers = append(writers, f)
			} else {
				fmt.Fprintf(os.Stderr, "Warning: could not open log file %s: %v\n", logPath, err)
			}
		}
	}

	if len(writers) == 0 {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
