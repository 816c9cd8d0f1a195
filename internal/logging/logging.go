// ABOUTME: Log file management for the session agent.
// ABOUTME: Creates the timestamped output file and serializes all writers.

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// logMu serializes every writer to the log file, including the heartbeat
// goroutine and arbitrary host threads calling LogMessage.
var logMu sync.Mutex

// Log owns the agent's output file and the slog.Logger layered on top of it.
// A nil *Log is valid and discards everything, so callers never need to
// guard log statements on whether file logging was enabled.
type Log struct {
	file   *os.File
	logger *slog.Logger
}

// Open creates the timestamped log file under folder. If the folder cannot
// be created the file is placed in the working directory instead.
func Open(folder string, debug bool) (*Log, error) {
	name := fmt.Sprintf("GSDK_output_%d.txt", time.Now().Unix())

	if folder != "" {
		if err := os.MkdirAll(folder, 0o755); err != nil {
			folder = ""
		}
	}

	f, err := os.Create(filepath.Join(folder, name))
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	l := &Log{file: f}
	l.logger = slog.New(slog.NewTextHandler(lockedWriter{f}, &slog.HandlerOptions{Level: level}))
	return l, nil
}

// Discard returns a Log that writes nothing. Used when the configuration
// source disables file logging.
func Discard(debug bool) *Log {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return &Log{logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level}))}
}

// Logger returns the structured logger backed by the log file.
func (l *Log) Logger() *slog.Logger {
	if l == nil || l.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.logger
}

// Line writes one raw line to the log file and flushes it immediately.
func (l *Log) Line(message string) {
	if l == nil || l.file == nil {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()

	fmt.Fprintln(l.file, message)
	l.file.Sync()
}

// Close closes the underlying file. Safe on a nil or discard Log.
func (l *Log) Close() {
	if l == nil || l.file == nil {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()

	l.file.Close()
	l.file = nil
}

// lockedWriter routes slog output through the shared log mutex so structured
// records and raw Line writes never interleave mid-line.
type lockedWriter struct {
	f *os.File
}

func (w lockedWriter) Write(p []byte) (int, error) {
	logMu.Lock()
	defer logMu.Unlock()

	n, err := w.f.Write(p)
	if err == nil {
		w.f.Sync()
	}
	return n, err
}
