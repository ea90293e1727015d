// Package logging builds the per-subsystem loggers used across the engine.
// Output goes to an io.Writer (stderr by default) and, when a log file is
// configured, to a size-rotated file. The most recent lines are also kept in
// memory so an interactive surface can display them.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

const (
	defaultMaxLogFiles    = 3
	defaultMaxLogSizeKB   = 10 * 1024
	defaultMaxBufferLines = 500
)

// LogConfig configures a LogBackend.
type LogConfig struct {
	LogFile        string    // Rotated log file; empty disables file output
	DebugLevel     string    // "info", or per subsystem: "info,ENGN=debug"
	MaxLogFiles    int       // Rotated files kept
	MaxLogSizeKB   int64     // Size that triggers a rotation
	MaxBufferLines int       // Recent lines kept in memory
	Stdout         io.Writer // Console output; nil means os.Stderr, io.Discard silences it
}

// LogBackend creates subsystem loggers sharing one output.
type LogBackend struct {
	backend  *slog.Backend
	rotator  *rotator.Rotator
	defLevel slog.Level
	levels   map[string]slog.Level

	mtx     sync.Mutex
	loggers map[string]slog.Logger
	lines   []string
	maxBuf  int
	console io.Writer
}

// NewLogBackend creates the backend described by cfg.
func NewLogBackend(cfg LogConfig) (*LogBackend, error) {
	defLevel, levels, err := ParseDebugLevel(cfg.DebugLevel)
	if err != nil {
		return nil, err
	}

	lb := &LogBackend{
		defLevel: defLevel,
		levels:   levels,
		loggers:  make(map[string]slog.Logger),
		maxBuf:   cfg.MaxBufferLines,
		console:  cfg.Stdout,
	}
	if lb.maxBuf <= 0 {
		lb.maxBuf = defaultMaxBufferLines
	}
	if lb.console == nil {
		lb.console = os.Stderr
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		maxFiles := cfg.MaxLogFiles
		if maxFiles <= 0 {
			maxFiles = defaultMaxLogFiles
		}
		maxSize := cfg.MaxLogSizeKB
		if maxSize <= 0 {
			maxSize = defaultMaxLogSizeKB
		}
		r, err := rotator.New(cfg.LogFile, maxSize, false, maxFiles)
		if err != nil {
			return nil, fmt.Errorf("failed to create file rotator: %w", err)
		}
		lb.rotator = r
	}

	lb.backend = slog.NewBackend(lb)
	return lb, nil
}

// Write implements io.Writer for the slog backend.
func (lb *LogBackend) Write(b []byte) (int, error) {
	lb.mtx.Lock()
	defer lb.mtx.Unlock()

	lb.lines = append(lb.lines, strings.TrimRight(string(b), "\n"))
	if over := len(lb.lines) - lb.maxBuf; over > 0 {
		lb.lines = append(lb.lines[:0:0], lb.lines[over:]...)
	}
	if lb.console != nil {
		lb.console.Write(b)
	}
	if lb.rotator != nil {
		lb.rotator.Write(b)
	}
	return len(b), nil
}

// Logger returns the logger for subsystem, creating it on first use.
func (lb *LogBackend) Logger(subsystem string) slog.Logger {
	lb.mtx.Lock()
	defer lb.mtx.Unlock()

	if l, ok := lb.loggers[subsystem]; ok {
		return l
	}
	l := lb.backend.Logger(subsystem)
	level, ok := lb.levels[subsystem]
	if !ok {
		level = lb.defLevel
	}
	l.SetLevel(level)
	lb.loggers[subsystem] = l
	return l
}

// LastLines returns up to n of the most recent log lines, oldest first.
func (lb *LogBackend) LastLines(n int) []string {
	lb.mtx.Lock()
	defer lb.mtx.Unlock()

	if n <= 0 || n > len(lb.lines) {
		n = len(lb.lines)
	}
	return append([]string(nil), lb.lines[len(lb.lines)-n:]...)
}

// SetConsole redirects console output; nil disables it. Used by interactive
// surfaces that own the terminal.
func (lb *LogBackend) SetConsole(w io.Writer) {
	lb.mtx.Lock()
	lb.console = w
	lb.mtx.Unlock()
}

// Close flushes and closes the log file.
func (lb *LogBackend) Close() error {
	lb.mtx.Lock()
	defer lb.mtx.Unlock()
	if lb.rotator == nil {
		return nil
	}
	err := lb.rotator.Close()
	lb.rotator = nil
	return err
}

// ParseDebugLevel parses a comma separated level spec. A bare level sets the
// default; SUBSYS=level entries override single subsystems.
func ParseDebugLevel(spec string) (slog.Level, map[string]slog.Level, error) {
	def := slog.LevelInfo
	levels := make(map[string]slog.Level)
	if strings.TrimSpace(spec) == "" {
		return def, levels, nil
	}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		subsys, lvl, found := strings.Cut(part, "=")
		if !found {
			l, ok := slog.LevelFromString(part)
			if !ok {
				return 0, nil, fmt.Errorf("invalid debug level %q", part)
			}
			def = l
			continue
		}
		l, ok := slog.LevelFromString(lvl)
		if !ok {
			return 0, nil, fmt.Errorf("invalid debug level %q for subsystem %s", lvl, subsys)
		}
		levels[strings.ToUpper(strings.TrimSpace(subsys))] = l
	}
	return def, levels, nil
}
