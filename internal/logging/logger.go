// Package logging provides categorized file-based logging for phasegen.
// Each category writes to its own file under <dir>/logs. Logging is a
// silent no-op until Initialize enables it, so library code can log
// unconditionally without forcing output on embedders.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category identifies a logging subsystem.
type Category string

const (
	CategoryRun     Category = "run"     // Runner lifecycle, per-run summaries
	CategoryGraph   Category = "graph"   // Graph construction and wiring
	CategoryPool    Category = "pool"    // Slot declaration and resolution
	CategoryModules Category = "modules" // Module construction and invocation
	CategoryStore   Category = "store"   // Run-record persistence
)

// Log levels, lowest first.
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu       sync.RWMutex
	loggers  = make(map[Category]*Logger)
	logsDir  string
	enabled  bool
	logLevel = LevelInfo
)

// Logger writes to a single category file. A Logger with no backing file
// discards everything.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

// Initialize enables logging under dir/logs at the given level
// ("debug", "info", "warn", "error"). Call once at startup.
func Initialize(dir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if dir == "" {
		return fmt.Errorf("logging: directory required")
	}

	logsDir = filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("logging: create %s: %w", logsDir, err)
	}

	switch level {
	case "debug":
		logLevel = LevelDebug
	case "info", "":
		logLevel = LevelInfo
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		return fmt.Errorf("logging: unknown level %q", level)
	}

	enabled = true
	return nil
}

// Enabled reports whether Initialize has been called successfully.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Get returns (or creates) the logger for a category. Before Initialize,
// or if the log file cannot be opened, it returns a no-op logger.
func Get(category Category) *Logger {
	mu.RLock()
	if !enabled {
		mu.RUnlock()
		return &Logger{category: category}
	}
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open %s: %v\n", path, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

// CloseAll closes every open log file. Call at shutdown.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
	enabled = false
}

func (l *Logger) printf(level int, tag, format string, args ...any) {
	if l.logger == nil || logLevel > level {
		return
	}
	l.logger.Printf("[%s] %s", tag, fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...any) { l.printf(LevelDebug, "DEBUG", format, args...) }

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) { l.printf(LevelInfo, "INFO", format, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) { l.printf(LevelWarn, "WARN", format, args...) }

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) { l.printf(LevelError, "ERROR", format, args...) }

// Timer measures an operation and logs its duration on Stop.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation in a category.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop logs the elapsed time at debug level and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// Convenience helpers per category; no-ops when logging is disabled.

// Run logs to the run category.
func Run(format string, args ...any) { Get(CategoryRun).Info(format, args...) }

// RunDebug logs debug to the run category.
func RunDebug(format string, args ...any) { Get(CategoryRun).Debug(format, args...) }

// Graph logs to the graph category.
func Graph(format string, args ...any) { Get(CategoryGraph).Info(format, args...) }

// GraphDebug logs debug to the graph category.
func GraphDebug(format string, args ...any) { Get(CategoryGraph).Debug(format, args...) }

// PoolDebug logs debug to the pool category.
func PoolDebug(format string, args ...any) { Get(CategoryPool).Debug(format, args...) }

// Modules logs to the modules category.
func Modules(format string, args ...any) { Get(CategoryModules).Info(format, args...) }

// ModulesDebug logs debug to the modules category.
func ModulesDebug(format string, args ...any) { Get(CategoryModules).Debug(format, args...) }

// Store logs to the store category.
func Store(format string, args ...any) { Get(CategoryStore).Info(format, args...) }

// StoreDebug logs debug to the store category.
func StoreDebug(format string, args ...any) { Get(CategoryStore).Debug(format, args...) }
