// Package logging provides config-driven categorized file logging for wtf.
// Logs are written as JSON lines under the user cache directory, one file per
// category and day. Logging is controlled by debug_mode in wtf.json - when false,
// every logger is a no-op and nothing touches the disk.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot       Category = "boot"       // Startup, flag handling
	CategoryConfig     Category = "config"     // Config discovery, load, save
	CategoryTranscript Category = "transcript" // Transcript parsing pipeline
	CategoryWatch      Category = "watch"      // Follow-mode file watching
	CategoryAPI        Category = "api"        // LLM API calls
	CategoryTactile    Category = "tactile"    // Execution of suggested commands
)

// Options mirrors the logging fields of config.Config to avoid an import cycle.
type Options struct {
	DebugMode bool
	Level     string // debug, info, warn, error
	Dir       string // defaults to DefaultDir()
}

// Logger is a category-scoped sugared zap logger.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex

	opts   Options
	optsMu sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	// core, when set, replaces the per-category files (tests, --verbose).
	core zapcore.Core
)

// DefaultDir returns <user cache dir>/withefuck/logs.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "withefuck", "logs")
}

// Initialize applies logging options. It should be called once at startup after
// the config is loaded; calling it again replaces the previous settings.
func Initialize(o Options) error {
	CloseAll()

	if o.Dir == "" {
		o.Dir = DefaultDir()
	}
	lvl, err := ParseLevel(o.Level)
	if err != nil {
		return err
	}

	optsMu.Lock()
	opts = o
	level.SetLevel(lvl)
	optsMu.Unlock()

	if !o.DebugMode {
		return nil // Silent no-op in production mode
	}
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("=== wtf logging initialized ===")
	boot.Info("Logs directory: %s", o.Dir)
	boot.Info("Log level: %s", lvl)
	return nil
}

// UseCore routes every category to the given core regardless of debug mode.
// Passing nil restores file output.
func UseCore(c zapcore.Core) {
	CloseAll()
	optsMu.Lock()
	core = c
	optsMu.Unlock()
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	switch name {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
}

// IsDebugMode returns whether file logging is enabled
func IsDebugMode() bool {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts.DebugMode
}

// Get returns (or creates) the logger for a category. It is a no-op logger
// unless debug mode is on or a core was installed with UseCore.
func Get(category Category) *Logger {
	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	l := newLogger(category)
	loggers[category] = l
	return l
}

func newLogger(category Category) *Logger {
	optsMu.RLock()
	o, c := opts, core
	optsMu.RUnlock()

	if c != nil {
		return &Logger{
			category: category,
			sugar:    zap.New(c).Named(string(category)).Sugar(),
		}
	}
	if !o.DebugMode {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(o.Dir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", path, err)
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level)

	return &Logger{
		category: category,
		file:     file,
		sugar:    zap.New(fileCore).Named(string(category)).Sugar(),
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// With returns a child logger carrying structured key/value pairs.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// CloseAll flushes and closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		_ = l.sugar.Sync()
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) { Get(CategoryBoot).Debug(format, args...) }

// Config logs to the config category
func Config(format string, args ...interface{}) { Get(CategoryConfig).Info(format, args...) }

// ConfigDebug logs debug to the config category
func ConfigDebug(format string, args ...interface{}) { Get(CategoryConfig).Debug(format, args...) }

// ConfigWarn logs a warning to the config category
func ConfigWarn(format string, args ...interface{}) { Get(CategoryConfig).Warn(format, args...) }

// Transcript logs to the transcript category
func Transcript(format string, args ...interface{}) { Get(CategoryTranscript).Info(format, args...) }

// TranscriptDebug logs debug to the transcript category
func TranscriptDebug(format string, args ...interface{}) {
	Get(CategoryTranscript).Debug(format, args...)
}

// TranscriptWarn logs a warning to the transcript category
func TranscriptWarn(format string, args ...interface{}) {
	Get(CategoryTranscript).Warn(format, args...)
}

// Watch logs to the watch category
func Watch(format string, args ...interface{}) { Get(CategoryWatch).Info(format, args...) }

// WatchDebug logs debug to the watch category
func WatchDebug(format string, args ...interface{}) { Get(CategoryWatch).Debug(format, args...) }

// WatchError logs an error to the watch category
func WatchError(format string, args ...interface{}) { Get(CategoryWatch).Error(format, args...) }

// API logs to the api category
func API(format string, args ...interface{}) { Get(CategoryAPI).Info(format, args...) }

// APIDebug logs debug to the api category
func APIDebug(format string, args ...interface{}) { Get(CategoryAPI).Debug(format, args...) }

// APIWarn logs a warning to the api category
func APIWarn(format string, args ...interface{}) { Get(CategoryAPI).Warn(format, args...) }

// APIError logs an error to the api category
func APIError(format string, args ...interface{}) { Get(CategoryAPI).Error(format, args...) }

// Tactile logs to the tactile category
func Tactile(format string, args ...interface{}) { Get(CategoryTactile).Info(format, args...) }

// TactileDebug logs debug to the tactile category
func TactileDebug(format string, args ...interface{}) { Get(CategoryTactile).Debug(format, args...) }

// TactileError logs an error to the tactile category
func TactileError(format string, args ...interface{}) { Get(CategoryTactile).Error(format, args...) }

// =============================================================================
// REQUEST ID TRACING
// =============================================================================

// RequestLogger provides request-scoped logging with a correlation ID
type RequestLogger struct {
	*Logger
	requestID string
}

// WithRequestID creates a request-scoped logger
func WithRequestID(category Category, requestID string) *RequestLogger {
	return &RequestLogger{
		Logger:    Get(category).With("req", requestID),
		requestID: requestID,
	}
}

// RequestID returns the correlation ID.
func (r *RequestLogger) RequestID() string { return r.requestID }

// WithField adds a field to the request logger
func (r *RequestLogger) WithField(key string, value interface{}) *RequestLogger {
	return &RequestLogger{Logger: r.Logger.With(key, value), requestID: r.requestID}
}

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
