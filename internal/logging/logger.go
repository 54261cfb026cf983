// Package logging provides config-driven categorized logging for gridmind.
// Each category gets its own zap logger. When debug mode is off every
// category logger is a no-op, so the simulation core can log freely.
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
	CategoryBoot       Category = "boot"       // Startup, config
	CategoryKB         Category = "kb"         // Fact store mutations
	CategoryPerception Category = "perception" // Percept -> fact translation
	CategoryTopology   Category = "topology"   // Junction/tunnel inference
	CategoryPath       Category = "path"       // BFS planning
	CategoryBrain      Category = "brain"      // Goal selection per archetype
	CategorySim        Category = "sim"        // Episode loop, bench
	CategoryWorld      Category = "world"      // Environment rules
	CategoryMirror     Category = "mirror"     // Mangle export and queries
)

// AllCategories lists every category in a stable order.
func AllCategories() []Category {
	return []Category{
		CategoryBoot, CategoryKB, CategoryPerception, CategoryTopology,
		CategoryPath, CategoryBrain, CategorySim, CategoryWorld, CategoryMirror,
	}
}

// Options mirrors config.LoggingConfig to avoid an import cycle.
type Options struct {
	DebugMode  bool
	Level      string
	JSONFormat bool
	// Dir receives one file per category. Empty means stderr.
	Dir        string
	Categories map[string]bool
}

// Logger is a category-scoped printf-style logger.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	loggers   = make(map[Category]*Logger)
	files     []*os.File
	loggersMu sync.RWMutex
	opts      Options
	level     zapcore.Level = zapcore.InfoLevel
	base      *zap.Logger
	optsMu    sync.RWMutex
)

// Initialize applies logging options. It may be called again to reconfigure;
// existing category loggers are closed first.
func Initialize(o Options) error {
	CloseAll()

	lvl := zapcore.InfoLevel
	if o.Level != "" {
		parsed, err := zapcore.ParseLevel(o.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", o.Level, err)
		}
		lvl = parsed
	}

	optsMu.Lock()
	opts = o
	level = lvl
	optsMu.Unlock()

	if !o.DebugMode {
		return nil
	}
	if o.Dir != "" {
		if err := os.MkdirAll(o.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}

	Boot("logging initialized: level=%s json=%v dir=%q", lvl, o.JSONFormat, o.Dir)
	return nil
}

// SetBase routes every enabled category to l instead of files. Tests pass a
// zaptest logger here; nil restores file output.
func SetBase(l *zap.Logger) {
	CloseAll()
	optsMu.Lock()
	base = l
	optsMu.Unlock()
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	optsMu.RLock()
	defer optsMu.RUnlock()

	if !opts.DebugMode {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	enabled, exists := opts.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

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

	l := &Logger{category: category, sugar: newCategoryLogger(category).Sugar()}
	loggers[category] = l
	return l
}

func newCategoryLogger(category Category) *zap.Logger {
	optsMu.RLock()
	o, lvl, b := opts, level, base
	optsMu.RUnlock()

	if b != nil {
		return b.Named(string(category))
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if o.JSONFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if o.Dir != "" {
		date := time.Now().Format("2006-01-02")
		path := filepath.Join(o.Dir, fmt.Sprintf("%s_%s.log", date, category))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", path, err)
			return zap.NewNop()
		}
		files = append(files, f)
		sink = zapcore.AddSync(f)
	}

	core := zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(lvl))
	return zap.New(core).Named(string(category))
}

// Category returns the logger's category.
func (l *Logger) Category() Category {
	return l.category
}

// Zap exposes the underlying sugared logger for structured fields.
func (l *Logger) Zap() *zap.SugaredLogger {
	return l.sugar
}

// With returns a child logger carrying key/value context.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// CloseAll flushes and closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		_ = l.sugar.Sync()
	}
	for _, f := range files {
		f.Close()
	}
	files = nil
	loggers = make(map[Category]*Logger)
}

// WithEpisode returns a category logger tagged with an episode id.
func WithEpisode(category Category, episodeID string) *Logger {
	return Get(category).With("episode", episodeID)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

func Boot(format string, args ...interface{})      { Get(CategoryBoot).Info(format, args...) }
func BootDebug(format string, args ...interface{}) { Get(CategoryBoot).Debug(format, args...) }
func BootWarn(format string, args ...interface{})  { Get(CategoryBoot).Warn(format, args...) }

func KB(format string, args ...interface{})      { Get(CategoryKB).Info(format, args...) }
func KBDebug(format string, args ...interface{}) { Get(CategoryKB).Debug(format, args...) }

func Perception(format string, args ...interface{}) { Get(CategoryPerception).Info(format, args...) }
func PerceptionDebug(format string, args ...interface{}) {
	Get(CategoryPerception).Debug(format, args...)
}

func TopologyDebug(format string, args ...interface{}) { Get(CategoryTopology).Debug(format, args...) }

func Path(format string, args ...interface{})      { Get(CategoryPath).Info(format, args...) }
func PathDebug(format string, args ...interface{}) { Get(CategoryPath).Debug(format, args...) }

func Brain(format string, args ...interface{})      { Get(CategoryBrain).Info(format, args...) }
func BrainDebug(format string, args ...interface{}) { Get(CategoryBrain).Debug(format, args...) }

func Sim(format string, args ...interface{})      { Get(CategorySim).Info(format, args...) }
func SimDebug(format string, args ...interface{}) { Get(CategorySim).Debug(format, args...) }
func SimWarn(format string, args ...interface{})  { Get(CategorySim).Warn(format, args...) }

func World(format string, args ...interface{})      { Get(CategoryWorld).Info(format, args...) }
func WorldDebug(format string, args ...interface{}) { Get(CategoryWorld).Debug(format, args...) }

func Mirror(format string, args ...interface{})      { Get(CategoryMirror).Info(format, args...) }
func MirrorDebug(format string, args ...interface{}) { Get(CategoryMirror).Debug(format, args...) }
func MirrorError(format string, args ...interface{}) { Get(CategoryMirror).Error(format, args...) }

// =============================================================================
// TIMING HELPERS - For performance logging
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
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
