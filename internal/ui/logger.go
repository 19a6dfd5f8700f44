package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelSuccess
	LevelWarn
	LevelError
)

// Logger provides leveled, colored progress logging.
// It writes to stderr so stdout carries only the collection dump.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	verbose  bool
	useColor bool
}

var defaultLogger = &Logger{
	out:      os.Stderr,
	useColor: os.Getenv("NO_COLOR") == "",
}

// SetVerbose enables or disables verbose (debug) output
func SetVerbose(v bool) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.verbose = v
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	return defaultLogger.verbose
}

// SetOutput sets the output writer
func SetOutput(w io.Writer) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.out = w
}

// SetColor enables or disables colored output
func SetColor(c bool) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.useColor = c
}

// ColorEnabled reports whether colored output is on
func ColorEnabled() bool {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	return defaultLogger.useColor
}

var levelLabels = map[LogLevel]struct {
	label string
	color string
}{
	LevelDebug:   {"[DEBUG]", Cyan},
	LevelInfo:    {"[INFO]", Blue},
	LevelSuccess: {"[OK]", Green},
	LevelWarn:    {"[WARN]", Yellow},
	LevelError:   {"[ERROR]", Red},
}

// levelPrefix returns the (optionally colored) prefix for a log level
func levelPrefix(level LogLevel, useColor bool) string {
	l, ok := levelLabels[level]
	if !ok {
		return "[LOG]"
	}
	if !useColor {
		return l.label
	}
	return Colorize(l.label, l.color)
}

func sprintf(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// log writes a timestamped message with the given level
func log(level LogLevel, format string, args ...any) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	if level == LevelDebug && !defaultLogger.verbose {
		return
	}

	timestamp := time.Now().Format("15:04:05")
	if defaultLogger.useColor {
		timestamp = Colorize(timestamp, Purple)
	}

	fmt.Fprintf(defaultLogger.out, "%s %s %s\n", timestamp, levelPrefix(level, defaultLogger.useColor), sprintf(format, args))
}

// marker writes an indented line led by a symbol
func marker(indent, symbol, color, format string, args []any) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	if defaultLogger.useColor {
		symbol = Colorize(symbol, color)
	}
	fmt.Fprintf(defaultLogger.out, "%s%s %s\n", indent, symbol, sprintf(format, args))
}

// Debug logs a debug message (only shown with --verbose)
func Debug(format string, args ...any) {
	log(LevelDebug, format, args...)
}

// Infof logs an informational message
func Infof(format string, args ...any) {
	log(LevelInfo, format, args...)
}

// Successf logs a success message
func Successf(format string, args ...any) {
	log(LevelSuccess, format, args...)
}

// Warnf logs a warning message
func Warnf(format string, args ...any) {
	log(LevelWarn, format, args...)
}

// Errorf logs an error message
func Errorf(format string, args ...any) {
	log(LevelError, format, args...)
}

// Step logs a bootstrap step with an arrow prefix
func Step(format string, args ...any) {
	marker("  ", "→", Cyan, format, args)
}

// SubStep logs a detail of the current step
func SubStep(format string, args ...any) {
	marker("    ", "•", Purple, format, args)
}

// Header logs a section header
func Header(format string, args ...any) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	msg := sprintf(format, args)
	if defaultLogger.useColor {
		msg = Colorize(msg, Bold+White) + " " + Colorize(strings.Repeat("─", 40), Purple)
	}
	fmt.Fprintf(defaultLogger.out, "\n%s\n", msg)
}
