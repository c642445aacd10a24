// Package logger handles terminal and file logging. The file format,
// "[<timestamp> <LEVEL>] ::: <message>", doubles as the on-disk log
// format the parser package splits back into sections, so the marker
// and timestamp layout must not drift.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelQuiet // No output
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// timestampFormat matches the format emerge run logs have always used.
const timestampFormat = "02-Jan-06 15:04:05"

// runLogNameFormat names one run's log file, e.g. log_2023-08-09-12-00.
const runLogNameFormat = "2006-01-02-15-04"

// Logger handles application logging
type Logger struct {
	level      Level
	output     io.Writer
	fileOutput *os.File
	runLogPath string
	mu         sync.Mutex
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Default returns the default logger instance
func Default() *Logger {
	once.Do(func() {
		defaultLogger = &Logger{
			level:  LevelInfo,
			output: os.Stderr,
		}
	})
	return defaultLogger
}

// New returns a logger writing terminal output to w.
func New(w io.Writer) *Logger {
	return &Logger{
		level:  LevelInfo,
		output: w,
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetVerbose enables debug output
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.SetLevel(LevelDebug)
	}
}

// SetQuiet disables all output except errors
func (l *Logger) SetQuiet(quiet bool) {
	if quiet {
		l.SetLevel(LevelError)
	}
}

// OpenRunLog opens a fresh timestamped log file for one update run
// under dir, creating the directory when needed, and returns its path.
func (l *Logger) OpenRunLog(dir string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, "log_"+time.Now().Format(runLogNameFormat))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}

	if l.fileOutput != nil {
		l.fileOutput.Close()
	}
	l.fileOutput = f
	l.runLogPath = path
	return path, nil
}

// RunLogPath returns the path of the current run log, if one is open.
func (l *Logger) RunLogPath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.runLogPath
}

// Close closes the log file if open
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fileOutput != nil {
		l.fileOutput.Close()
		l.fileOutput = nil
	}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, args...)

	// Terminal output carries only the message.
	fmt.Fprint(l.output, msg+"\n")

	// The file line carries the parseable preamble and marker.
	if l.fileOutput != nil {
		timestamp := time.Now().Format(timestampFormat)
		fmt.Fprintf(l.fileOutput, "[%s %s] ::: %s\n", timestamp, levelNames[level], msg)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Package-level convenience functions
func Debug(format string, args ...interface{}) { Default().Debug(format, args...) }
func Info(format string, args ...interface{})  { Default().Info(format, args...) }
func Warn(format string, args ...interface{})  { Default().Warn(format, args...) }
func Error(format string, args ...interface{}) { Default().Error(format, args...) }
func SetVerbose(v bool)                        { Default().SetVerbose(v) }
func SetQuiet(q bool)                          { Default().SetQuiet(q) }
