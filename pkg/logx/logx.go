package logx

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level represents the logging verbosity level
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	currentLevel atomic.Int32
	std          = log.New(os.Stderr, "", log.LstdFlags)
)

func init() {
	currentLevel.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that will be written
func SetLevel(l Level) {
	currentLevel.Store(int32(l))
}

func enabled(l Level) bool {
	return int32(l) >= currentLevel.Load()
}

func output(prefix, msg string) {
	std.Output(3, prefix+" "+msg)
}

// Debug logs a message at debug level
func Debug(msg string) {
	if enabled(LevelDebug) {
		output("[DEBUG]", msg)
	}
}

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...any) {
	if enabled(LevelDebug) {
		output("[DEBUG]", fmt.Sprintf(format, args...))
	}
}

// Info logs a message at info level
func Info(msg string) {
	if enabled(LevelInfo) {
		output("[INFO]", msg)
	}
}

// Infof logs a formatted message at info level
func Infof(format string, args ...any) {
	if enabled(LevelInfo) {
		output("[INFO]", fmt.Sprintf(format, args...))
	}
}

// Warn logs a message at warn level
func Warn(msg string) {
	if enabled(LevelWarn) {
		output("[WARN]", msg)
	}
}

// Warnf logs a formatted message at warn level
func Warnf(format string, args ...any) {
	if enabled(LevelWarn) {
		output("[WARN]", fmt.Sprintf(format, args...))
	}
}

// Error logs a message at error level
func Error(msg string) {
	if enabled(LevelError) {
		output("[ERROR]", msg)
	}
}

// Errorf logs a formatted message at error level
func Errorf(format string, args ...any) {
	if enabled(LevelError) {
		output("[ERROR]", fmt.Sprintf(format, args...))
	}
}

// Fatal logs a message and exits the process
func Fatal(msg string) {
	output("[FATAL]", msg)
	os.Exit(1)
}

// Fatalf logs a formatted message and exits the process
func Fatalf(format string, args ...any) {
	output("[FATAL]", fmt.Sprintf(format, args...))
	os.Exit(1)
}
