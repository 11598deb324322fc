package logger

import (
	"io"
	"strings"
)

// Logger is the unified logging interface used by all components.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	Sync() error     // force flush
	Shutdown() error // graceful close
}

// Level is the log level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a string into a Level (case-insensitive)
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo // default to info
	}
}

// Format is the log output format.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	default:
		return "text"
	}
}

// ParseFormat parses a string into a Format (case-insensitive)
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Config is the logger configuration.
type Config struct {
	Level  Level
	Format Format

	// Writer overrides the default stderr output, mainly for tests
	Writer io.Writer

	File FileConfig
}

// FileConfig configures the optional log file.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSizeMB  int  // per file, in MB
	MaxAgeDays int  // days to retain
	MaxBackups int  // rotated files to retain
	Compress   bool // compress rotated files
}
