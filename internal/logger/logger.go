// Package logger provides structured logging with file rotation and
// optional syslog forwarding for the platform health daemon.
package logger

import (
	"io"
	"log/syslog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds the logger configuration.
type Config struct {
	Level      string `json:"Level"`
	FilePath   string `json:"FilePath"`
	MaxSizeMB  int    `json:"MaxSizeMB"`
	MaxBackups int    `json:"MaxBackups"`
	MaxAgeDays int    `json:"MaxAgeDays"`
	Compress   bool   `json:"Compress"`
	Console    bool   `json:"Console"`
	Syslog     bool   `json:"Syslog"`
	SyslogTag  string `json:"SyslogTag"`
}

// DefaultConfig returns sensible defaults for logging.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		FilePath:   defaultLogPath(),
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 30,
		Compress:   true,
		Console:    false,
		Syslog:     true,
		SyslogTag:  progName(),
	}
}

// progName returns the base name of the running binary.
func progName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "accton-hwmond"
	}
	return filepath.Base(os.Args[0])
}

// defaultLogPath derives the log file path from the program name,
// matching the platform convention of one log file per monitor binary.
func defaultLogPath() string {
	return filepath.Join("/var/log", progName()+".log")
}

var (
	globalLogger   zerolog.Logger
	prevFileWriter io.Closer // previous file writer to close on re-init
)

// Init initializes the global logger with the given configuration.
// Failure here is the only fatal error in the daemon; everything past
// startup is logged and swallowed.
func Init(cfg Config) error {
	level, err := zerolog.ParseLevel(normalizeLevel(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	// Close the previous file writer from a prior Init call (hot reload).
	if prevFileWriter != nil {
		prevFileWriter.Close()
		prevFileWriter = nil
	}

	var writers []io.Writer

	// File output with rotation, rendered in the platform text format.
	if cfg.FilePath != "" {
		dir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}

		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		prevFileWriter = fileWriter
		writers = append(writers, NewPlatformFormatWriter(fileWriter))
	}

	// Console output for interactive/debug runs.
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	// Forward to the system log facility. The appliance management stack
	// reads fault alarms from syslog, so this stays on even when a log
	// file is configured.
	if cfg.Syslog {
		tag := cfg.SyslogTag
		if tag == "" {
			tag = progName()
		}
		if sw, err := syslog.New(syslog.LOG_INFO|syslog.LOG_DAEMON, tag); err == nil {
			writers = append(writers, zerolog.SyslogLevelWriter(sw))
		}
		// A missing /dev/log is not fatal; the file writer still works.
	}

	// Default to stdout if no writers configured.
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	var output io.Writer
	if len(writers) == 1 {
		output = writers[0]
	} else {
		output = zerolog.MultiLevelWriter(writers...)
	}

	globalLogger = zerolog.New(output).With().Timestamp().Caller().Logger()
	return nil
}

// normalizeLevel maps the platform level names onto zerolog's.
func normalizeLevel(level string) string {
	switch strings.ToLower(level) {
	case "warning":
		return "warn"
	case "":
		return "info"
	default:
		return strings.ToLower(level)
	}
}

// Logger returns the global logger instance.
func Logger() *zerolog.Logger {
	return &globalLogger
}

// Debug logs a debug message.
func Debug() *zerolog.Event {
	return globalLogger.Debug()
}

// Info logs an info message.
func Info() *zerolog.Event {
	return globalLogger.Info()
}

// Warn logs a warning message.
func Warn() *zerolog.Event {
	return globalLogger.Warn()
}

// Error logs an error message.
func Error() *zerolog.Event {
	return globalLogger.Error()
}

// Fatal logs a fatal message and exits.
func Fatal() *zerolog.Event {
	return globalLogger.Fatal()
}

// WithComponent returns a logger with component field.
func WithComponent(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}
