package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes leveled, printf-style log lines to the terminal and/or a
// rotated log file
type Logger struct {
	mu     *sync.Mutex
	writer io.Writer

	Name       string
	Level      Level
	TimeFormat string
	JSON       bool
}

// Options configures New
type Options struct {
	Name       string
	Level      Level
	File       string // rotated log file; empty disables file output
	NoTerminal bool   // do not write to stderr (the TUI owns the terminal)
	JSON       bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Logger    string `json:"logger,omitempty"`
	Message   string `json:"message"`
}

// New creates a logger from opts
func New(opts Options) *Logger {
	var writers []io.Writer

	if !opts.NoTerminal {
		writers = append(writers, os.Stderr)
	}

	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    withDefault(opts.MaxSizeMB, 16),
			MaxBackups: withDefault(opts.MaxBackups, 3),
			MaxAge:     withDefault(opts.MaxAgeDays, 30),
		})
	}

	w := io.Discard
	if len(writers) > 0 {
		w = io.MultiWriter(writers...)
	}

	return &Logger{
		mu:         &sync.Mutex{},
		writer:     w,
		Name:       opts.Name,
		Level:      opts.Level,
		TimeFormat: "2006-01-02 15:04:05",
		JSON:       opts.JSON,
	}
}

// NewWriter creates a logger writing to w
func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		mu:         &sync.Mutex{},
		writer:     w,
		Level:      level,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWriter(io.Discard, LevelOff)
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if l == nil || level < l.Level || l.Level == LevelOff {
		return
	}

	timestamp := time.Now().Format(l.TimeFormat)
	formatted := fmt.Sprintf(msg, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.JSON {
		b, _ := json.Marshal(entry{
			Timestamp: timestamp,
			Level:     level.String(),
			Logger:    l.Name,
			Message:   formatted,
		})
		fmt.Fprintf(l.writer, "%s\n", b)
		return
	}

	prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
	if l.Name != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, l.Name)
	}
	fmt.Fprintf(l.writer, "%s %s\n", prefix, formatted)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(LevelWarn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args...)
}

// Named returns a child logger sharing the same writer
func (l *Logger) Named(name string) *Logger {
	if l == nil {
		return nil
	}
	child := *l
	if l.Name != "" {
		child.Name = l.Name + "/" + name
	} else {
		child.Name = name
	}
	return &child
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
