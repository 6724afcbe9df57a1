package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// StandardLogger writes formatted entries to a single writer.
type StandardLogger struct {
	mu        *sync.Mutex
	level     *Level
	output    io.Writer
	formatter Formatter
	fields    []Field
}

// Option configures a StandardLogger during construction.
type Option func(*StandardLogger)

// New constructs a StandardLogger writing text to stderr at info level.
func New(options ...Option) *StandardLogger {
	level := LevelInfo
	log := &StandardLogger{
		mu:     &sync.Mutex{},
		level:  &level,
		output: os.Stderr,
	}

	for _, opt := range options {
		if opt != nil {
			opt(log)
		}
	}

	if log.formatter == nil {
		log.formatter = &TextFormatter{Output: log.output}
	}

	return log
}

// WithLevel sets the minimum Level that will be emitted.
func WithLevel(level Level) Option {
	return func(l *StandardLogger) {
		*l.level = level
	}
}

// WithOutput redirects log output to w.
func WithOutput(w io.Writer) Option {
	return func(l *StandardLogger) {
		l.output = w
		if tf, ok := l.formatter.(*TextFormatter); ok {
			tf.Output = w
		}
	}
}

// WithFormatter overrides the formatter used to render entries.
func WithFormatter(formatter Formatter) Option {
	return func(l *StandardLogger) {
		l.formatter = formatter
	}
}

// Debug emits a debug level entry.
func (l *StandardLogger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Info emits an info level entry.
func (l *StandardLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warn emits a warn level entry.
func (l *StandardLogger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Error emits an error level entry.
func (l *StandardLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...), nil)
}

// DebugContext emits a debug level structured entry.
func (l *StandardLogger) DebugContext(_ context.Context, msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields)
}

// InfoContext emits an info level structured entry.
func (l *StandardLogger) InfoContext(_ context.Context, msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields)
}

// WarnContext emits a warn level structured entry.
func (l *StandardLogger) WarnContext(_ context.Context, msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields)
}

// ErrorContext emits an error level structured entry.
func (l *StandardLogger) ErrorContext(_ context.Context, msg string, fields ...Field) {
	l.log(LevelError, msg, fields)
}

// With derives a logger that shares output and level but adds fields.
func (l *StandardLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	return &StandardLogger{
		mu:        l.mu,
		level:     l.level,
		output:    l.output,
		formatter: l.formatter,
		fields:    append(append([]Field{}, l.fields...), fields...),
	}
}

// SetLevel adjusts the minimum level for this logger and all derived loggers.
func (l *StandardLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.level = level
}

// GetLevel returns the current minimum level.
func (l *StandardLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *l.level
}

func (l *StandardLogger) log(level Level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < *l.level {
		return
	}

	entry := &Entry{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Fields:  append(append([]Field{}, l.fields...), fields...),
	}

	data, err := l.formatter.Format(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to format log entry: %v\n", err)
		return
	}
	if _, err := l.output.Write(data); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}
