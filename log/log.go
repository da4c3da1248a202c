// Package log is a thin facade over zap used throughout tracefilter.
package log

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	Level  = zapcore.Level
	Field  = zap.Field
	Option = zap.Option
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Bool     = zap.Bool
	Duration = zap.Duration
	Any      = zap.Any

	WithCaller    = zap.WithCaller
	AddCallerSkip = zap.AddCallerSkip
)

func ErrorField(err error) Field {
	return zap.Error(err)
}

type Logger struct {
	l      *zap.Logger
	level  zap.AtomicLevel
	closer io.Closer
}

// New creates a logger writing JSON lines to out.
func New(out io.Writer, level Level, opts ...Option) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return newLogger(zapcore.NewJSONEncoder(encCfg), out, level, opts...)
}

// DevLogger creates a logger writing human readable console output to out.
func DevLogger(out io.Writer, level Level, opts ...Option) *Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return newLogger(zapcore.NewConsoleEncoder(encCfg), out, level, opts...)
}

func newLogger(enc zapcore.Encoder, out io.Writer, level Level, opts ...Option) *Logger {
	if out == nil {
		out = os.Stderr
	}
	al := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(enc, zapcore.AddSync(out), al)
	return &Logger{l: zap.New(core, opts...), level: al}
}

// NewFromConfig builds a logger from a loaded Config.
func NewFromConfig(cfg *Config, opts ...Option) (*Logger, error) {
	if cfg.DefaultLevel != "" {
		lvl, err := ParseLevel(cfg.DefaultLevel)
		if err != nil {
			return nil, err
		}
		cfg.Zap.Level = zap.NewAtomicLevelAt(lvl)
	}
	l, err := cfg.Zap.Build(opts...)
	if err != nil {
		return nil, err
	}
	return &Logger{l: l, level: cfg.Zap.Level}, nil
}

func ParseLevel(s string) (Level, error) {
	return zapcore.ParseLevel(s)
}

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{l: l.l.With(fields...), level: l.level}
}

func (l *Logger) Level() Level {
	return l.level.Level()
}

func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level)
}

func (l *Logger) Sync() error {
	return l.l.Sync()
}

// CloseWith makes Close release c, usually the file the logger writes to.
func (l *Logger) CloseWith(c io.Closer) *Logger {
	l.closer = c
	return l
}

// Close flushes buffered entries and releases the writer set by CloseWith.
func (l *Logger) Close() error {
	err := l.l.Sync()
	if l.closer == nil {
		return err
	}
	if cerr := l.closer.Close(); cerr != nil {
		return cerr
	}
	return err
}

var (
	mu  sync.RWMutex
	std = DevLogger(os.Stderr, InfoLevel)
)

func Default() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// ResetDefault replaces the logger used by the package level functions.
func ResetDefault(l *Logger) {
	mu.Lock()
	std = l
	mu.Unlock()
}

// Package level functions call zap directly. They must stay at the same stack
// depth as the Logger methods, which AddCallerSkip(1) accounts for.
func Debug(msg string, fields ...Field) { Default().l.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { Default().l.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { Default().l.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { Default().l.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { Default().l.Fatal(msg, fields...) }

func Sync() error  { return Default().Sync() }
func Close() error { return Default().Close() }
