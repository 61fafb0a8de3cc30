package logging

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/1broseidon/textviz/common"
)

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	SetLevel(level common.LogLevel)
}

// Options configures NewZapLogger.
type Options struct {
	Level common.LogLevel
	// JSON selects the production encoder for the console core.
	JSON bool
	// FilePath, when set, adds a rotated JSON file core.
	FilePath string
	// Output overrides stderr for the console core.
	Output io.Writer
}

type zapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
	mu    sync.Mutex
	off   bool
}

// NewDefaultLogger returns a console logger with logging disabled.
func NewDefaultLogger() Logger {
	return NewZapLogger(Options{Level: common.DisabledLevel})
}

// NewZapLogger builds a leveled logger writing to the console and, optionally, a rotated file.
func NewZapLogger(opts Options) Logger {
	level := zap.NewAtomicLevel()

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var consoleEncoder zapcore.Encoder
	if opts.JSON {
		consoleEncoder = zapcore.NewJSONEncoder(encoderConfig())
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(out)), level),
	}

	if opts.FilePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    10, // Megabytes
			MaxBackups: 5,
			MaxAge:     30, // Days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(rotator), level))
	}

	l := &zapLogger{
		sugar: zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(),
		level: level,
	}
	l.SetLevel(opts.Level)
	return l
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func (l *zapLogger) enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.off
}

func (l *zapLogger) Debug(args ...interface{}) {
	if l.enabled() {
		l.sugar.Debug(args...)
	}
}

func (l *zapLogger) Debugf(format string, args ...interface{}) {
	if l.enabled() {
		l.sugar.Debugf(format, args...)
	}
}

func (l *zapLogger) Info(args ...interface{}) {
	if l.enabled() {
		l.sugar.Info(args...)
	}
}

func (l *zapLogger) Infof(format string, args ...interface{}) {
	if l.enabled() {
		l.sugar.Infof(format, args...)
	}
}

func (l *zapLogger) Warn(args ...interface{}) {
	if l.enabled() {
		l.sugar.Warn(args...)
	}
}

func (l *zapLogger) Warnf(format string, args ...interface{}) {
	if l.enabled() {
		l.sugar.Warnf(format, args...)
	}
}

func (l *zapLogger) Error(args ...interface{}) {
	if l.enabled() {
		l.sugar.Error(args...)
	}
}

func (l *zapLogger) Errorf(format string, args ...interface{}) {
	if l.enabled() {
		l.sugar.Errorf(format, args...)
	}
}

func (l *zapLogger) SetLevel(level common.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.off = level == common.DisabledLevel
	if !l.off {
		l.level.SetLevel(zapLevel(level))
	}
}

// Sync flushes buffered entries.
func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}

func zapLevel(level common.LogLevel) zapcore.Level {
	switch level {
	case common.DebugLevel:
		return zapcore.DebugLevel
	case common.WarnLevel:
		return zapcore.WarnLevel
	case common.ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes the logger when it supports flushing.
func Sync(l Logger) error {
	if s, ok := l.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
