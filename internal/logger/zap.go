package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// defaultZapLevel is used when an unknown level string is provided.
const defaultZapLevel = zapcore.DebugLevel

// ParseLevel converts a textual level to zapcore.Level, case-insensitively.
// ok is false for unknown levels, which map to debug.
func ParseLevel(levelStr string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case DebugLevel:
		return zapcore.DebugLevel, true
	case InfoLevel:
		return zapcore.InfoLevel, true
	case WarnLevel:
		return zapcore.WarnLevel, true
	case ErrorLevel:
		return zapcore.ErrorLevel, true
	default:
		return defaultZapLevel, false
	}
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	if strings.EqualFold(format, FormatJSON) {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func newCore(opts Options, w io.Writer) zapcore.Core {
	level, _ := ParseLevel(opts.Level)
	ws := zapcore.Lock(zapcore.AddSync(w)) // thread-safe writer
	return zapcore.NewCore(newEncoder(opts.Format), ws, zap.NewAtomicLevelAt(level))
}

// New builds a logger writing to stdout. Unlike Init it is not shared.
func New(opts Options) *Logger {
	return NewWithWriter(opts, os.Stdout)
}

// NewWithWriter builds a logger writing to w.
func NewWithWriter(opts Options, w io.Writer) *Logger {
	return &Logger{
		SugaredLogger: zap.New(newCore(opts, w)).Sugar(),
	}
}
