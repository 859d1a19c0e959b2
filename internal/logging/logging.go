// Package logging builds the zap logger used for diagnostics. Stdout belongs
// to the interactive session, so logs go to stderr or a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/addressbook/internal/config"
)

// New returns a logger configured from cfg and a cleanup func that flushes
// the logger and closes the log file, if any.
func New(cfg config.Log) (*zap.Logger, func(), error) {
	var (
		ws     zapcore.WriteSyncer
		closer io.Closer
	)
	if cfg.File == "" {
		ws = zapcore.Lock(zapcore.AddSync(os.Stderr))
	} else {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: opening %s: %w", cfg.File, err)
		}
		ws = zapcore.AddSync(f)
		closer = f
	}

	logger := NewWithWriter(cfg.Level, ws)
	cleanup := func() {
		_ = logger.Sync()
		if closer != nil {
			_ = closer.Close()
		}
	}
	return logger, cleanup, nil
}

// NewWithWriter returns a console-encoded logger writing to ws.
func NewWithWriter(level string, ws zapcore.WriteSyncer) *zap.Logger {
	core := zapcore.NewCore(buildEncoder(), ws, ParseLevel(level))
	return zap.New(core, zap.AddCaller())
}

func buildEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// ParseLevel maps a config level name to a zap level. Unknown names map to warn.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
