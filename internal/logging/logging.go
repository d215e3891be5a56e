// Package logging builds the zap logger shared by the API, the migrator and the middleware.
package logging

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger writing one object per line to stdout.
// Timestamps are emitted under "ts" as RFC3339Nano in loc.
func New(level string, loc *time.Location) *zap.Logger {
	return zap.New(NewCore(zapcore.AddSync(os.Stdout), level, loc), zap.AddCaller())
}

// NewCore exposes the encoder/level wiring so tests and tools can target another writer.
func NewCore(w zapcore.WriteSyncer, level string, loc *time.Location) zapcore.Core {
	if loc == nil {
		loc = time.UTC
	}
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.MessageKey = "msg"
	enc.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(t.In(loc).Format(time.RFC3339Nano))
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(enc), w, ParseLevel(level))
}

// ParseLevel maps LOG_LEVEL values onto zap levels; unknown values mean info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
