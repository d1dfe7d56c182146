package logger

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Development environments get a colored console
// encoder; everything else logs one JSON object per line. Timestamps use loc.
func New(env string, loc *time.Location) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "dev", "development":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = timeEncoder(loc)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}

// NewWithWriter returns a JSON logger writing to w at debug level.
func NewWithWriter(w io.Writer, loc *time.Location) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = timeEncoder(loc)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

func timeEncoder(loc *time.Location) zapcore.TimeEncoder {
	if loc == nil {
		loc = time.UTC
	}
	return func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(t.In(loc).Format(time.RFC3339Nano))
	}
}
