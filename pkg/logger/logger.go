package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	KeyResult    = "result"
	KeyError     = "error"
	KeyReportID  = "report_id"
	KeyRecipient = "recipient"
	KeyKind      = "kind"
	KeySection   = "section"
	KeyTier      = "tier"
	KeyDuration  = "duration"

	ValueSuccess = "success"
	ValueFail    = "fail"
)

// NewLogger builds a production sugared logger writing JSON with ISO8601 timestamps.
func NewLogger(logLevel zapcore.Level) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(logLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "timestamp"

	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	return logger.Sugar()
}
