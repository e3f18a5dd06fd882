package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface used across services: an action
// tag, a human message, the request id (empty outside request scope) and
// free-form details.
type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

type zapLogger struct {
	l *zap.Logger
}

func New(service string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

	hostname, _ := os.Hostname()
	l := zap.Must(cfg.Build(zap.Fields(
		zap.String("service", service),
		zap.String("hostname", hostname),
	)))

	return &zapLogger{l: l}
}

func (z *zapLogger) Info(action, message, requestID string, details map[string]interface{}) {
	z.l.Info(message, fields(action, requestID, details)...)
}

func (z *zapLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	z.l.Debug(message, fields(action, requestID, details)...)
}

func (z *zapLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	fs := fields(action, requestID, details)
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	z.l.Error(message, fs...)
}

func fields(action, requestID string, details map[string]interface{}) []zap.Field {
	fs := []zap.Field{zap.String("action", action)}
	if requestID != "" {
		fs = append(fs, zap.String("request_id", requestID))
	}
	for k, v := range details {
		fs = append(fs, zap.Any(k, v))
	}
	return fs
}
