// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns a logger pre-tagged with the current request ID, so every
// log line emitted from a handler or service is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("tokens debited", "uid", uid, "cost", cost)
//	// → time=... level=INFO msg="tokens debited" request_id=a1b2c3d4 uid=u1 cost=500
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/risewynn/qellum/config"
)

var L *slog.Logger

// sink is the MongoDB handler, set by ConnectSink when configured.
var sink *MongoHandler

func init() {
	L = slog.New(baseHandler())
	slog.SetDefault(L)
}

func baseHandler() slog.Handler {
	switch config.AppEnv() {
	case "production", "prod":
		// Structured JSON for log aggregators.
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		// Human-readable for dev.
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// ConnectSink attaches the asynchronous MongoDB log sink when MONGO_LOG_URI is
// configured. Call once at server start; a connection failure downgrades to
// stdout-only logging and is reported, not fatal.
func ConnectSink() error {
	uri := config.MongoLogURI()
	if uri == "" {
		return nil
	}

	h, err := NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
	if err != nil {
		return err
	}

	sink = h
	L = slog.New(NewMultiHandler(baseHandler(), h))
	slog.SetDefault(L)
	return nil
}

// CloseSink flushes and disconnects the MongoDB sink, if one is attached.
func CloseSink() {
	if sink != nil {
		sink.Close()
		sink = nil
	}
}

// ctxKey stores the per-request *slog.Logger in context.
type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx by the Logger
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a request-scoped *slog.Logger into ctx.
// Called by the Logger middleware; application code rarely needs it.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
