package logger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is the structured log field type accepted by every logging helper.
type Field = zap.Field

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

type Options struct {
	ServiceName string
	Level       string
	Development bool
}

// Init builds the process-wide logger. Call once from setup before any
// component starts logging.
func Init(opts Options) error {
	cfg := zap.NewProductionConfig()
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	if opts.ServiceName != "" {
		l = l.With(zap.String("service", opts.ServiceName))
	}

	mu.Lock()
	base = l
	mu.Unlock()
	return nil
}

// InitForTest swaps in a no-op logger. Intended for TestMain.
func InitForTest() {
	mu.Lock()
	base = zap.NewNop()
	mu.Unlock()
}

func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}

func logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	logger().Debug(msg, withContext(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	logger().Info(msg, withContext(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	logger().Warn(msg, withContext(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	logger().Error(msg, withContext(ctx, fields)...)
}

func Fatal(ctx context.Context, msg string, fields ...Field) {
	logger().Fatal(msg, withContext(ctx, fields)...)
}

func withContext(ctx context.Context, fields []Field) []Field {
	if id := CorrelationID(ctx); id != "" {
		fields = append(fields, zap.String("correlation-id", id))
	}
	if host := Host(ctx); host != "" {
		fields = append(fields, zap.String("host", host))
	}
	return fields
}

func String(key, value string) Field { return zap.String(key, value) }
func Int(key string, value int) Field { return zap.Int(key, value) }
func Int32(key string, value int32) Field { return zap.Int32(key, value) }
func Int64(key string, value int64) Field { return zap.Int64(key, value) }
func Bool(key string, value bool) Field { return zap.Bool(key, value) }
func Time(key string, value time.Time) Field { return zap.Time(key, value) }
func Duration(key string, d time.Duration) Field { return zap.Duration(key, d) }
func Any(key string, value any) Field { return zap.Any(key, value) }
func Err(err error) Field { return zap.Error(err) }
