package logger

import "context"

type ctxKey int

const (
	correlationIDKey ctxKey = iota
	hostKey
)

// WithCorrelationID attaches a correlation id carried on every log line
// written with this context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// WithHost records the handling process identity (client id, pod name).
func WithHost(ctx context.Context, host string) context.Context {
	return context.WithValue(ctx, hostKey, host)
}

func Host(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	host, _ := ctx.Value(hostKey).(string)
	return host
}
