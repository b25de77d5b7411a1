package logging

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// requestIDPrefix keeps ids greppable across services
const requestIDPrefix = "req_"

// GenerateRequestID returns a new random request id
func GenerateRequestID() string {
	return requestIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

type ctxKey int

const (
	requestIDKey ctxKey = iota
	startTimeKey
	userAgentKey
	remoteIPKey
)

// Request scoped values. RequestTracingMiddleware sets all four; StructuredLogger reads them back.

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func WithStartTime(ctx context.Context, startTime time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey, startTime)
}

func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return context.WithValue(ctx, userAgentKey, userAgent)
}

func WithRemoteIP(ctx context.Context, remoteIP string) context.Context {
	return context.WithValue(ctx, remoteIPKey, remoteIP)
}

func GetRequestID(ctx context.Context) string {
	return ctxString(ctx, requestIDKey)
}

func GetUserAgent(ctx context.Context) string {
	return ctxString(ctx, userAgentKey)
}

func GetRemoteIP(ctx context.Context) string {
	return ctxString(ctx, remoteIPKey)
}

func GetStartTime(ctx context.Context) time.Time {
	if ctx == nil {
		return time.Time{}
	}
	startTime, _ := ctx.Value(startTimeKey).(time.Time)
	return startTime
}

func ctxString(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(key).(string)
	return value
}
