package middleware

import (
	"context"

	"google.golang.org/grpc/metadata"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey string

const requestIDKey ctxKey = "request_id"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the id stored by an interceptor, falling back to
// incoming gRPC metadata. Empty when neither is present.
func GetRequestID(ctx context.Context) string {
	if val, ok := ctx.Value(requestIDKey).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("x-request-id"); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
