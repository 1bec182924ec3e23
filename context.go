package spacekit

import (
	"context"
)

// Context keys for SpaceKit values.
type contextKey string

const (
	contextKeyCaller    contextKey = "spacekit:caller"
	contextKeyRequestID contextKey = "spacekit:request_id"
	contextKeyIPAddress contextKey = "spacekit:ip_address"
)

// WithCaller adds the calling account to the context.
// This is the account whose space permissions are checked.
func WithCaller(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, contextKeyCaller, account)
}

// GetCaller retrieves the calling account from context.
// Returns empty string if not set.
func GetCaller(ctx context.Context) string {
	if v := ctx.Value(contextKeyCaller); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// MustGetCaller retrieves the calling account from context.
// Panics if not set.
func MustGetCaller(ctx context.Context) string {
	account := GetCaller(ctx)
	if account == "" {
		panic("spacekit: caller not in context")
	}
	return account
}

// WithRequestID adds a request ID to the context (for correlation in host
// logs).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(contextKeyRequestID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithIPAddress adds the client IP address to the context.
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKeyIPAddress, ip)
}

// GetIPAddress retrieves the IP address from context.
func GetIPAddress(ctx context.Context) string {
	if v := ctx.Value(contextKeyIPAddress); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ContextResolver resolves the calling account from context values set by
// WithCaller. It is the default CallerResolver used by the Service.
type ContextResolver struct{}

// ResolveCaller implements CallerResolver.
func (ContextResolver) ResolveCaller(ctx context.Context) (string, error) {
	if account := GetCaller(ctx); account != "" {
		return account, nil
	}
	return "", ErrNoCaller
}
