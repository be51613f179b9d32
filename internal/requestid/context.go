package requestid

import (
	"context"
	"net/http"
)

// ContextKey is the type used for context keys
type ContextKey string

// ContextKeyRequestID is the key for the request ID in the context
const ContextKeyRequestID ContextKey = "requestID"

// Header carries the request ID on requests and responses.
const Header = "X-Request-ID"

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

// FromContext retrieves the request ID, or "" when none was set.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// Get retrieves the request ID from the request context.
func Get(r *http.Request) string {
	return FromContext(r.Context())
}
