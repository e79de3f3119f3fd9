// Package utils provides general-purpose helpers shared by the library API
// server and its CLI client: request-scoped context values, JSON request and
// response helpers, the resty HTTP client, id generation and local network
// lookups.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey is the key under which the trace id middleware stores the
// request trace id.
//
//	ctx := context.WithValue(ctx, utils.TraceIDCtxKey, "0190c6f1-...")
var TraceIDCtxKey = contextKey("traceID")

// GetTraceIDFromContext returns the request trace id and whether it was set
// as a non-empty string.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok && traceID != ""
}
