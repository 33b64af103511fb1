// Package utils provides general-purpose helpers shared by the client
// packages: typed context keys, HTTP response writing, the shared HTTP
// client and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// SyncIDCtxKey is the context key of the current sync attempt's id.
var SyncIDCtxKey = contextKey("syncID")

// WithSyncID returns a copy of ctx carrying syncID.
func WithSyncID(ctx context.Context, syncID string) context.Context {
	return context.WithValue(ctx, SyncIDCtxKey, syncID)
}

// SyncIDFromContext returns the sync id stored by [WithSyncID], or "" when
// ctx carries none.
func SyncIDFromContext(ctx context.Context) string {
	syncID, _ := ctx.Value(SyncIDCtxKey).(string)
	return syncID
}
