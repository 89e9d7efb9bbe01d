package common

import (
	"context"
)

// PersonContext holds per-request identity resolved by the auth middleware.
// Identity itself lives with the external identity collaborator; only the
// resolved person id and role cross into this layer.
type PersonContext struct {
	PersonID string
	Role     string
}

type contextKey int

const personContextKey contextKey = iota

// WithPersonContext stores a PersonContext in the request context.
func WithPersonContext(ctx context.Context, pc *PersonContext) context.Context {
	return context.WithValue(ctx, personContextKey, pc)
}

// PersonContextFromContext retrieves the PersonContext from context, or nil if absent.
func PersonContextFromContext(ctx context.Context) *PersonContext {
	pc, _ := ctx.Value(personContextKey).(*PersonContext)
	return pc
}

// ResolvePersonID returns the person id from context, or "default" when no
// person context is present (single-tenant mode).
func ResolvePersonID(ctx context.Context) string {
	if pc := PersonContextFromContext(ctx); pc != nil && pc.PersonID != "" {
		return pc.PersonID
	}
	return "default"
}
