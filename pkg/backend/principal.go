package backend

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated identity requests are made for.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying the principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal carried by ctx.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.ID == uuid.Nil {
		return Principal{}, false
	}
	return p, true
}
