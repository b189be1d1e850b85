package auth

import (
	"context"

	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/google/uuid"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     models.Role
}

type ctxKey int

const identityKey ctxKey = iota

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity admitted by the gate, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
