// Package auth resolves opaque request credentials to user identities.
package auth

import (
	"context"

	"github.com/marwan-kudus/jabar-onshop/internal/user"
)

// Identity is a resolved, authenticated caller.
type Identity struct {
	UserID string
	Role   user.Role
}

// Authority turns an opaque credential into an identity. A nil identity with
// a nil error means "unauthenticated"; errors are reserved for lookup
// failures.
type Authority interface {
	Resolve(ctx context.Context, credential string) (*Identity, error)
}

// AuthorityFunc adapts a function to the Authority interface.
type AuthorityFunc func(ctx context.Context, credential string) (*Identity, error)

func (f AuthorityFunc) Resolve(ctx context.Context, credential string) (*Identity, error) {
	return f(ctx, credential)
}
