package domain

import "context"

// Identity is the caller resolved from the session at the request boundary.
// The zero value is an anonymous caller.
type Identity struct {
	UserID int64
}

func (i Identity) Authenticated() bool { return i.UserID > 0 }

// Require fails with ErrUnauthenticated for anonymous callers. Workflows call
// it before touching persistence.
func (i Identity) Require() error {
	if !i.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}
