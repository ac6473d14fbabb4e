package auth

import "context"

// Identity is the authenticated caller extracted from a verified token.
// It travels in the request context; nothing in the service layer reads
// ambient global state.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity, if one was attached by
// the auth middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
