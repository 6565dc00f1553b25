// Package session defines who is making a request and how they signed in.
package session

import "context"

// Kind tells how an identity was established.
type Kind string

const (
	KindRegistered Kind = "registered"
	KindDemo       Kind = "demo"
	KindAdmin      Kind = "admin"
	KindAnonymous  Kind = "anonymous"
)

// Fixed ids of the built-in identities.
const (
	AdminUserID     = "admin-user-id-456"
	DemoUserID      = "mock-user-id-123"
	AnonymousUserID = "temp-user"
)

// Identity is the signed-in user as seen by the services.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
	AvatarURL   *string
	Admin       bool
	Kind        Kind
}

// Anonymous is the identity of a visitor without a session.
func Anonymous() Identity {
	return Identity{ID: AnonymousUserID, DisplayName: "Guest", Kind: KindAnonymous}
}

// PrefersLocal reports whether new trips of this identity belong in the local store.
// Built-in and anonymous identities have no remote profile to own remote rows.
func (i Identity) PrefersLocal() bool {
	switch i.Kind {
	case KindDemo, KindAdmin, KindAnonymous:
		return true
	}
	return false
}

// HasRemoteProfile reports whether the identity is backed by a profiles row.
func (i Identity) HasRemoteProfile() bool { return i.Kind == KindRegistered }

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored in ctx.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
