package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"GLOBETROTTER_BACK-END/internal/config"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/store/storetest"
)

var testAuth = config.AuthConfig{
	AdminEmail:    "admin@globetrotter.com",
	AdminPassword: "admin123",
	DemoEmail:     "demo@globetrotter.com",
	DemoPassword:  "demo123",
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{ID: "u1", Kind: KindRegistered})
	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", id.ID)
}

func TestPrefersLocal(t *testing.T) {
	assert.False(t, Identity{Kind: KindRegistered}.PrefersLocal())
	assert.True(t, Identity{Kind: KindDemo}.PrefersLocal())
	assert.True(t, Identity{Kind: KindAdmin}.PrefersLocal())
	assert.True(t, Anonymous().PrefersLocal())
	assert.Equal(t, "temp-user", Anonymous().ID)
}

func TestAuthenticateBuiltInAccounts(t *testing.T) {
	remote := storetest.NewRemote()
	p := NewProvider(remote, testAuth)
	ctx := context.Background()

	admin, err := p.Authenticate(ctx, "Admin@GlobeTrotter.com ", "admin123")
	require.NoError(t, err)
	assert.Equal(t, AdminUserID, admin.ID)
	assert.True(t, admin.Admin)
	assert.Equal(t, KindAdmin, admin.Kind)

	demo, err := p.Authenticate(ctx, "demo@globetrotter.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, DemoUserID, demo.ID)
	assert.False(t, demo.Admin)
	assert.Equal(t, "Demo User", demo.DisplayName)

	_, err = p.Authenticate(ctx, "demo@globetrotter.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterThenAuthenticate(t *testing.T) {
	remote := storetest.NewRemote()
	p := NewProvider(remote, testAuth)
	ctx := context.Background()
	name := "  Ana Lima "

	id, err := p.Register(ctx, "Ana@Example.com", "s3cret!", &name)
	require.NoError(t, err)
	assert.Equal(t, KindRegistered, id.Kind)
	assert.Equal(t, "Ana Lima", id.DisplayName)
	assert.Equal(t, "ana@example.com", id.Email)

	stored := remote.Profiles[id.ID]
	assert.NotEqual(t, "s3cret!", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret!")))

	again, err := p.Authenticate(ctx, "ana@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, id.ID, again.ID)

	_, err = p.Authenticate(ctx, "ana@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = p.Authenticate(ctx, "nobody@example.com", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.Register(ctx, "ana@example.com", "another1", nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	p := NewProvider(storetest.NewRemote(), testAuth)
	ctx := context.Background()

	_, err := p.Register(ctx, "not-an-email", "s3cret!", nil)
	assert.ErrorIs(t, err, ErrInvalidRegistration)
	_, err = p.Register(ctx, "a@b.com", "123", nil)
	assert.ErrorIs(t, err, ErrInvalidRegistration)
	_, err = p.Register(ctx, "demo@globetrotter.com", "demo1234", nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticateRemoteUnavailable(t *testing.T) {
	remote := storetest.NewRemote()
	remote.Fail(store.ErrUnavailable)
	p := NewProvider(remote, testAuth)

	_, err := p.Authenticate(context.Background(), "ana@example.com", "s3cret!")
	assert.ErrorIs(t, err, store.ErrUnavailable)

	// Built-in accounts still work offline.
	_, err = p.Authenticate(context.Background(), "demo@globetrotter.com", "demo123")
	assert.NoError(t, err)
}

func TestSignInExternal(t *testing.T) {
	remote := storetest.NewRemote()
	p := NewProvider(remote, testAuth)
	ctx := context.Background()
	avatar := "https://example.com/a.png"

	first, err := p.SignInExternal(ctx, "g@example.com", nil, &avatar)
	require.NoError(t, err)
	second, err := p.SignInExternal(ctx, "G@example.com", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, &avatar, second.AvatarURL)

	// No password was set, so password sign-in is refused.
	_, err = p.Authenticate(ctx, "g@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFromProfileAdminRole(t *testing.T) {
	id := FromProfile(models.Profile{ID: "u1", Email: "x@y.z", Role: models.RoleAdmin})
	assert.True(t, id.Admin)
	assert.Equal(t, KindRegistered, id.Kind)
	assert.Equal(t, "x@y.z", id.DisplayName)
}

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewMemoryRevoker()
	r.now = func() time.Time { return now }

	require.NoError(t, r.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	require.NoError(t, r.Revoke(ctx, "jti-old", now.Add(-time.Minute)))

	revoked, _ := r.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)
	revoked, _ = r.IsRevoked(ctx, "jti-old")
	assert.False(t, revoked)
	revoked, _ = r.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = r.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked, "entries lapse with the token")
}
