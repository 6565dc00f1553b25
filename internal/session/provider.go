package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"GLOBETROTTER_BACK-END/internal/config"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/store"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	// ErrEmailTaken is returned when registering an email that already has a profile.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidRegistration wraps malformed registration input.
	ErrInvalidRegistration = errors.New("invalid registration")
)

const minPasswordLength = 6

// Provider resolves credentials into identities.
type Provider struct {
	profiles store.Profiles
	auth     config.AuthConfig
	now      func() time.Time
}

func NewProvider(profiles store.Profiles, auth config.AuthConfig) *Provider {
	return &Provider{profiles: profiles, auth: auth, now: func() time.Time { return time.Now().UTC() }}
}

// Authenticate checks the built-in admin and demo accounts first, then remote profiles.
func (p *Provider) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}

	if p.auth.AdminEmail != "" && email == normalizeEmail(p.auth.AdminEmail) && password == p.auth.AdminPassword {
		return Identity{ID: AdminUserID, Email: email, DisplayName: "Admin User", Admin: true, Kind: KindAdmin}, nil
	}
	if p.auth.DemoEmail != "" && email == normalizeEmail(p.auth.DemoEmail) && password == p.auth.DemoPassword {
		return Identity{ID: DemoUserID, Email: email, DisplayName: "Demo User", Kind: KindDemo}, nil
	}

	profile, err := p.profiles.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("lookup profile: %w", err)
	}
	if profile.PasswordHash == "" {
		// Google-only account
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return FromProfile(profile), nil
}

// Register creates a remote profile with a bcrypt password hash.
func (p *Provider) Register(ctx context.Context, email, password string, fullName *string) (Identity, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return Identity{}, fmt.Errorf("%w: a valid email is required", ErrInvalidRegistration)
	}
	if len(password) < minPasswordLength {
		return Identity{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRegistration, minPasswordLength)
	}
	if p.isBuiltIn(email) {
		return Identity{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}
	now := p.now()
	profile, err := p.profiles.InsertProfile(ctx, models.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     trimmed(fullName),
		Language:     "en",
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return Identity{}, ErrEmailTaken
		}
		return Identity{}, fmt.Errorf("create profile: %w", err)
	}
	return FromProfile(profile), nil
}

// SignInExternal finds the profile for an email verified by an external provider,
// creating one without a password when none exists.
func (p *Provider) SignInExternal(ctx context.Context, email string, fullName, avatarURL *string) (Identity, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Identity{}, ErrInvalidCredentials
	}
	profile, err := p.profiles.GetProfileByEmail(ctx, email)
	if err == nil {
		return FromProfile(profile), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return Identity{}, fmt.Errorf("lookup profile: %w", err)
	}

	now := p.now()
	profile, err = p.profiles.InsertProfile(ctx, models.Profile{
		ID:        uuid.NewString(),
		Email:     email,
		FullName:  trimmed(fullName),
		AvatarURL: trimmed(avatarURL),
		Language:  "en",
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Identity{}, fmt.Errorf("create profile: %w", err)
	}
	return FromProfile(profile), nil
}

// FromProfile builds the identity of a registered user.
func FromProfile(p models.Profile) Identity {
	return Identity{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName(),
		AvatarURL:   p.AvatarURL,
		Admin:       p.Role == models.RoleAdmin,
		Kind:        KindRegistered,
	}
}

func (p *Provider) isBuiltIn(email string) bool {
	return email == normalizeEmail(p.auth.AdminEmail) || email == normalizeEmail(p.auth.DemoEmail)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
