package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"GLOBETROTTER_BACK-END/internal/config"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/utils"
)

const issuer = "globetrotter"

// JWTClaims represents the claims in the JWT token
type JWTClaims struct {
	UserID    string  `json:"user_id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Kind      string  `json:"kind"`
	Admin     bool    `json:"admin"`
	jwt.RegisteredClaims
}

// Identity rebuilds the session identity carried by the token.
func (c *JWTClaims) Identity() session.Identity {
	return session.Identity{
		ID:          c.UserID,
		Email:       c.Email,
		DisplayName: c.Name,
		AvatarURL:   c.AvatarURL,
		Admin:       c.Admin,
		Kind:        session.Kind(c.Kind),
	}
}

// GenerateToken generates a JWT token for the given identity
func GenerateToken(id session.Identity, cfg *config.JWTConfig) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:    id.ID,
		Email:     id.Email,
		Name:      id.DisplayName,
		AvatarURL: id.AvatarURL,
		Kind:      string(id.Kind),
		Admin:     id.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.ID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, cfg *config.JWTConfig) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid && claims.UserID != "" {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

type claimsKey struct{}

// ClaimsFromContext returns the token claims of an authenticated request.
func ClaimsFromContext(ctx context.Context) (*JWTClaims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*JWTClaims)
	return c, ok
}

var errNoToken = errors.New("authorization header required")

// Authenticator turns bearer tokens into request identities.
type Authenticator struct {
	cfg            *config.JWTConfig
	revoker        session.Revoker
	allowAnonymous bool
	logger         *utils.Logger
}

func NewAuthenticator(cfg *config.JWTConfig, revoker session.Revoker, allowAnonymous bool, logger *utils.Logger) *Authenticator {
	return &Authenticator{cfg: cfg, revoker: revoker, allowAnonymous: allowAnonymous, logger: logger}
}

// AuthMiddleware requires a valid, unrevoked token.
func (a *Authenticator) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.authenticate(r)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// OptionalAuth accepts requests without a token as the anonymous identity. A token that
// is present must still be valid.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.authenticate(r)
		switch {
		case err == nil:
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		case errors.Is(err, errNoToken) && a.allowAnonymous:
			ctx := session.WithIdentity(r.Context(), session.Anonymous())
			next.ServeHTTP(w, r.WithContext(ctx))
		default:
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", err.Error())
		}
	})
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := session.FromContext(r.Context())
		if !ok {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
			return
		}
		if !id.Admin {
			utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Revoke signs out the token described by claims.
func (a *Authenticator) Revoke(ctx context.Context, claims *JWTClaims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return a.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (a *Authenticator) authenticate(r *http.Request) (*JWTClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errNoToken
	}

	// Extract token from "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
		return nil, errors.New("invalid authorization header format")
	}

	claims, err := ValidateToken(tokenParts[1], a.cfg)
	if err != nil {
		return nil, errors.New("invalid token")
	}

	if claims.ID != "" && a.revoker != nil {
		revoked, err := a.revoker.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			// Fail closed when the revocation list cannot be read.
			a.logger.Error("Revocation check failed: %v", err)
			return nil, fmt.Errorf("session check unavailable")
		}
		if revoked {
			return nil, errors.New("token has been revoked")
		}
	}
	return claims, nil
}

func withClaims(ctx context.Context, claims *JWTClaims) context.Context {
	ctx = context.WithValue(ctx, claimsKey{}, claims)
	return session.WithIdentity(ctx, claims.Identity())
}
