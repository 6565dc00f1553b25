package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GLOBETROTTER_BACK-END/internal/config"
	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/utils"
)

var testJWT = &config.JWTConfig{Secret: "test-secret-0123456789", AccessTokenTTL: time.Hour}

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	id, _ := session.FromContext(r.Context())
	utils.WriteJSONResponse(w, http.StatusOK, dto.UserResponse{ID: id.ID, Kind: string(id.Kind), Admin: id.Admin})
}

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) dto.UserResponse {
	t.Helper()
	var u dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	return u
}

func TestTokenRoundTrip(t *testing.T) {
	avatar := "https://example.com/a.png"
	in := session.Identity{ID: "u1", Email: "a@b.c", DisplayName: "Ana", AvatarURL: &avatar, Kind: session.KindRegistered}

	token, err := GenerateToken(in, testJWT)
	require.NoError(t, err)
	claims, err := ValidateToken(token, testJWT)
	require.NoError(t, err)

	assert.Equal(t, in, claims.Identity())
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "u1", claims.Subject)
}

func TestValidateTokenRejects(t *testing.T) {
	token, err := GenerateToken(session.Identity{ID: "u1"}, testJWT)
	require.NoError(t, err)

	_, err = ValidateToken(token, &config.JWTConfig{Secret: "another-secret-value"})
	assert.Error(t, err)

	expired, err := GenerateToken(session.Identity{ID: "u1"}, &config.JWTConfig{Secret: testJWT.Secret, AccessTokenTTL: -time.Minute})
	require.NoError(t, err)
	_, err = ValidateToken(expired, testJWT)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{UserID: "u1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ValidateToken(unsigned, testJWT)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	a := NewAuthenticator(testJWT, session.NewMemoryRevoker(), true, utils.Discard())
	h := a.AuthMiddleware(http.HandlerFunc(echoIdentity))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "garbage").Code)

	token, err := GenerateToken(session.Identity{ID: "u1", Kind: session.KindRegistered}, testJWT)
	require.NoError(t, err)
	rec := serve(h, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", decodeUser(t, rec).ID)
}

func TestOptionalAuth(t *testing.T) {
	h := NewAuthenticator(testJWT, nil, true, utils.Discard()).OptionalAuth(http.HandlerFunc(echoIdentity))
	rec := serve(h, "")
	require.Equal(t, http.StatusOK, rec.Code)
	u := decodeUser(t, rec)
	assert.Equal(t, session.AnonymousUserID, u.ID)
	assert.Equal(t, string(session.KindAnonymous), u.Kind)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "garbage").Code)

	strict := NewAuthenticator(testJWT, nil, false, utils.Discard()).OptionalAuth(http.HandlerFunc(echoIdentity))
	assert.Equal(t, http.StatusUnauthorized, serve(strict, "").Code)
}

func TestRevokedTokenIsRejected(t *testing.T) {
	a := NewAuthenticator(testJWT, session.NewMemoryRevoker(), true, utils.Discard())
	h := a.AuthMiddleware(http.HandlerFunc(echoIdentity))

	token, err := GenerateToken(session.Identity{ID: "u1", Kind: session.KindRegistered}, testJWT)
	require.NoError(t, err)
	claims, err := ValidateToken(token, testJWT)
	require.NoError(t, err)

	require.NoError(t, a.Revoke(context.Background(), claims))
	assert.Equal(t, http.StatusUnauthorized, serve(h, token).Code)
}

func TestAdminOnly(t *testing.T) {
	a := NewAuthenticator(testJWT, nil, true, utils.Discard())
	h := a.AuthMiddleware(AdminOnly(http.HandlerFunc(echoIdentity)))

	user, _ := GenerateToken(session.Identity{ID: "u1", Kind: session.KindRegistered}, testJWT)
	admin, _ := GenerateToken(session.Identity{ID: session.AdminUserID, Kind: session.KindAdmin, Admin: true}, testJWT)

	assert.Equal(t, http.StatusForbidden, serve(h, user).Code)
	assert.Equal(t, http.StatusOK, serve(h, admin).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(AdminOnly(http.HandlerFunc(echoIdentity)), "").Code)
}

func TestClaimsFromContext(t *testing.T) {
	a := NewAuthenticator(testJWT, nil, true, utils.Discard())
	var got *JWTClaims
	h := a.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
	}))
	token, _ := GenerateToken(session.Identity{ID: "u1"}, testJWT)
	serve(h, token)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
}
