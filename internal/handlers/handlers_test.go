package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"GLOBETROTTER_BACK-END/internal/config"
	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/itinerary"
	"GLOBETROTTER_BACK-END/internal/middleware"
	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/store/storetest"
	"GLOBETROTTER_BACK-END/internal/utils"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &itinerary.ValidationError{Field: "name", Message: "name is required"}, http.StatusBadRequest, "Validation error"},
		{"registration", fmt.Errorf("%w: bad email", session.ErrInvalidRegistration), http.StatusBadRequest, "Validation error"},
		{"credentials", session.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"not found", fmt.Errorf("get trip: %w", store.ErrNotFound), http.StatusNotFound, "Not found"},
		{"local trip", services.ErrLocalTrip, http.StatusConflict, "Local trip"},
		{"email taken", session.ErrEmailTaken, http.StatusConflict, "User already exists"},
		{"conflict", store.ErrConflict, http.StatusConflict, "Conflict"},
		{"unavailable", fmt.Errorf("list: %w", store.ErrUnavailable), http.StatusServiceUnavailable, "Service unavailable"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "Database error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, utils.Discard(), tt.err)
			assert.Equal(t, tt.status, rec.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error)
		})
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=5&offset=-1&page=abc", nil)
	assert.Equal(t, 5, queryInt(r, "limit", 20))
	assert.Equal(t, 0, queryInt(r, "offset", 0))
	assert.Equal(t, 1, queryInt(r, "page", 1))
	assert.Equal(t, 7, queryInt(r, "missing", 7))
}

func TestIdentityRequired(t *testing.T) {
	h := NewTripsHandler(nil, utils.Discard())
	rec := httptest.NewRecorder()
	h.ListTrips(rec, httptest.NewRequest(http.MethodGet, "/api/trips", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeExchanger struct {
	err error
}

func (f fakeExchanger) AuthCodeURL(state string, _ ...oauth2.AuthCodeOption) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f fakeExchanger) Exchange(_ context.Context, code string, _ ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &oauth2.Token{AccessToken: "access-" + code}, nil
}

func newGoogleHandler(t *testing.T, exchangeErr error) (*GoogleAuthHandler, *storetest.Remote) {
	t.Helper()
	remote := storetest.NewRemote()
	cfg := &config.Config{
		JWT:         config.JWTConfig{Secret: "google-test-secret-0123", AccessTokenTTL: time.Hour},
		GoogleOAuth: config.GoogleOAuthConfig{FrontendCallbackURL: "http://localhost:5173/auth/callback"},
	}
	h := NewGoogleAuthHandler(session.NewProvider(remote, cfg.Auth), cfg, utils.Discard())
	h.oauth2Config = fakeExchanger{err: exchangeErr}
	h.userInfo = func(_ context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
		require.Equal(t, "access-abc", token.AccessToken)
		return &dto.GoogleUserInfo{ID: "g-1", Email: "Carol@Example.com", Name: "Carol", Picture: "https://example.com/c.png", Verified: true}, nil
	}
	return h, remote
}

func TestGoogleLogin(t *testing.T) {
	h, _ := newGoogleHandler(t, nil)
	rec := httptest.NewRecorder()
	h.GoogleLogin(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.GoogleLoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.State)
	assert.Contains(t, resp.AuthURL, resp.State)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, resp.State, cookies[0].Value)
}

func TestGoogleCallbackSignsInAndRedirects(t *testing.T) {
	h, remote := newGoogleHandler(t, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=s1", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "s1"})
	h.GoogleCallback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/callback", loc.Path)
	assert.Equal(t, "carol@example.com", loc.Query().Get("email"))
	assert.Equal(t, "google", loc.Query().Get("provider"))

	claims, err := middleware.ValidateToken(loc.Query().Get("token"), h.jwt)
	require.NoError(t, err)
	assert.Equal(t, loc.Query().Get("user_id"), claims.UserID)

	p, err := remote.GetProfileByEmail(context.Background(), "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Carol", *p.FullName)
	assert.Empty(t, p.PasswordHash)

	// A second sign-in reuses the profile.
	rec = httptest.NewRecorder()
	h.GoogleCallback(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Len(t, remote.Profiles, 1)
}

func TestGoogleCallbackRejects(t *testing.T) {
	h, _ := newGoogleHandler(t, nil)

	rec := httptest.NewRecorder()
	h.GoogleCallback(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "s1"})
	h.GoogleCallback(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad, _ := newGoogleHandler(t, errors.New("invalid_grant"))
	rec = httptest.NewRecorder()
	bad.GoogleCallback(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestReadinessCheck(t *testing.T) {
	down := errors.New("connection refused")
	tests := []struct {
		name          string
		remote, local error
		code          int
		status        string
	}{
		{"both up", nil, nil, http.StatusOK, "ready"},
		{"remote down", down, nil, http.StatusOK, "degraded"},
		{"local down", nil, down, http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(pinger{tt.remote}, pinger{tt.local})
			rec := httptest.NewRecorder()
			h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			assert.Equal(t, tt.code, rec.Code)

			var body dto.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
		})
	}
}
