package services

import (
	"context"
	"strings"
	"time"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/store"
)

type ProfileService struct {
	profiles store.Profiles
	started  time.Time
}

func NewProfileService(profiles store.Profiles) *ProfileService {
	return &ProfileService{profiles: profiles, started: utcNow()}
}

// GetProfile returns the caller's profile. Built-in and anonymous sessions get a
// profile derived from the session itself.
func (s *ProfileService) GetProfile(ctx context.Context, who session.Identity) (models.Profile, error) {
	if !who.HasRemoteProfile() {
		name := who.DisplayName
		role := models.RoleUser
		if who.Admin {
			role = models.RoleAdmin
		}
		return models.Profile{
			ID:        who.ID,
			Email:     who.Email,
			FullName:  &name,
			AvatarURL: who.AvatarURL,
			Language:  "en",
			Role:      role,
			CreatedAt: s.started,
			UpdatedAt: s.started,
		}, nil
	}
	return s.profiles.GetProfile(ctx, who.ID)
}

// UpdateProfile changes the editable fields. Empty strings clear full_name and avatar_url.
func (s *ProfileService) UpdateProfile(ctx context.Context, who session.Identity, req dto.ProfileUpdateRequest) (models.Profile, error) {
	if !who.HasRemoteProfile() {
		return models.Profile{}, ErrForbidden
	}
	patch := map[string]any{}
	if req.FullName != nil {
		patch["full_name"] = optional(req.FullName)
	}
	if req.AvatarURL != nil {
		patch["avatar_url"] = optional(req.AvatarURL)
	}
	if req.Language != nil {
		lang := strings.ToLower(strings.TrimSpace(*req.Language))
		if len(lang) < 2 || len(lang) > 5 {
			return models.Profile{}, invalid("language", "language must be a 2 to 5 letter code")
		}
		patch["language"] = lang
	}
	if len(patch) == 0 {
		return models.Profile{}, invalid("", "no fields to update")
	}
	return s.profiles.UpdateProfile(ctx, who.ID, patch)
}
