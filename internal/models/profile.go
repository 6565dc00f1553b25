package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents a user identity and its editable settings
type Profile struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	FullName     *string   `json:"full_name" db:"full_name"`
	AvatarURL    *string   `json:"avatar_url" db:"avatar_url"`
	Language     string    `json:"language" db:"language"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (Profile) Columns() []string {
	return []string{"id", "email", "password_hash", "full_name", "avatar_url", "language", "role", "created_at", "updated_at"}
}

func (p Profile) Values() map[string]any {
	return map[string]any{
		"id":            p.ID,
		"email":         p.Email,
		"password_hash": p.PasswordHash,
		"full_name":     p.FullName,
		"avatar_url":    p.AvatarURL,
		"language":      p.Language,
		"role":          p.Role,
		"created_at":    p.CreatedAt,
		"updated_at":    p.UpdatedAt,
	}
}

// DisplayName returns the full name, falling back to the email address.
func (p Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	return p.Email
}
