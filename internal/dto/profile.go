package dto

// ProfileResponse is returned by GET /api/profile
type ProfileResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Language  string  `json:"language"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"` // RFC3339
	UpdatedAt string  `json:"updated_at"` // RFC3339
}

// ProfileUpdateRequest carries editable profile fields
type ProfileUpdateRequest struct {
	FullName  *string `json:"full_name"`  // "" => NULL
	AvatarURL *string `json:"avatar_url"` // "" => NULL
	Language  *string `json:"language"`
}
