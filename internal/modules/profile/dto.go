package profile

import (
	"errors"
	"time"

	"github.com/quillblog/core/internal/models"
)

var (
	errUsernameTaken = errors.New("username already taken")
	errEmailTaken    = errors.New("email already registered")
	errBadBirthDate  = errors.New("birth_date must be formatted as YYYY-MM-DD")
	errNoAvatar      = errors.New("avatar file is required")
)

// UpdateProfileDTO carries account and profile edits in one request. All
// fields are optional; absent fields are left unchanged.
type UpdateProfileDTO struct {
	Username  *string `json:"username"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	BirthDate *string `json:"birth_date"`
}

type ProfileResponse struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Bio       string     `json:"bio"`
	Avatar    string     `json:"avatar"`
	Location  string     `json:"location"`
	Website   string     `json:"website"`
	BirthDate *time.Time `json:"birth_date"`
	Joined    time.Time  `json:"joined_at"`
}

func toResponse(user *models.UserModel) ProfileResponse {
	r := ProfileResponse{
		Username: user.Username,
		Email:    user.Email,
		Joined:   user.CreatedAt,
	}
	if user.Profile != nil {
		r.Bio = user.Profile.Bio
		r.Avatar = user.Profile.Avatar
		r.Location = user.Profile.Location
		r.Website = user.Profile.Website
		r.BirthDate = user.Profile.BirthDate
	}
	return r
}
