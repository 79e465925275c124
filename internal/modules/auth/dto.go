package auth

import (
	"errors"
	"time"

	"github.com/quillblog/core/internal/models"
)

var (
	errUsernameTaken  = errors.New("username already taken")
	errEmailTaken     = errors.New("email already registered")
	errBadCredentials = errors.New("invalid username or password")
)

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       string               `json:"id"`
	Username string               `json:"username"`
	Email    string               `json:"email"`
	IsStaff  bool                 `json:"is_staff"`
	Profile  *models.ProfileModel `json:"profile,omitempty"`
	Created  time.Time            `json:"created_at"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse projects an account for API responses, omitting the
// password hash.
func ToUserResponse(u *models.UserModel) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsStaff:  u.IsStaff,
		Profile:  u.Profile,
		Created:  u.CreatedAt,
	}
}
