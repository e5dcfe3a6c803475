package dto

import "github.com/arizona-prime/community-api/internal/models"

// RegisterRequest carries self-registration credentials.
type RegisterRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Nickname string `json:"nickname" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest carries the admin-created account payload.
type CreateUserRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse is returned from register and login with a session token.
type AuthResponse struct {
	Token      string  `json:"token"`
	UserID     uint    `json:"user_id"`
	Nickname   string  `json:"nickname"`
	Role       string  `json:"role"`
	AvatarPath *string `json:"avatar_path"`
}

// CreatedUserResponse is returned from the admin create endpoint.
type CreatedUserResponse struct {
	UserID   uint   `json:"user_id"`
	Nickname string `json:"nickname"`
}

// NewAuthResponse builds the session payload for a user.
func NewAuthResponse(token string, user models.User) AuthResponse {
	return AuthResponse{
		Token:      token,
		UserID:     user.ID,
		Nickname:   user.Nickname,
		Role:       user.Role,
		AvatarPath: user.AvatarPath,
	}
}
