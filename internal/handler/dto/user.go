// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/mesto/mesto-api/internal/model"
)

// SignupRequest represents the request body for POST /signup.
// Profile fields are optional and fall back to defaults.
type SignupRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=30"`
	About    string `json:"about,omitempty" validate:"omitempty,min=2,max=30"`
	Avatar   string `json:"avatar,omitempty" validate:"omitempty,url,weburl"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Username string `json:"username" validate:"required,min=2,max=30,username"`
}

// SigninRequest represents the request body for POST /signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// UpdateProfileRequest represents the request body for PATCH /users/me.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=30"`
	About string `json:"about" validate:"required,min=2,max=30"`
}

// UpdateAvatarRequest represents the request body for PATCH /users/me/avatar.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,url,weburl"`
}

// UserResponse represents a user in API responses. It has no field that
// could carry an email or password hash.
type UserResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	About     string    `json:"about"`
	Avatar    string    `json:"avatar"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		About:     user.About,
		Avatar:    user.Avatar,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses converts a slice of users, never returning nil.
func ToUserResponses(users []*model.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
