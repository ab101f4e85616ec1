package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesto/mesto-api/internal/handler/dto"
	"github.com/mesto/mesto-api/internal/service"
	"github.com/mesto/mesto-api/internal/validate"
)

// usernameRule validates the {username} path parameter. It matches the
// rule applied at signup.
const usernameRule = "required,min=2,max=30,username"

// UserHandler handles account and profile endpoints.
type UserHandler struct {
	users     *service.UserService
	validator *validate.Validator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, validator *validate.Validator) *UserHandler {
	return &UserHandler{users: users, validator: validator}
}

// Signup registers an account and returns a token for it.
// POST /signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) error {
	var req dto.SignupRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		return err
	}

	res, err := h.users.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		About:    req.About,
		Avatar:   req.Avatar,
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Token: res.Token,
		User:  dto.ToUserResponse(res.User),
	})
	return nil
}

// Signin exchanges credentials for a token.
// POST /signin
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) error {
	var req dto.SigninRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		return err
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token: res.Token,
		User:  dto.ToUserResponse(res.User),
	})
	return nil
}

// List returns every user.
// GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.users.List(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponses(users))
	return nil
}

// Me returns the authenticated user.
// GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) error {
	userID, err := currentUserID(r)
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
	return nil
}

// GetByUsername returns a user by username.
// GET /users/{username}
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) error {
	username := chi.URLParam(r, "username")
	if err := h.validator.Var(validate.SourceParams, "username", username, usernameRule); err != nil {
		return err
	}

	user, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
	return nil
}

// UpdateProfile changes the caller's name and about.
// PATCH /users/me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) error {
	userID, err := currentUserID(r)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, req.Name, req.About)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
	return nil
}

// UpdateAvatar changes the caller's avatar.
// PATCH /users/me/avatar
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) error {
	userID, err := currentUserID(r)
	if err != nil {
		return err
	}

	var req dto.UpdateAvatarRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateAvatar(r.Context(), userID, req.Avatar)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
	return nil
}
