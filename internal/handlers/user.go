package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/users"
	"go.uber.org/zap"
)

// UserHandler serves registration, login and the profile endpoint.
type UserHandler struct {
	users  *users.Service
	logger *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service *users.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: service, logger: logger}
}

func (h *UserHandler) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	user, err := h.users.Register(ctx, users.RegisterInput{
		FirstName:   req.Body.FirstName,
		LastName:    req.Body.LastName,
		Email:       req.Body.Email,
		Password:    req.Body.Password,
		Address:     req.Body.Address,
		PhoneNumber: req.Body.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, huma.Error409Conflict("User already exists")
		}

		h.logger.Error("register failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("Server error")
	}

	resp := &RegisterResponse{}
	resp.Body.Message = "User registered successfully"
	resp.Body.UserID = user.ID.String()

	return resp, nil
}

func (h *UserHandler) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	session, err := h.users.Login(ctx, req.Body.Email, req.Body.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			return nil, huma.Error401Unauthorized("Invalid email or password")
		}

		h.logger.Error("login failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("Server error")
	}

	resp := &LoginResponse{}
	resp.Body.Message = "Login successful"
	resp.Body.Token = session.Token
	resp.Body.User = toUserView(session.User)

	return resp, nil
}

func (h *UserHandler) Profile(ctx context.Context, _ *struct{}) (*ProfileResponse, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := h.users.Profile(ctx, owner)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, huma.Error404NotFound("User not found")
		}

		h.logger.Error("profile lookup failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("Server error")
	}

	resp := &ProfileResponse{}
	resp.Body.Message = "User profile retrieved successfully"
	resp.Body.Results = toUserView(user)

	return resp, nil
}

func toUserView(user *users.User) UserView {
	return UserView{
		ID:          user.ID.String(),
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Address:     user.Address,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
	}
}
