package services

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/config"
	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/internal/utils"
	"github.com/planbase/planbase/pkg/response"
)

// AuthService handles registration, login and session lookup.
type AuthService struct {
	store     storage.Store
	jwtConfig *config.JWTConfig
	seeder    *SeedService
}

func NewAuthService(store storage.Store, jwtCfg *config.JWTConfig, seeder *SeedService) *AuthService {
	return &AuthService{store: store, jwtConfig: jwtCfg, seeder: seeder}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	ExpireAt time.Time    `json:"expireAt"`
}

// Register creates the user, their personal workspace organization, and seeds
// a sample project on first login so a fresh account is not empty.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*LoginResponse, error) {
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hashed,
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		if storage.IsDuplicateKey(err) {
			return nil, response.NewConflict("email already registered")
		}
		return nil, err
	}

	org, err := s.store.EnsureWorkspace(ctx, &user)
	if err != nil {
		return nil, err
	}

	if s.seeder != nil {
		if err := s.seeder.SeedSampleProject(ctx, &user, org); err != nil {
			// Sample data is a convenience; registration still succeeds.
			logSeedFailure(user.ID, err)
		}
	}

	return s.issueToken(&user)
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid email or password")
	}
	return s.issueToken(user)
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, response.NewUnauthorized("user not found")
		}
		return nil, err
	}
	return user, nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return response.NewBadRequest("incorrect old password")
	}
	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.store.UpdateUser(ctx, userID, storage.UserPatch{Password: &hashed})
	return err
}

func (s *AuthService) issueToken(user *models.User) (*LoginResponse, error) {
	hours := s.jwtConfig.ExpireHour
	if hours <= 0 {
		hours = 24
	}
	token, err := utils.GenerateToken(user.ID, user.Email, hours)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		Token:    token,
		User:     user,
		ExpireAt: time.Now().Add(time.Duration(hours) * time.Hour),
	}, nil
}
