package service

import (
	"errors"
	"fmt"

	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/repository"
	"github.com/podhaven/podhaven-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account registration and token issuance
type AuthService interface {
	Register(req *domain.RegisterRequest) (*domain.UserResponse, error)
	Login(req *domain.LoginRequest) (*domain.TokenPair, error)
	Refresh(refreshToken string) (*domain.TokenPair, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtMgr   *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtMgr *jwt.Manager) AuthService {
	return &authService{userRepo: userRepo, jwtMgr: jwtMgr}
}

func (s *authService) Register(req *domain.RegisterRequest) (*domain.UserResponse, error) {
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %w", err)
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Level:        1,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// A missing account and a wrong password both come back as
// ErrInvalidCredentials so the response does not leak which one it was.
func (s *authService) Login(req *domain.LoginRequest) (*domain.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if errors.Is(err, common.ErrUserNotFound) {
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair
func (s *authService) Refresh(refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtMgr.VerifyToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, common.ErrExpiredToken
		}
		return nil, common.ErrInvalidToken
	}

	// Re-read the account so a deleted user or changed level cannot keep
	// minting tokens from an old refresh token
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (*domain.TokenPair, error) {
	access, err := s.jwtMgr.GenerateToken(user.ID, user.Email, user.Level)
	if err != nil {
		return nil, fmt.Errorf("access token generation failed: %w", err)
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("refresh token generation failed: %w", err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
