package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	repository "github.com/doffpett/evhenter/internal/database/postgres"
	"github.com/doffpett/evhenter/internal/entity"
	"github.com/doffpett/evhenter/pkg/token"
)

const bcryptCost = 12

type authService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, strings.ToLower(req.Email), string(hash), req.Name)
	if err != nil {
		return nil, "", err
	}

	tokenStr, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, tokenStr, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, "", entity.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", entity.ErrInactiveAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logrus.WithError(err).Warn("failed to update last login timestamp")
	}

	tokenStr, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, tokenStr, nil
}

func (s *authService) Authenticate(ctx context.Context, tokenStr string) (*entity.User, error) {
	if tokenStr == "" {
		return nil, entity.ErrNoToken
	}

	claims, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return nil, entity.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, entity.ErrInactiveAccount
	}

	return user, nil
}
