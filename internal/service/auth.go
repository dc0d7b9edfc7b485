package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"eggslist/internal/auth"
	"eggslist/internal/model"
	"eggslist/internal/repository"
)

// LoginInput is the sign-in payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID  int64
	IsStaff bool
}

// AuthService signs users in and resolves access tokens.
type AuthService interface {
	// Login checks the credentials and returns a signed access token.
	Login(ctx context.Context, in LoginInput) (string, error)
	// Verify resolves a token to its principal. Staff status is read from the
	// stored user, so demotions and deletions apply to tokens already issued.
	Verify(ctx context.Context, token string) (*Principal, error)
	// EnsureSuperuser creates a staff account unless email is empty or already registered.
	EnsureSuperuser(ctx context.Context, email, password string) error
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, logger *zap.Logger) AuthService {
	return &authService{users: users, tokens: tokens, logger: logger}
}

func (s *authService) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := validateStruct(in); err != nil {
		return "", err
	}
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.CheckPasswordHash(in.Password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Generate(u.ID, u.IsStaff)
}

func (s *authService) Verify(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d no longer exists", auth.ErrInvalidToken, claims.UserID)
		}
		return nil, fmt.Errorf("load token user: %w", err)
	}
	return &Principal{UserID: u.ID, IsStaff: u.IsStaff}, nil
}

func (s *authService) EnsureSuperuser(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check superuser: %w", err)
	}
	if exists {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash superuser password: %w", err)
	}
	u, err := s.users.Create(ctx, &model.User{Email: email, PasswordHash: hash, IsStaff: true})
	if err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}
	s.logger.Info("superuser created", zap.Int64("user_id", u.ID), zap.String("email", u.Email))
	return nil
}
