package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lojinha-dev/lojinha/internal/auth"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     models.Role
}

type AuthService struct {
	users  UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register stores a new user. A taken email yields store.ErrDuplicate, whether
// it is caught by the lookup or by the unique index on a concurrent insert.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := normalizeEmail(in.Email)

	_, err := s.users.FindByEmail(ctx, email)

	if err == nil {
		return nil, store.ErrDuplicate
	}

	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	passwordHash, err := auth.HashPassword(in.Password)

	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login returns a signed token for valid credentials and ErrInvalidCredentials otherwise.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(*user)

	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
