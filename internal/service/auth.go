package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hallway-backend/internal/model"
	"hallway-backend/internal/repository"
	"hallway-backend/pkg/auth"
)

type AuthService struct {
	users  UserRepository
	admins AdminRepository
	hasher auth.PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(users UserRepository, admins AdminRepository, hasher auth.PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		admins: admins,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login authenticates a volunteer by reference code and password. An unknown
// code and a wrong password both map to ErrInvalidCredentials so the response
// never reveals which reference codes exist.
func (s *AuthService) Login(ctx context.Context, referenceCode, password string) (*model.User, string, error) {
	referenceCode = strings.TrimSpace(referenceCode)
	if referenceCode == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.GetUserByReferenceCode(ctx, referenceCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user by reference code: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(auth.Claims{
		UserID:        user.ID,
		ReferenceCode: user.ReferenceCode,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          auth.RoleVolunteer,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	return user, token, nil
}

// AdminLogin authenticates a Control Room operator against admin_credentials.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	admin, err := s.admins.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get admin credentials: %w", err)
	}

	if err := s.hasher.Compare(admin.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(auth.Claims{
		UserID:   admin.ID,
		FullName: admin.Username,
		Role:     auth.RoleAdmin,
	})
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	return token, nil
}
