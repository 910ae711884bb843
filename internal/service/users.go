package service

import (
	"context"
	"errors"
	"fmt"

	"hallway-backend/internal/model"
	"hallway-backend/internal/repository"
	"hallway-backend/pkg/auth"

	"github.com/google/uuid"
)

const leaderboardLimit = 100

type UserService struct {
	users    UserRepository
	waitlist WaitlistRepository
	hasher   auth.PasswordHasher
}

func NewUserService(users UserRepository, waitlist WaitlistRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{
		users:    users,
		waitlist: waitlist,
		hasher:   hasher,
	}
}

// ProfileUpdate carries the fields a volunteer may change from the Settings
// page. Nil pointers leave the stored value untouched. Email and reference
// code are not self-editable.
type ProfileUpdate struct {
	FullName         *string
	Username         *string
	DateOfBirth      *string
	PresentAddress   *string
	PermanentAddress *string
	City             *string
	PostalCode       *string
	Country          *string
	Password         *string
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Username != nil {
		user.Username = update.Username
	}
	if update.DateOfBirth != nil {
		user.DateOfBirth = update.DateOfBirth
	}
	if update.PresentAddress != nil {
		user.PresentAddress = update.PresentAddress
	}
	if update.PermanentAddress != nil {
		user.PermanentAddress = update.PermanentAddress
	}
	if update.City != nil {
		user.City = update.City
	}
	if update.PostalCode != nil {
		user.PostalCode = update.PostalCode
	}
	if update.Country != nil {
		user.Country = update.Country
	}
	if update.Password != nil && *update.Password != "" {
		if len(*update.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
		}
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetLeaderboard(ctx context.Context) ([]*model.LeaderboardEntry, error) {
	entries, err := s.users.GetTopUsers(ctx, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}
	return entries, nil
}

func (s *UserService) GetReferrals(ctx context.Context, referenceCode string) ([]*model.WaitlistEntry, error) {
	entries, err := s.waitlist.GetWaitlistByReferralCode(ctx, referenceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals: %w", err)
	}
	return entries, nil
}
