package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hallway-backend/internal/model"
	"hallway-backend/internal/repository"
	"hallway-backend/pkg/auth"

	"github.com/google/uuid"
)

const minPasswordLength = 6

type AdminService struct {
	users    UserRepository
	waitlist WaitlistRepository
	hasher   auth.PasswordHasher
}

func NewAdminService(users UserRepository, waitlist WaitlistRepository, hasher auth.PasswordHasher) *AdminService {
	return &AdminService{
		users:    users,
		waitlist: waitlist,
		hasher:   hasher,
	}
}

// NewUserInput is the Control Room create-user form.
type NewUserInput struct {
	FullName         string
	Email            string
	Password         string
	ReferenceCode    string
	Username         *string
	DateOfBirth      *string
	PresentAddress   *string
	PermanentAddress *string
	City             *string
	PostalCode       *string
	Country          *string
	Level            string
	Verified         bool
}

// UserUpdateInput is the Control Room edit-user form. An empty Password keeps
// the stored credential.
type UserUpdateInput struct {
	FullName         string
	Email            string
	ReferenceCode    string
	Password         string
	Username         *string
	DateOfBirth      *string
	PresentAddress   *string
	PermanentAddress *string
	City             *string
	PostalCode       *string
	Country          *string
	Level            string
	Verified         bool
}

func (in *NewUserInput) validate() error {
	if in.FullName == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !emailRegexp.MatchString(in.Email) {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if in.ReferenceCode == "" {
		return fmt.Errorf("%w: reference code is required", ErrValidation)
	}
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context, search string) ([]*model.User, error) {
	users, err := s.users.ListUsers(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *AdminService) CreateUser(ctx context.Context, input NewUserInput) (*model.User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	level := input.Level
	if level == "" {
		level = model.DefaultLevel
	}

	user := &model.User{
		ID:               uuid.New(),
		ReferenceCode:    input.ReferenceCode,
		Email:            input.Email,
		FullName:         input.FullName,
		PasswordHash:     hash,
		Username:         input.Username,
		DateOfBirth:      input.DateOfBirth,
		PresentAddress:   input.PresentAddress,
		PermanentAddress: input.PermanentAddress,
		City:             input.City,
		PostalCode:       input.PostalCode,
		Country:          input.Country,
		Level:            level,
		Verified:         input.Verified,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id uuid.UUID, input UserUpdateInput) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.FullName = input.FullName
	user.Email = input.Email
	user.ReferenceCode = input.ReferenceCode
	user.Username = input.Username
	user.DateOfBirth = input.DateOfBirth
	user.PresentAddress = input.PresentAddress
	user.PermanentAddress = input.PermanentAddress
	user.City = input.City
	user.PostalCode = input.PostalCode
	user.Country = input.Country
	user.Verified = input.Verified
	if input.Level != "" {
		user.Level = input.Level
	}

	if input.Password != "" {
		if len(input.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
		}
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := s.users.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *AdminService) ListWaitlist(ctx context.Context) ([]*model.WaitlistEntry, error) {
	entries, err := s.waitlist.ListWaitlistEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist entries: %w", err)
	}
	return entries, nil
}

func (s *AdminService) UpdateWaitlistStatus(ctx context.Context, id uuid.UUID, status string) error {
	if status != model.WaitlistStatusPending && status != model.WaitlistStatusVerified {
		return ErrInvalidStatus
	}

	err := s.waitlist.UpdateWaitlistStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("failed to update waitlist status: %w", err)
	}
	return nil
}

func (s *AdminService) DeleteWaitlistEntry(ctx context.Context, id uuid.UUID) error {
	err := s.waitlist.DeleteWaitlistEntry(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("failed to delete waitlist entry: %w", err)
	}
	return nil
}
