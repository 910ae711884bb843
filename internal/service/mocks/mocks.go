package mocks

import (
	"context"

	"hallway-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByReferenceCode(ctx context.Context, referenceCode string) (*model.User, error) {
	args := m.Called(ctx, referenceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, search string) ([]*model.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) GetTopUsers(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LeaderboardEntry), args.Error(1)
}

func (m *MockUserRepository) AwardReferralPoints(ctx context.Context, referenceCode string, points int) (bool, error) {
	args := m.Called(ctx, referenceCode, points)
	return args.Bool(0), args.Error(1)
}

type MockWaitlistRepository struct {
	mock.Mock
}

func (m *MockWaitlistRepository) CreateWaitlistEntry(ctx context.Context, entry *model.WaitlistEntry) (*model.WaitlistEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) ListWaitlistEntries(ctx context.Context) ([]*model.WaitlistEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) GetWaitlistByReferralCode(ctx context.Context, referralCode string) ([]*model.WaitlistEntry, error) {
	args := m.Called(ctx, referralCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) UpdateWaitlistStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockWaitlistRepository) DeleteWaitlistEntry(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetAdminByUsername(ctx context.Context, username string) (*model.AdminCredential, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminCredential), args.Error(1)
}
