package service

import (
	"context"
	"errors"

	"hallway-backend/internal/model"
	"hallway-backend/pkg/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEntryNotFound      = errors.New("waitlist entry not found")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailRequired      = errors.New("email is required")
	ErrAlreadyRegistered  = errors.New("email already exists in waitlist")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidStatus      = errors.New("invalid waitlist status")
)

type Service struct {
	*AuthService
	*WaitlistService
	*UserService
	*AdminService
}

func NewService(authService *AuthService, waitlistService *WaitlistService, userService *UserService, adminService *AdminService) *Service {
	return &Service{
		AuthService:     authService,
		WaitlistService: waitlistService,
		UserService:     userService,
		AdminService:    adminService,
	}
}

type AuthServiceI interface {
	Login(ctx context.Context, referenceCode, password string) (*model.User, string, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
}

type WaitlistServiceI interface {
	Signup(ctx context.Context, email, referralCode string) (*model.WaitlistEntry, error)
}

type UserServiceI interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*model.User, error)
	GetLeaderboard(ctx context.Context) ([]*model.LeaderboardEntry, error)
	GetReferrals(ctx context.Context, referenceCode string) ([]*model.WaitlistEntry, error)
}

type AdminServiceI interface {
	ListUsers(ctx context.Context, search string) ([]*model.User, error)
	CreateUser(ctx context.Context, input NewUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UserUpdateInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListWaitlist(ctx context.Context) ([]*model.WaitlistEntry, error)
	UpdateWaitlistStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteWaitlistEntry(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByReferenceCode(ctx context.Context, referenceCode string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, search string) ([]*model.User, error)
	GetTopUsers(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error)
	AwardReferralPoints(ctx context.Context, referenceCode string, points int) (bool, error)
}

type WaitlistRepository interface {
	CreateWaitlistEntry(ctx context.Context, entry *model.WaitlistEntry) (*model.WaitlistEntry, error)
	ListWaitlistEntries(ctx context.Context) ([]*model.WaitlistEntry, error)
	GetWaitlistByReferralCode(ctx context.Context, referralCode string) ([]*model.WaitlistEntry, error)
	UpdateWaitlistStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteWaitlistEntry(ctx context.Context, id uuid.UUID) error
}

type AdminRepository interface {
	GetAdminByUsername(ctx context.Context, username string) (*model.AdminCredential, error)
}

// TokenIssuer creates signed session credentials for authenticated principals.
type TokenIssuer interface {
	IssueToken(claims auth.Claims) (string, error)
}
