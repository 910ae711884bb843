package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"hallway-backend/internal/model"
	"hallway-backend/internal/repository"
	"hallway-backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/google/uuid"
)

// ReferralReward is the number of points credited to a referrer for each
// waitlist signup carrying their reference code.
const ReferralReward = 10

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type WaitlistService struct {
	waitlist WaitlistRepository
	users    UserRepository
}

func NewWaitlistService(waitlist WaitlistRepository, users UserRepository) *WaitlistService {
	return &WaitlistService{
		waitlist: waitlist,
		users:    users,
	}
}

// Signup records an email on the waitlist and, when a referral code is
// attached, credits the referrer. The point award is a side effect: a dangling
// code or a failed update is logged and never fails the signup.
func (s *WaitlistService) Signup(ctx context.Context, email, referralCode string) (*model.WaitlistEntry, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !emailRegexp.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	referralCode = strings.TrimSpace(referralCode)

	entry := &model.WaitlistEntry{
		ID:     uuid.New(),
		Email:  email,
		Status: model.WaitlistStatusPending,
	}
	if referralCode != "" {
		entry.ReferralCode = &referralCode
	}

	created, err := s.waitlist.CreateWaitlistEntry(ctx, entry)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create waitlist entry: %w", err)
	}

	if referralCode != "" {
		log := logger.Logger()

		awarded, err := s.users.AwardReferralPoints(ctx, referralCode, ReferralReward)
		switch {
		case err != nil:
			log.Error("failed to award referral points",
				zap.Error(err),
				zap.String("referral_code", referralCode))
		case !awarded:
			log.Info("no user found for referral code",
				zap.String("referral_code", referralCode))
		default:
			log.Info("awarded referral points",
				zap.String("referral_code", referralCode),
				zap.Int("points", ReferralReward))
		}
	}

	return created, nil
}
