package service

import (
	"context"
	"testing"
	"time"

	"hallway-backend/internal/model"
	"hallway-backend/internal/repository"
	"hallway-backend/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWaitlistService_Signup(t *testing.T) {
	code := "HW26ZXCG"

	tests := []struct {
		name          string
		email         string
		referralCode  string
		mockSetup     func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository)
		expectedError error
		checkEntry    func(*testing.T, *model.WaitlistEntry)
	}{
		{
			name:          "Missing email",
			email:         "",
			mockSetup:     func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository) {},
			expectedError: ErrEmailRequired,
		},
		{
			name:          "Malformed email",
			email:         "not-an-email",
			mockSetup:     func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository) {},
			expectedError: ErrInvalidEmail,
		},
		{
			name:          "Email without domain dot",
			email:         "user@localhost",
			mockSetup:     func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository) {},
			expectedError: ErrInvalidEmail,
		},
		{
			name:  "Valid email without referral code",
			email: "jane@example.com",
			mockSetup: func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository) {
				waitlist.On("CreateWaitlistEntry", mock.Anything, mock.MatchedBy(func(e *model.WaitlistEntry) bool {
					return e.Email == "jane@example.com" &&
						e.ReferralCode == nil &&
						e.Status == model.WaitlistStatusPending
				})).Return(&model.WaitlistEntry{
					ID:        uuid.New(),
					Email:     "jane@example.com",
					Status:    model.WaitlistStatusPending,
					CreatedAt: time.Now(),
				}, nil)
			},
			checkEntry: func(t *testing.T, entry *model.WaitlistEntry) {
				assert.Equal(t, "jane@example.com", entry.Email)
				assert.Equal(t, model.WaitlistStatusPending, entry.Status)
				assert.Nil(t, entry.ReferralCode)
			},
		},
		{
			name:  "Duplicate email",
			email: "dup@example.com",
			mockSetup: func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository) {
				waitlist.On("CreateWaitlistEntry", mock.Anything, mock.Anything).
					Return(nil, repository.ErrAlreadyExists)
			},
			expectedError: ErrAlreadyRegistered,
		},
		{
			name:         "Referral code awards points",
			email:        "ref@example.com",
			referralCode: code,
			mockSetup: func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository) {
				waitlist.On("CreateWaitlistEntry", mock.Anything, mock.MatchedBy(func(e *model.WaitlistEntry) bool {
					return e.ReferralCode != nil && *e.ReferralCode == code
				})).Return(&model.WaitlistEntry{
					ID:           uuid.New(),
					Email:        "ref@example.com",
					ReferralCode: &code,
					Status:       model.WaitlistStatusPending,
					CreatedAt:    time.Now(),
				}, nil)
				users.On("AwardReferralPoints", mock.Anything, code, ReferralReward).
					Return(true, nil)
			},
			checkEntry: func(t *testing.T, entry *model.WaitlistEntry) {
				require.NotNil(t, entry.ReferralCode)
				assert.Equal(t, code, *entry.ReferralCode)
			},
		},
		{
			name:         "Referral code is trimmed",
			email:        "trim@example.com",
			referralCode: "  " + code + "  ",
			mockSetup: func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository) {
				waitlist.On("CreateWaitlistEntry", mock.Anything, mock.MatchedBy(func(e *model.WaitlistEntry) bool {
					return e.ReferralCode != nil && *e.ReferralCode == code
				})).Return(&model.WaitlistEntry{
					ID:           uuid.New(),
					Email:        "trim@example.com",
					ReferralCode: &code,
					Status:       model.WaitlistStatusPending,
				}, nil)
				users.On("AwardReferralPoints", mock.Anything, code, ReferralReward).
					Return(true, nil)
			},
		},
		{
			name:         "Whitespace-only referral code treated as absent",
			email:        "blank@example.com",
			referralCode: "   ",
			mockSetup: func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository) {
				waitlist.On("CreateWaitlistEntry", mock.Anything, mock.MatchedBy(func(e *model.WaitlistEntry) bool {
					return e.ReferralCode == nil
				})).Return(&model.WaitlistEntry{
					ID:     uuid.New(),
					Email:  "blank@example.com",
					Status: model.WaitlistStatusPending,
				}, nil)
			},
		},
		{
			name:         "Dangling referral code still succeeds",
			email:        "dangling@example.com",
			referralCode: "NOPE1234",
			mockSetup: func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository) {
				danglingCode := "NOPE1234"
				waitlist.On("CreateWaitlistEntry", mock.Anything, mock.Anything).
					Return(&model.WaitlistEntry{
						ID:           uuid.New(),
						Email:        "dangling@example.com",
						ReferralCode: &danglingCode,
						Status:       model.WaitlistStatusPending,
					}, nil)
				users.On("AwardReferralPoints", mock.Anything, "NOPE1234", ReferralReward).
					Return(false, nil)
			},
		},
		{
			name:         "Point award failure never fails the signup",
			email:        "sideeffect@example.com",
			referralCode: code,
			mockSetup: func(waitlist *mocks.MockWaitlistRepository, users *mocks.MockUserRepository) {
				waitlist.On("CreateWaitlistEntry", mock.Anything, mock.Anything).
					Return(&model.WaitlistEntry{
						ID:           uuid.New(),
						Email:        "sideeffect@example.com",
						ReferralCode: &code,
						Status:       model.WaitlistStatusPending,
					}, nil)
				users.On("AwardReferralPoints", mock.Anything, code, ReferralReward).
					Return(false, assert.AnError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWaitlist := &mocks.MockWaitlistRepository{}
			mockUsers := &mocks.MockUserRepository{}
			tt.mockSetup(mockWaitlist, mockUsers)

			service := NewWaitlistService(mockWaitlist, mockUsers)
			entry, err := service.Signup(context.Background(), tt.email, tt.referralCode)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, entry)
			} else {
				require.NoError(t, err)
				require.NotNil(t, entry)
				if tt.checkEntry != nil {
					tt.checkEntry(t, entry)
				}
			}

			mockWaitlist.AssertExpectations(t)
			mockUsers.AssertExpectations(t)
		})
	}
}

// Each signup carrying the same code issues its own atomic increment, so two
// signups always add up to two rewards.
func TestWaitlistService_Signup_RepeatedReferralsAccumulate(t *testing.T) {
	code := "HW26ZXCG"

	mockWaitlist := &mocks.MockWaitlistRepository{}
	mockUsers := &mocks.MockUserRepository{}

	mockWaitlist.On("CreateWaitlistEntry", mock.Anything, mock.Anything).
		Return(&model.WaitlistEntry{
			ID:           uuid.New(),
			ReferralCode: &code,
			Status:       model.WaitlistStatusPending,
		}, nil).Twice()
	mockUsers.On("AwardReferralPoints", mock.Anything, code, ReferralReward).
		Return(true, nil).Twice()

	service := NewWaitlistService(mockWaitlist, mockUsers)

	_, err := service.Signup(context.Background(), "first@example.com", code)
	require.NoError(t, err)
	_, err = service.Signup(context.Background(), "second@example.com", code)
	require.NoError(t, err)

	mockUsers.AssertNumberOfCalls(t, "AwardReferralPoints", 2)
}
