package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	WaitlistStatusPending  = "pending"
	WaitlistStatusVerified = "verified"
)

type WaitlistEntry struct {
	ID           uuid.UUID
	Email        string
	ReferralCode *string
	Status       string
	CreatedAt    time.Time
}
