package model

import (
	"time"

	"github.com/google/uuid"
)

const DefaultLevel = "Support Volunteer"

type User struct {
	ID               uuid.UUID
	ReferenceCode    string
	Email            string
	FullName         string
	PasswordHash     string
	Username         *string
	DateOfBirth      *string
	PresentAddress   *string
	PermanentAddress *string
	City             *string
	PostalCode       *string
	Country          *string
	Level            string
	Verified         bool

	AccumulatedPoints int
	DeductedPoints    int
	TotalPoints       int
	PendingPoints     int

	CreatedAt time.Time
}

// PublicUser is the projection returned to clients. The credential hash
// never leaves the server.
type PublicUser struct {
	ID            uuid.UUID `json:"id"`
	ReferenceCode string    `json:"referenceCode"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		ReferenceCode: u.ReferenceCode,
		Email:         u.Email,
		FullName:      u.FullName,
	}
}

type LeaderboardEntry struct {
	FullName    string
	TotalPoints int
	Verified    bool
	Level       string
}
