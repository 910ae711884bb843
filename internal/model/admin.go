package model

import "github.com/google/uuid"

type AdminCredential struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
}
