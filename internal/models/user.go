package models

import (
	"time"

	"github.com/google/uuid"
)

// user roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is user entity
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}

// TokenPayload is the authenticated identity carried by the auth token.
type TokenPayload struct {
	UserID uuid.UUID
	Role   string
}
