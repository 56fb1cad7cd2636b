package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleManager  UserRole = "MANAGER"
	RoleResident UserRole = "RESIDENT"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
