package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
)

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.UserRole
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	// Login returns a signed access token; rememberMe stretches its
	// lifetime to the configured remember window.
	Login(ctx context.Context, email, password string, rememberMe bool) (*domain.User, string, error)
	// Logout revokes every token issued to the user before now.
	Logout(ctx context.Context, userID uuid.UUID) error
}
