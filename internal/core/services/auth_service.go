package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/smartentrance/backend/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenLifetime = 24 * time.Hour

type AuthService struct {
	userRepo       ports.UserRepository
	revoker        ports.TokenRevoker
	jwtSecret      []byte
	rememberWindow time.Duration
}

func NewAuthService(userRepo ports.UserRepository, revoker ports.TokenRevoker, jwtSecret []byte, rememberWindow time.Duration) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		revoker:        revoker,
		jwtSecret:      jwtSecret,
		rememberWindow: rememberWindow,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if existing != nil {
		return nil, "", domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleResident
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateAccessToken(user, accessTokenLifetime)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	lifetime := accessTokenLifetime
	if rememberMe {
		lifetime = s.rememberWindow
	}

	token, err := s.generateAccessToken(user, lifetime)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return user, token, nil
}

// Logout invalidates every token the user holds by recording a
// revocation instant; tokens minted afterwards stay valid.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.revoker.Revoke(ctx, userID)
}

func (s *AuthService) generateAccessToken(user *domain.User, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   now.Add(lifetime).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
