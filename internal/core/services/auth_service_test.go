package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/smartentrance/backend/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthService, *fakeUserRepo, ports.TokenRevoker) {
	users := newFakeUserRepo()
	revoker := NewRevocationService(newFakeRevocationRepo(), time.Hour)
	return NewAuthService(users, revoker, []byte("test-secret"), time.Hour), users, revoker
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, ports.RegisterInput{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleResident, user.Role)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	loggedIn, token2, err := svc.Login(ctx, "ana@example.com", "s3cret", false)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token2)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong", false)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret", false)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, ports.RegisterInput{Email: "b@example.com", Password: "pw"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, ports.RegisterInput{Email: "b@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAccessTokenClaims(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, ports.RegisterInput{
		Email:    "c@example.com",
		Password: "pw",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)

	sub, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), sub)
	assert.Equal(t, "MANAGER", claims["role"])

	issuedAt, err := claims.GetIssuedAt()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), issuedAt.Time, time.Minute)
}

func TestLogout_RevokesOutstandingTokens(t *testing.T) {
	svc, _, revoker := newAuthFixture()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, ports.RegisterInput{Email: "d@example.com", Password: "pw"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	issuedAt, err := parsed.Claims.(jwt.MapClaims).GetIssuedAt()
	require.NoError(t, err)

	assert.False(t, revoker.IsRevoked(user.ID, issuedAt.Time))

	// iat has second resolution; make sure the revocation instant lands after it
	time.Sleep(1100 * time.Millisecond)
	require.NoError(t, svc.Logout(ctx, user.ID))

	assert.True(t, revoker.IsRevoked(user.ID, issuedAt.Time))
}
