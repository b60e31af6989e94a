package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tickly/internal/config"
	"tickly/internal/domain"
	"tickly/internal/mocks"
	"tickly/internal/service/auth"
)

func newAuthService() (auth.Service, *mocks.UserRepository) {
	userRepo := new(mocks.UserRepository)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	return auth.NewService(userRepo, cfg), userRepo
}

func hashedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{ID: 7, Login: "ada", Password: string(hashed)}
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc, userRepo := newAuthService()
	ctx := context.Background()

	userRepo.On("GetByLogin", ctx, "ghost").Return(nil, nil).Once()

	_, err := svc.Login(ctx, domain.LoginInput{Login: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, userRepo := newAuthService()
	ctx := context.Background()

	userRepo.On("GetByLogin", ctx, "ada").Return(hashedUser(t, "correct horse"), nil).Once()

	_, err := svc.Login(ctx, domain.LoginInput{Login: "ada", Password: "battery staple"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_LoginIssuesValidToken(t *testing.T) {
	svc, userRepo := newAuthService()
	ctx := context.Background()

	userRepo.On("GetByLogin", ctx, "ada").Return(hashedUser(t, "correct horse"), nil).Once()

	session, err := svc.Login(ctx, domain.LoginInput{Login: "ada", Password: "correct horse"})
	require.NoError(t, err)
	require.NotNil(t, session.User)
	assert.NotEmpty(t, session.Token)
	assert.Greater(t, session.Expire, time.Now().Unix())

	claims, err := svc.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "ada", claims.Login)
}

func TestAuthService_ValidateTokenRejectsTampering(t *testing.T) {
	svc, userRepo := newAuthService()
	ctx := context.Background()

	userRepo.On("GetByLogin", ctx, "ada").Return(hashedUser(t, "correct horse"), nil).Once()

	session, err := svc.Login(ctx, domain.LoginInput{Login: "ada", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(session.Token + "x")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
