package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tokens := newTokenManager()
	svc := NewAuthService(f.users, tokens)

	session, err := svc.Signup(ctx, domain.User{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "s3cretpass",
		Name:     "Ana",
		Role:     domain.RoleTopAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, session.User.Role, "signup never grants a privileged role")
	assert.Equal(t, 0, session.User.Score)
	assert.NotEqual(t, "s3cretpass", session.User.Password)

	claims, err := tokens.VerifyAccessToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)

	stored, err := f.users.FindByID(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, session.RefreshToken, stored.RefreshToken)

	for _, login := range []string{"ana@example.com", "ana"} {
		s, err := svc.Login(ctx, login, "s3cretpass")
		require.NoError(t, err, login)
		assert.Equal(t, session.User.ID, s.User.ID)
	}

	_, err = svc.Login(ctx, "ana", "wrongpass1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody", "s3cretpass")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_SignupDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewAuthService(f.users, newTokenManager())

	_, err := svc.Signup(ctx, domain.User{Username: "ana", Email: "ana@example.com", Password: "s3cretpass", Name: "Ana"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, domain.User{Username: "ana2", Email: "ana@example.com", Password: "s3cretpass", Name: "Ana"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	_, err = svc.Signup(ctx, domain.User{Username: "ana", Email: "other@example.com", Password: "s3cretpass", Name: "Ana"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestAuthService_RefreshReturnsMintedToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tokens := newTokenManager()
	svc := NewAuthService(f.users, tokens)

	session, err := svc.Signup(ctx, domain.User{Username: "ana", Email: "ana@example.com", Password: "s3cretpass", Name: "Ana"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, session.AccessToken, refreshed.AccessToken)

	claims, err := tokens.VerifyAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)

	_, err = svc.Refresh(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken, "an access token is not a refresh token")

	_, err = svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_LogoutRevokesRefresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewAuthService(f.users, newTokenManager())

	session, err := svc.Signup(ctx, domain.User{Username: "ana", Email: "ana@example.com", Password: "s3cretpass", Name: "Ana"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.User.ID))

	_, err = svc.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	again, err := svc.Login(ctx, "ana", "s3cretpass")
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken, "a superseded refresh token stays dead")
	_, err = svc.Refresh(ctx, again.RefreshToken)
	assert.NoError(t, err)
}
