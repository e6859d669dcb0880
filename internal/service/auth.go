package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/pkg/jwthelper"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
)

var (
	ErrUserEmailExists     = repository.ErrUserEmailExists
	ErrUsernameExists      = repository.ErrUserUsernameExists
	ErrWrongPassword       = errors.New("wrong password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByLogin(ctx context.Context, login string) (domain.User, error)
	SetRefreshToken(ctx context.Context, id uint, token string) error
}

type TokenIssuer interface {
	IssueAccessToken(userID uint, role string) (string, error)
	IssueRefreshToken(userID uint, role string) (string, error)
	VerifyRefreshToken(token string) (*jwthelper.Claims, error)
}

// Session is the result of a successful signup, login or refresh.
type Session struct {
	User         domain.User
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	repo   AuthUserRepository
	tokens TokenIssuer
}

func NewAuthService(repo AuthUserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
	}
}

// Signup creates a member account and opens a session for it.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (Session, error) {
	hash, err := hashPassword(user.Password)
	if err != nil {
		return Session{}, err
	}
	user.Password = hash
	user.Role = domain.RoleUser
	user.Score = 0

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return Session{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return s.openSession(ctx, created)
}

// Login accepts either the email or the username as login.
func (s *AuthService) Login(ctx context.Context, login, password string) (Session, error) {
	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Session{}, ErrUserNotFound
		}

		return Session{}, fmt.Errorf("s.repo.FindByLogin -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return Session{}, ErrWrongPassword
	}

	return s.openSession(ctx, user)
}

// Refresh mints a new access token from a refresh token that is both valid
// and still the one stored for its user. The refresh token is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, ErrInvalidRefreshToken
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return Session{}, ErrInvalidRefreshToken
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Session{}, ErrInvalidRefreshToken
		}

		return Session{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return Session{}, ErrInvalidRefreshToken
	}

	access, err := s.tokens.IssueAccessToken(user.ID, string(user.Role))
	if err != nil {
		return Session{}, fmt.Errorf("s.tokens.IssueAccessToken -> %w", err)
	}

	return Session{User: user, AccessToken: access, RefreshToken: refreshToken}, nil
}

// Logout forgets the stored refresh token so it can no longer be used.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.repo.SetRefreshToken(ctx, userID, ""); err != nil {
		return fmt.Errorf("s.repo.SetRefreshToken -> %w", err)
	}

	return nil
}

func (s *AuthService) openSession(ctx context.Context, user domain.User) (Session, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, string(user.Role))
	if err != nil {
		return Session{}, fmt.Errorf("s.tokens.IssueAccessToken -> %w", err)
	}

	refresh, err := s.tokens.IssueRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return Session{}, fmt.Errorf("s.tokens.IssueRefreshToken -> %w", err)
	}

	if err = s.repo.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return Session{}, fmt.Errorf("s.repo.SetRefreshToken -> %w", err)
	}
	user.RefreshToken = refresh

	return Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
