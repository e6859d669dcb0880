package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

var (
	ErrUserNotFound        = repository.ErrUserNotFound
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidRole         = errors.New("invalid role")
	ErrSelfRoleChange      = errors.New("you cannot change your own role")
	ErrForbiddenRoleChange = errors.New("only a top admin can grant or revoke admin roles")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindTopByScore(ctx context.Context, limit int) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (domain.User, error)
	UpdateRole(ctx context.Context, id uint, role domain.Role) (domain.User, error)
}

type UserService struct {
	repo   UserRepository
	images ImageRemover
}

func NewUserService(repo UserRepository, images ImageRemover) *UserService {
	return &UserService{
		repo:   repo,
		images: images,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

// Leaderboard returns the public profiles of the highest scoring members.
func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]domain.PublicProfile, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	users, err := s.repo.FindTopByScore(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTopByScore -> %w", err)
	}

	profiles := make([]domain.PublicProfile, len(users))
	for i, u := range users {
		profiles[i] = u.Public()
	}
	return profiles, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (domain.User, error) {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.UpdateProfile(ctx, id, update)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	if before.AvatarURL != updated.AvatarURL {
		removeImages(ctx, s.images, before.AvatarURL)
	}

	return updated, nil
}

// ChangeRole sets the role of target on behalf of actor. The actor's role is
// read from the store, never from its token.
func (s *UserService) ChangeRole(ctx context.Context, actorID, targetID uint, role domain.Role) (domain.User, error) {
	if !role.Valid() {
		return domain.User{}, ErrInvalidRole
	}

	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !actor.Role.IsAdmin() {
		return domain.User{}, ErrPermissionDenied
	}
	if actorID == targetID {
		return domain.User{}, ErrSelfRoleChange
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if (role.IsAdmin() || target.Role.IsAdmin()) && actor.Role != domain.RoleTopAdmin {
		return domain.User{}, ErrForbiddenRoleChange
	}

	updated, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateRole -> %w", err)
	}

	return updated, nil
}
