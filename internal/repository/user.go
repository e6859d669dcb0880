package repository

import (
	"context"
	"fmt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

var (
	ErrUserEmailExists    = dao.ErrUserEmailExists
	ErrUserUsernameExists = dao.ErrUserUsernameExists
	ErrUserNotFound       = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByLogin(ctx context.Context, login string) (dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
	FindTopByScore(ctx context.Context, limit int) ([]dao.User, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (dao.User, error)
	UpdateRole(ctx context.Context, id uint, role string) (dao.User, error)
	SetRefreshToken(ctx context.Context, id uint, token string) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}

	created, err := r.dao.Insert(ctx, dao.User{
		Username: user.Username,
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
		Role:     string(role),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (domain.User, error) {
	found, err := r.dao.FindByLogin(ctx, login)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByLogin -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) FindTopByScore(ctx context.Context, limit int) ([]domain.User, error) {
	found, err := r.dao.FindTopByScore(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTopByScore -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (domain.User, error) {
	fields := map[string]any{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.AvatarURL != nil {
		fields["avatar_url"] = *update.AvatarURL
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.UpdateFields(ctx, id, fields)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role domain.Role) (domain.User, error) {
	updated, err := r.dao.UpdateRole(ctx, id, string(role))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateRole -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id uint, token string) error {
	if err := r.dao.SetRefreshToken(ctx, id, token); err != nil {
		return fmt.Errorf("r.dao.SetRefreshToken -> %w", err)
	}

	return nil
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	out := make([]domain.User, len(users))
	for i, u := range users {
		out[i] = r.daoToDomain(u)
	}
	return out
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	user := domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      domain.Role(u.Role),
		Score:     u.Score,
		Phone:     u.Phone,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.RefreshToken != nil {
		user.RefreshToken = *u.RefreshToken
	}

	return user
}
