package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUserEmailExists    = errors.New("user already exists")
	ErrUserUsernameExists = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name      string `gorm:"not null"`
	Role      string `gorm:"not null;default:user;index"` // "user", "admin" or "top_admin"
	Score     int    `gorm:"not null;default:0"`
	Phone     string
	Bio       string
	AvatarURL string

	RefreshToken *string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		if violates(result.Error, "username") {
			return User{}, ErrUserUsernameExists
		}
		if violates(result.Error, "email") {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	return d.findOne(ctx, "email = ?", email)
}

// FindByLogin matches either the email or the username.
func (d *UserDAO) FindByLogin(ctx context.Context, login string) (User, error) {
	return d.findOne(ctx, "email = ? OR username = ?", login, login)
}

func (d *UserDAO) findOne(ctx context.Context, query string, args ...any) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Where(query, args...).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindAll(ctx context.Context) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) FindTopByScore(ctx context.Context, limit int) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Order("score DESC").Order("id").Limit(limit).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// UpdateFields writes the given columns. Zero values are written too.
func (d *UserDAO) UpdateFields(ctx context.Context, id uint, fields map[string]any) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *UserDAO) UpdateRole(ctx context.Context, id uint, role string) (User, error) {
	return d.UpdateFields(ctx, id, map[string]any{"role": role})
}

// SetRefreshToken stores the current refresh token. An empty token clears it.
func (d *UserDAO) SetRefreshToken(ctx context.Context, id uint, token string) error {
	var value any
	if token != "" {
		value = token
	}

	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("refresh_token", value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
