package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrCourseNotFound      = errors.New("course not found")
)

type Achievement struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	Image       string
	Date        string
	Category    string `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Course struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	Image       string
	Instructor  string
	Level       string
	Duration    string
	Link        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CatalogDAO stores the simple listing entities: achievements and courses.
type CatalogDAO[T Achievement | Course] struct {
	db       *gorm.DB
	notFound error
}

func NewAchievementDAO(db *gorm.DB) *CatalogDAO[Achievement] {
	return &CatalogDAO[Achievement]{db: db, notFound: ErrAchievementNotFound}
}

func NewCourseDAO(db *gorm.DB) *CatalogDAO[Course] {
	return &CatalogDAO[Course]{db: db, notFound: ErrCourseNotFound}
}

func (d *CatalogDAO[T]) Insert(ctx context.Context, item T) (T, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		var zero T
		return zero, result.Error
	}

	return item, nil
}

func (d *CatalogDAO[T]) FindByID(ctx context.Context, id uint) (T, error) {
	var item T

	result := d.db.WithContext(ctx).First(&item, id)
	if result.Error != nil {
		var zero T
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return zero, d.notFound
		}

		return zero, result.Error
	}

	return item, nil
}

func (d *CatalogDAO[T]) FindAll(ctx context.Context) ([]T, error) {
	var items []T

	result := d.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// Update overwrites every column but the primary key and creation time.
func (d *CatalogDAO[T]) Update(ctx context.Context, id uint, item T) (T, error) {
	var zero T

	result := d.db.WithContext(ctx).Model(&zero).Where("id = ?", id).
		Select("*").Omit("ID", "CreatedAt").
		Updates(&item)
	if result.Error != nil {
		return zero, result.Error
	}
	if result.RowsAffected == 0 {
		return zero, d.notFound
	}

	return d.FindByID(ctx, id)
}

func (d *CatalogDAO[T]) Delete(ctx context.Context, id uint) (T, error) {
	item, err := d.FindByID(ctx, id)
	if err != nil {
		return item, err
	}

	if err = d.db.WithContext(ctx).Delete(&item).Error; err != nil {
		var zero T
		return zero, err
	}

	return item, nil
}
