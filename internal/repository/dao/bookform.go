package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrBookFormNotFound = errors.New("book form not found")
	ErrBookFormExists   = errors.New("a book form already exists for this announcement")
)

type BookForm struct {
	ID             uint           `gorm:"primaryKey"`
	AnnouncementID uint           `gorm:"not null;uniqueIndex:idx_bookforms_announcement"`
	Questions      datatypes.JSON `gorm:"not null"`
	IsActive       bool           `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type BookFormDAO struct {
	db *gorm.DB
}

func NewBookFormDAO(db *gorm.DB) *BookFormDAO {
	return &BookFormDAO{
		db: db,
	}
}

func (d *BookFormDAO) Insert(ctx context.Context, form BookForm) (BookForm, error) {
	result := d.db.WithContext(ctx).Create(&form)
	if result.Error != nil {
		if _, ok := uniqueViolation(result.Error); ok {
			return BookForm{}, ErrBookFormExists
		}

		return BookForm{}, result.Error
	}

	return form, nil
}

func (d *BookFormDAO) FindByID(ctx context.Context, id uint) (BookForm, error) {
	return d.findOne(ctx, "id = ?", id)
}

func (d *BookFormDAO) FindByAnnouncementID(ctx context.Context, announcementID uint) (BookForm, error) {
	return d.findOne(ctx, "announcement_id = ?", announcementID)
}

func (d *BookFormDAO) findOne(ctx context.Context, query string, args ...any) (BookForm, error) {
	var form BookForm

	result := d.db.WithContext(ctx).Where(query, args...).First(&form)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BookForm{}, ErrBookFormNotFound
		}

		return BookForm{}, result.Error
	}

	return form, nil
}

func (d *BookFormDAO) Update(ctx context.Context, form BookForm) (BookForm, error) {
	result := d.db.WithContext(ctx).Model(&BookForm{ID: form.ID}).
		Select("Questions", "IsActive", "UpdatedAt").
		Updates(&form)
	if result.Error != nil {
		return BookForm{}, result.Error
	}
	if result.RowsAffected == 0 {
		return BookForm{}, ErrBookFormNotFound
	}

	return d.FindByID(ctx, form.ID)
}

// Delete removes the form. Submissions already made are kept.
func (d *BookFormDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&BookForm{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookFormNotFound
	}

	return nil
}
