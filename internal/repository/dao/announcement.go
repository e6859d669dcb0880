package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type Announcement struct {
	ID              uint   `gorm:"primaryKey"`
	Title           string `gorm:"not null"`
	Description     string
	Date            string `gorm:"not null;index"` // YYYY-MM-DD
	Time            string
	Location        string
	Category        string `gorm:"index"`
	MainImage       string
	Organizers      datatypes.JSON
	Schedule        datatypes.JSON
	IsActive        bool `gorm:"not null"`
	RegistrationURL string

	BookForm *BookForm `gorm:"foreignKey:AnnouncementID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type AnnouncementDAO struct {
	db *gorm.DB
}

func NewAnnouncementDAO(db *gorm.DB) *AnnouncementDAO {
	return &AnnouncementDAO{
		db: db,
	}
}

func (d *AnnouncementDAO) Insert(ctx context.Context, a Announcement) (Announcement, error) {
	result := d.db.WithContext(ctx).Omit("BookForm").Create(&a)
	if result.Error != nil {
		return Announcement{}, result.Error
	}

	return a, nil
}

func (d *AnnouncementDAO) FindByID(ctx context.Context, id uint) (Announcement, error) {
	var a Announcement

	result := d.db.WithContext(ctx).Preload("BookForm").First(&a, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Announcement{}, ErrAnnouncementNotFound
		}

		return Announcement{}, result.Error
	}

	return a, nil
}

// Find lists announcements, newest event date first.
func (d *AnnouncementDAO) Find(ctx context.Context, category string, active *bool, limit int) ([]Announcement, error) {
	var announcements []Announcement

	query := d.db.WithContext(ctx).Preload("BookForm").Order("date DESC").Order("id DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if active != nil {
		query = query.Where("is_active = ?", *active)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&announcements).Error; err != nil {
		return nil, err
	}

	return announcements, nil
}

// FindLatest lists the most recently created announcements.
func (d *AnnouncementDAO) FindLatest(ctx context.Context, limit int) ([]Announcement, error) {
	var announcements []Announcement

	result := d.db.WithContext(ctx).Preload("BookForm").Order("created_at DESC").Order("id DESC").Limit(limit).Find(&announcements)
	if result.Error != nil {
		return nil, result.Error
	}

	return announcements, nil
}

func (d *AnnouncementDAO) Update(ctx context.Context, a Announcement) (Announcement, error) {
	result := d.db.WithContext(ctx).Model(&Announcement{ID: a.ID}).Select(
		"Title", "Description", "Date", "Time", "Location", "Category", "MainImage",
		"Organizers", "Schedule", "IsActive", "RegistrationURL", "UpdatedAt",
	).Updates(&a)
	if result.Error != nil {
		return Announcement{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Announcement{}, ErrAnnouncementNotFound
	}

	return d.FindByID(ctx, a.ID)
}

// Delete removes the announcement together with its book form and every
// submission made for it. Tickets are kept as attendance history.
func (d *AnnouncementDAO) Delete(ctx context.Context, id uint) (Announcement, error) {
	var deleted Announcement

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAnnouncementNotFound
			}
			return err
		}
		if err := tx.Where("announcement_id = ?", id).Delete(&BookSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("announcement_id = ?", id).Delete(&BookForm{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Announcement{}, id).Error
	})
	if err != nil {
		return Announcement{}, err
	}

	return deleted, nil
}
