package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSubmissionExists   = errors.New("already registered for this announcement")
)

type BookSubmission struct {
	ID             uint           `gorm:"primaryKey"`
	UserID         uint           `gorm:"not null;uniqueIndex:idx_submissions_user_announcement"`
	AnnouncementID uint           `gorm:"not null;uniqueIndex:idx_submissions_user_announcement"`
	BookFormID     uint           `gorm:"not null"`
	Answers        datatypes.JSON `gorm:"not null"`
	CreatedAt      time.Time
}

type SubmissionDAO struct {
	db *gorm.DB
}

func NewSubmissionDAO(db *gorm.DB) *SubmissionDAO {
	return &SubmissionDAO{
		db: db,
	}
}

func (d *SubmissionDAO) Insert(ctx context.Context, s BookSubmission) (BookSubmission, error) {
	result := d.db.WithContext(ctx).Create(&s)
	if result.Error != nil {
		if _, ok := uniqueViolation(result.Error); ok {
			return BookSubmission{}, ErrSubmissionExists
		}

		return BookSubmission{}, result.Error
	}

	return s, nil
}

func (d *SubmissionDAO) FindByID(ctx context.Context, id uint) (BookSubmission, error) {
	var s BookSubmission

	result := d.db.WithContext(ctx).First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BookSubmission{}, ErrSubmissionNotFound
		}

		return BookSubmission{}, result.Error
	}

	return s, nil
}

func (d *SubmissionDAO) FindByUserAndAnnouncement(ctx context.Context, userID, announcementID uint) (BookSubmission, error) {
	var s BookSubmission

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND announcement_id = ?", userID, announcementID).
		First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BookSubmission{}, ErrSubmissionNotFound
		}

		return BookSubmission{}, result.Error
	}

	return s, nil
}

func (d *SubmissionDAO) FindByUserID(ctx context.Context, userID uint) ([]BookSubmission, error) {
	var submissions []BookSubmission

	result := d.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

func (d *SubmissionDAO) FindByAnnouncementID(ctx context.Context, announcementID uint) ([]BookSubmission, error) {
	var submissions []BookSubmission

	result := d.db.WithContext(ctx).Where("announcement_id = ?", announcementID).Order("created_at").Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

func (d *SubmissionDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&BookSubmission{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}
