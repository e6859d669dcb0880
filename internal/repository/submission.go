package repository

import (
	"context"
	"fmt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

var (
	ErrSubmissionNotFound = dao.ErrSubmissionNotFound
	ErrSubmissionExists   = dao.ErrSubmissionExists
)

type SubmissionDAO interface {
	Insert(ctx context.Context, s dao.BookSubmission) (dao.BookSubmission, error)
	FindByID(ctx context.Context, id uint) (dao.BookSubmission, error)
	FindByUserAndAnnouncement(ctx context.Context, userID, announcementID uint) (dao.BookSubmission, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.BookSubmission, error)
	FindByAnnouncementID(ctx context.Context, announcementID uint) ([]dao.BookSubmission, error)
	Delete(ctx context.Context, id uint) error
}

type SubmissionRepository struct {
	dao SubmissionDAO
}

func NewSubmissionRepository(dao SubmissionDAO) *SubmissionRepository {
	return &SubmissionRepository{
		dao: dao,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, s domain.BookSubmission) (domain.BookSubmission, error) {
	answers := s.Answers
	if answers == nil {
		answers = []domain.Answer{}
	}

	answersJSON, err := toJSON(answers)
	if err != nil {
		return domain.BookSubmission{}, fmt.Errorf("toJSON -> %w", err)
	}

	created, err := r.dao.Insert(ctx, dao.BookSubmission{
		UserID:         s.UserID,
		AnnouncementID: s.AnnouncementID,
		BookFormID:     s.BookFormID,
		Answers:        answersJSON,
	})
	if err != nil {
		return domain.BookSubmission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (domain.BookSubmission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.BookSubmission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *SubmissionRepository) FindByUserAndAnnouncement(ctx context.Context, userID, announcementID uint) (domain.BookSubmission, error) {
	found, err := r.dao.FindByUserAndAnnouncement(ctx, userID, announcementID)
	if err != nil {
		return domain.BookSubmission{}, fmt.Errorf("r.dao.FindByUserAndAnnouncement -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *SubmissionRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.BookSubmission, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *SubmissionRepository) FindByAnnouncementID(ctx context.Context, announcementID uint) ([]domain.BookSubmission, error) {
	found, err := r.dao.FindByAnnouncementID(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAnnouncementID -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *SubmissionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SubmissionRepository) daosToDomain(submissions []dao.BookSubmission) ([]domain.BookSubmission, error) {
	out := make([]domain.BookSubmission, len(submissions))
	for i, s := range submissions {
		submission, err := r.daoToDomain(s)
		if err != nil {
			return nil, err
		}
		out[i] = submission
	}
	return out, nil
}

func (r *SubmissionRepository) daoToDomain(s dao.BookSubmission) (domain.BookSubmission, error) {
	submission := domain.BookSubmission{
		ID:             s.ID,
		UserID:         s.UserID,
		AnnouncementID: s.AnnouncementID,
		BookFormID:     s.BookFormID,
		Answers:        []domain.Answer{},
		CreatedAt:      s.CreatedAt,
	}
	if err := fromJSON(s.Answers, &submission.Answers); err != nil {
		return domain.BookSubmission{}, fmt.Errorf("submission %d answers -> %w", s.ID, err)
	}

	return submission, nil
}
