package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
)

var (
	ErrSubmissionNotFound = repository.ErrSubmissionNotFound
	ErrAlreadyRegistered  = repository.ErrSubmissionExists
	ErrFormClosed         = errors.New("registrations are closed for this announcement")
	ErrInvalidAnswer      = domain.ErrInvalidAnswer
)

type SubmissionRepository interface {
	Create(ctx context.Context, s domain.BookSubmission) (domain.BookSubmission, error)
	FindByID(ctx context.Context, id uint) (domain.BookSubmission, error)
	FindByUserAndAnnouncement(ctx context.Context, userID, announcementID uint) (domain.BookSubmission, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.BookSubmission, error)
	FindByAnnouncementID(ctx context.Context, announcementID uint) ([]domain.BookSubmission, error)
	Delete(ctx context.Context, id uint) error
}

type FormFinder interface {
	FindByAnnouncementID(ctx context.Context, announcementID uint) (domain.BookForm, error)
}

type SubmissionService struct {
	repo          SubmissionRepository
	forms         FormFinder
	announcements AnnouncementFinder
}

func NewSubmissionService(repo SubmissionRepository, forms FormFinder, announcements AnnouncementFinder) *SubmissionService {
	return &SubmissionService{
		repo:          repo,
		forms:         forms,
		announcements: announcements,
	}
}

// Submit registers userID for an announcement. raw holds the decoded answers
// keyed by question id; they are checked against the announcement's form.
func (s *SubmissionService) Submit(ctx context.Context, userID, announcementID uint, raw map[string]any) (domain.BookSubmission, error) {
	if _, err := s.announcements.FindByID(ctx, announcementID); err != nil {
		return domain.BookSubmission{}, fmt.Errorf("s.announcements.FindByID -> %w", err)
	}

	form, err := s.forms.FindByAnnouncementID(ctx, announcementID)
	if err != nil {
		return domain.BookSubmission{}, fmt.Errorf("s.forms.FindByAnnouncementID -> %w", err)
	}
	if !form.IsActive {
		return domain.BookSubmission{}, ErrFormClosed
	}

	if _, err = s.repo.FindByUserAndAnnouncement(ctx, userID, announcementID); err == nil {
		return domain.BookSubmission{}, ErrAlreadyRegistered
	} else if !errors.Is(err, repository.ErrSubmissionNotFound) {
		return domain.BookSubmission{}, fmt.Errorf("s.repo.FindByUserAndAnnouncement -> %w", err)
	}

	answers, err := form.BuildAnswers(raw)
	if err != nil {
		return domain.BookSubmission{}, err
	}

	created, err := s.repo.Create(ctx, domain.BookSubmission{
		UserID:         userID,
		AnnouncementID: announcementID,
		BookFormID:     form.ID,
		Answers:        answers,
	})
	if err != nil {
		return domain.BookSubmission{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SubmissionService) ListMine(ctx context.Context, userID uint) ([]domain.BookSubmission, error) {
	submissions, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return submissions, nil
}

// Check reports whether userID is registered for the announcement.
func (s *SubmissionService) Check(ctx context.Context, userID, announcementID uint) (*domain.BookSubmission, error) {
	submission, err := s.repo.FindByUserAndAnnouncement(ctx, userID, announcementID)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("s.repo.FindByUserAndAnnouncement -> %w", err)
	}

	return &submission, nil
}

func (s *SubmissionService) ListByAnnouncement(ctx context.Context, announcementID uint) ([]domain.BookSubmission, error) {
	submissions, err := s.repo.FindByAnnouncementID(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByAnnouncementID -> %w", err)
	}

	return submissions, nil
}

// Get returns a submission to its owner or to an admin.
func (s *SubmissionService) Get(ctx context.Context, actor domain.User, id uint) (domain.BookSubmission, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.BookSubmission{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if submission.UserID != actor.ID && !actor.Role.IsAdmin() {
		return domain.BookSubmission{}, ErrPermissionDenied
	}

	return submission, nil
}

// Delete cancels a registration. Only its owner or an admin may do it.
func (s *SubmissionService) Delete(ctx context.Context, actor domain.User, id uint) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
