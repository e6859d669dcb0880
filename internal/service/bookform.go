package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
)

var (
	ErrBookFormNotFound = repository.ErrBookFormNotFound
	ErrBookFormExists   = repository.ErrBookFormExists
	ErrInvalidForm      = domain.ErrInvalidForm
)

type BookFormRepository interface {
	Create(ctx context.Context, form domain.BookForm) (domain.BookForm, error)
	FindByID(ctx context.Context, id uint) (domain.BookForm, error)
	FindByAnnouncementID(ctx context.Context, announcementID uint) (domain.BookForm, error)
	Update(ctx context.Context, form domain.BookForm) (domain.BookForm, error)
	Delete(ctx context.Context, id uint) error
}

type AnnouncementFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Announcement, error)
}

type BookFormService struct {
	repo          BookFormRepository
	announcements AnnouncementFinder
}

func NewBookFormService(repo BookFormRepository, announcements AnnouncementFinder) *BookFormService {
	return &BookFormService{
		repo:          repo,
		announcements: announcements,
	}
}

// Create attaches a form to an existing announcement that has none yet.
func (s *BookFormService) Create(ctx context.Context, form domain.BookForm) (domain.BookForm, error) {
	if err := form.Validate(); err != nil {
		return domain.BookForm{}, err
	}

	if _, err := s.announcements.FindByID(ctx, form.AnnouncementID); err != nil {
		return domain.BookForm{}, fmt.Errorf("s.announcements.FindByID -> %w", err)
	}

	if _, err := s.repo.FindByAnnouncementID(ctx, form.AnnouncementID); err == nil {
		return domain.BookForm{}, ErrBookFormExists
	} else if !errors.Is(err, repository.ErrBookFormNotFound) {
		return domain.BookForm{}, fmt.Errorf("s.repo.FindByAnnouncementID -> %w", err)
	}

	created, err := s.repo.Create(ctx, form)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *BookFormService) Get(ctx context.Context, id uint) (domain.BookForm, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return form, nil
}

func (s *BookFormService) GetByAnnouncement(ctx context.Context, announcementID uint) (domain.BookForm, error) {
	form, err := s.repo.FindByAnnouncementID(ctx, announcementID)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("s.repo.FindByAnnouncementID -> %w", err)
	}

	return form, nil
}

// Update replaces the questions and/or the active flag; nil means unchanged.
func (s *BookFormService) Update(ctx context.Context, id uint, questions []domain.Question, isActive *bool) (domain.BookForm, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if questions != nil {
		form.Questions = questions
	}
	if isActive != nil {
		form.IsActive = *isActive
	}
	if err = form.Validate(); err != nil {
		return domain.BookForm{}, err
	}

	updated, err := s.repo.Update(ctx, form)
	if err != nil {
		return domain.BookForm{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *BookFormService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
