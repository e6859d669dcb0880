package service

import (
	"context"
	"fmt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
)

const (
	defaultLatestSize = 3
	maxLatestSize     = 50
)

var ErrAnnouncementNotFound = repository.ErrAnnouncementNotFound

type AnnouncementRepository interface {
	Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error)
	FindByID(ctx context.Context, id uint) (domain.Announcement, error)
	Find(ctx context.Context, filter domain.AnnouncementFilter) ([]domain.Announcement, error)
	FindLatest(ctx context.Context, limit int) ([]domain.Announcement, error)
	Update(ctx context.Context, a domain.Announcement) (domain.Announcement, error)
	Delete(ctx context.Context, id uint) (domain.Announcement, error)
}

type AnnouncementService struct {
	repo   AnnouncementRepository
	images ImageRemover
}

func NewAnnouncementService(repo AnnouncementRepository, images ImageRemover) *AnnouncementService {
	return &AnnouncementService{
		repo:   repo,
		images: images,
	}
}

func (s *AnnouncementService) Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AnnouncementService) Get(ctx context.Context, id uint) (domain.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return a, nil
}

func (s *AnnouncementService) List(ctx context.Context, filter domain.AnnouncementFilter) ([]domain.Announcement, error) {
	announcements, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return announcements, nil
}

func (s *AnnouncementService) Latest(ctx context.Context, limit int) ([]domain.Announcement, error) {
	if limit <= 0 {
		limit = defaultLatestSize
	}
	if limit > maxLatestSize {
		limit = maxLatestSize
	}

	announcements, err := s.repo.FindLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindLatest -> %w", err)
	}

	return announcements, nil
}

// Update applies patch and drops the images it no longer references.
func (s *AnnouncementService) Update(ctx context.Context, id uint, patch domain.AnnouncementPatch) (domain.Announcement, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.Update(ctx, patch.Apply(current))
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	removeImages(ctx, s.images, droppedImages(current.Images(), updated.Images())...)

	return updated, nil
}

// Delete removes the announcement with its form and registrations, then its
// images. Image cleanup failures do not fail the delete.
func (s *AnnouncementService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	removeImages(ctx, s.images, deleted.Images()...)

	return nil
}
