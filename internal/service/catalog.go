package service

import (
	"context"
	"fmt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
)

var (
	ErrAchievementNotFound = repository.ErrAchievementNotFound
	ErrCourseNotFound      = repository.ErrCourseNotFound
)

type CatalogRepository[T any] interface {
	Create(ctx context.Context, item T) (T, error)
	FindByID(ctx context.Context, id uint) (T, error)
	FindAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id uint, item T) (T, error)
	Delete(ctx context.Context, id uint) (T, error)
}

// CatalogService manages achievements and courses: plain listings with one
// cover image each.
type CatalogService[T any] struct {
	repo    CatalogRepository[T]
	images  ImageRemover
	imageOf func(T) string
}

func NewAchievementService(repo CatalogRepository[domain.Achievement], images ImageRemover) *CatalogService[domain.Achievement] {
	return &CatalogService[domain.Achievement]{
		repo:    repo,
		images:  images,
		imageOf: func(a domain.Achievement) string { return a.Image },
	}
}

func NewCourseService(repo CatalogRepository[domain.Course], images ImageRemover) *CatalogService[domain.Course] {
	return &CatalogService[domain.Course]{
		repo:    repo,
		images:  images,
		imageOf: func(c domain.Course) string { return c.Image },
	}
}

func (s *CatalogService[T]) Create(ctx context.Context, item T) (T, error) {
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return created, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CatalogService[T]) Get(ctx context.Context, id uint) (T, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return item, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return item, nil
}

func (s *CatalogService[T]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return items, nil
}

// Update replaces the item and drops its previous image when it changed.
func (s *CatalogService[T]) Update(ctx context.Context, id uint, item T) (T, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return current, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.Update(ctx, id, item)
	if err != nil {
		return updated, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if old := s.imageOf(current); old != s.imageOf(updated) {
		removeImages(ctx, s.images, old)
	}

	return updated, nil
}

func (s *CatalogService[T]) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	removeImages(ctx, s.images, s.imageOf(deleted))

	return nil
}
