package repository

import (
	"context"
	"fmt"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

var (
	ErrAchievementNotFound = dao.ErrAchievementNotFound
	ErrCourseNotFound      = dao.ErrCourseNotFound
)

type CatalogDAO[T dao.Achievement | dao.Course] interface {
	Insert(ctx context.Context, item T) (T, error)
	FindByID(ctx context.Context, id uint) (T, error)
	FindAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id uint, item T) (T, error)
	Delete(ctx context.Context, id uint) (T, error)
}

// CatalogRepository maps a catalog DAO row type D to its domain type E.
type CatalogRepository[E any, D dao.Achievement | dao.Course] struct {
	dao      CatalogDAO[D]
	toDomain func(D) E
	toDao    func(E) D
}

func NewAchievementRepository(d CatalogDAO[dao.Achievement]) *CatalogRepository[domain.Achievement, dao.Achievement] {
	return &CatalogRepository[domain.Achievement, dao.Achievement]{
		dao:      d,
		toDomain: achievementDaoToDomain,
		toDao:    achievementDomainToDao,
	}
}

func NewCourseRepository(d CatalogDAO[dao.Course]) *CatalogRepository[domain.Course, dao.Course] {
	return &CatalogRepository[domain.Course, dao.Course]{
		dao:      d,
		toDomain: courseDaoToDomain,
		toDao:    courseDomainToDao,
	}
}

func (r *CatalogRepository[E, D]) Create(ctx context.Context, item E) (E, error) {
	created, err := r.dao.Insert(ctx, r.toDao(item))
	if err != nil {
		var zero E
		return zero, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.toDomain(created), nil
}

func (r *CatalogRepository[E, D]) FindByID(ctx context.Context, id uint) (E, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		var zero E
		return zero, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.toDomain(found), nil
}

func (r *CatalogRepository[E, D]) FindAll(ctx context.Context) ([]E, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	out := make([]E, len(found))
	for i, item := range found {
		out[i] = r.toDomain(item)
	}
	return out, nil
}

func (r *CatalogRepository[E, D]) Update(ctx context.Context, id uint, item E) (E, error) {
	updated, err := r.dao.Update(ctx, id, r.toDao(item))
	if err != nil {
		var zero E
		return zero, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.toDomain(updated), nil
}

func (r *CatalogRepository[E, D]) Delete(ctx context.Context, id uint) (E, error) {
	deleted, err := r.dao.Delete(ctx, id)
	if err != nil {
		var zero E
		return zero, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return r.toDomain(deleted), nil
}

func achievementDaoToDomain(a dao.Achievement) domain.Achievement {
	return domain.Achievement{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Image:       a.Image,
		Date:        a.Date,
		Category:    a.Category,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func achievementDomainToDao(a domain.Achievement) dao.Achievement {
	return dao.Achievement{
		Title:       a.Title,
		Description: a.Description,
		Image:       a.Image,
		Date:        a.Date,
		Category:    a.Category,
	}
}

func courseDaoToDomain(c dao.Course) domain.Course {
	return domain.Course{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		Instructor:  c.Instructor,
		Level:       c.Level,
		Duration:    c.Duration,
		Link:        c.Link,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func courseDomainToDao(c domain.Course) dao.Course {
	return dao.Course{
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		Instructor:  c.Instructor,
		Level:       c.Level,
		Duration:    c.Duration,
		Link:        c.Link,
	}
}
