package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

func TestCatalogService_Achievements(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewAchievementService(repository.NewAchievementRepository(dao.NewAchievementDAO(f.db)), f.images)

	created, err := svc.Create(ctx, domain.Achievement{
		Title:    "Regional robotics cup",
		Image:    "/uploads/images/cup.png",
		Date:     "2026-05-02",
		Category: "competition",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := svc.Update(ctx, created.ID, domain.Achievement{
		Title:    "Regional robotics cup, 1st place",
		Image:    "/uploads/images/cup-2.png",
		Category: "competition",
	})
	require.NoError(t, err)
	assert.Equal(t, "Regional robotics cup, 1st place", updated.Title)
	assert.Empty(t, updated.Date, "update replaces the whole record")
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
	assert.Equal(t, []string{"/uploads/images/cup.png"}, f.images.Deleted())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, []string{"/uploads/images/cup.png", "/uploads/images/cup-2.png"}, f.images.Deleted())

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAchievementNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrAchievementNotFound)
}

func TestCatalogService_Courses(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewCourseService(repository.NewCourseRepository(dao.NewCourseDAO(f.db)), f.images)

	_, err := svc.Update(ctx, 1, domain.Course{Title: "Go"})
	assert.ErrorIs(t, err, ErrCourseNotFound)

	created, err := svc.Create(ctx, domain.Course{
		Title:      "Intro to Go",
		Instructor: "Lee",
		Level:      "beginner",
		Duration:   "6 weeks",
		Link:       "https://example.com/go",
		Image:      "https://cdn.example.com/go.png",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lee", got.Instructor)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, f.images.Deleted(), "external images are not ours to delete")
}
