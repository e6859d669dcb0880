package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

func newSubmissionService(f *fixture) *SubmissionService {
	return NewSubmissionService(f.submissions, f.forms, f.announcements)
}

func TestSubmissionService_SubmitOncePerAnnouncement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newSubmissionService(f)

	u := f.user(t, "ana", domain.RoleUser)
	a := f.announcement(t, "Robotics Night")
	f.form(t, a.ID)

	created, err := svc.Submit(ctx, u.ID, a.ID, map[string]any{"motivation": "robots"})
	require.NoError(t, err)
	require.Len(t, created.Answers, 1)
	assert.Equal(t, "robots", created.Answers[0].Text)

	_, err = svc.Submit(ctx, u.ID, a.ID, map[string]any{"motivation": "again"})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	assert.Equal(t, int64(1), f.count(t, &dao.BookSubmission{}, "user_id = ? AND announcement_id = ?", u.ID, a.ID))

	registered, err := svc.Check(ctx, u.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, registered)
	assert.Equal(t, created.ID, registered.ID)
}

func TestSubmissionService_SubmitConcurrently(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newSubmissionService(f)

	u := f.user(t, "ana", domain.RoleUser)
	a := f.announcement(t, "Robotics Night")
	f.form(t, a.ID)

	const workers = 6
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, u.ID, a.ID, map[string]any{"motivation": "robots"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(1), f.count(t, &dao.BookSubmission{}, "announcement_id = ?", a.ID))
}

func TestSubmissionService_SubmitRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newSubmissionService(f)

	u := f.user(t, "ana", domain.RoleUser)
	noForm := f.announcement(t, "Open Day")
	a := f.announcement(t, "Robotics Night")
	form := f.form(t, a.ID)

	_, err := svc.Submit(ctx, u.ID, a.ID+100, map[string]any{"motivation": "x"})
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)

	_, err = svc.Submit(ctx, u.ID, noForm.ID, map[string]any{"motivation": "x"})
	assert.ErrorIs(t, err, ErrBookFormNotFound)

	_, err = svc.Submit(ctx, u.ID, a.ID, map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	closed := false
	_, err = NewBookFormService(f.forms, f.announcements).Update(ctx, form.ID, nil, &closed)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, u.ID, a.ID, map[string]any{"motivation": "x"})
	assert.ErrorIs(t, err, ErrFormClosed)

	registered, err := svc.Check(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, registered)
}

func TestSubmissionService_OwnerOrAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newSubmissionService(f)

	owner := f.user(t, "ana", domain.RoleUser)
	stranger := f.user(t, "ben", domain.RoleUser)
	admin := f.user(t, "root", domain.RoleAdmin)
	a := f.announcement(t, "Robotics Night")
	f.form(t, a.ID)

	created, err := svc.Submit(ctx, owner.ID, a.ID, map[string]any{"motivation": "robots"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, svc.Delete(ctx, stranger, created.ID), ErrPermissionDenied)

	_, err = svc.Get(ctx, owner, created.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, admin, created.ID)
	assert.NoError(t, err)

	list, err := svc.ListByAnnouncement(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, admin, created.ID))
	_, err = svc.Get(ctx, owner, created.ID)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)

	mine, err := svc.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestSubmissionService_SubmitRejectsNonFiniteNumbers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newSubmissionService(f)

	u := f.user(t, "ana", domain.RoleUser)
	a := f.announcement(t, "Robotics Night")
	_, err := f.forms.Create(ctx, domain.BookForm{
		AnnouncementID: a.ID,
		IsActive:       true,
		Questions: []domain.Question{
			{ID: "age", Label: "Age", Type: domain.InputNumber, Required: true},
			{ID: "name", Label: "Name", Type: domain.InputText, Required: true},
		},
	})
	require.NoError(t, err)

	for _, age := range []any{"NaN", "Inf", "-inf"} {
		_, err = svc.Submit(ctx, u.ID, a.ID, map[string]any{"age": age, "name": "Ana"})
		assert.ErrorIs(t, err, ErrInvalidAnswer, "age=%v", age)
	}
	assert.Equal(t, int64(0), f.count(t, &dao.BookSubmission{}, "announcement_id = ?", a.ID))

	created, err := svc.Submit(ctx, u.ID, a.ID, map[string]any{"age": "21", "name": "Ana"})
	require.NoError(t, err)
	require.Len(t, created.Answers, 2)

	stored, err := svc.Check(ctx, u.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Answers, 2)
}
