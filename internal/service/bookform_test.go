package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

func registrationForm(announcementID uint) domain.BookForm {
	return domain.BookForm{
		AnnouncementID: announcementID,
		IsActive:       true,
		Questions: []domain.Question{
			{ID: "level", Label: "Level", Type: domain.InputRadio, Options: []string{"beginner", "advanced"}, Required: true},
		},
	}
}

func TestBookFormService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewBookFormService(f.forms, f.announcements)
	a := f.announcement(t, "Robotics Night")

	form, err := svc.Create(ctx, registrationForm(a.ID))
	require.NoError(t, err)
	assert.Len(t, form.Questions, 1)

	withForm, err := f.announcements.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, withForm.BookFormID)
	assert.Equal(t, form.ID, *withForm.BookFormID)

	_, err = svc.Create(ctx, registrationForm(a.ID))
	assert.ErrorIs(t, err, ErrBookFormExists)

	closed := false
	updated, err := svc.Update(ctx, form.ID, nil, &closed)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Len(t, updated.Questions, 1)

	byAnnouncement, err := svc.GetByAnnouncement(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, form.ID, byAnnouncement.ID)

	require.NoError(t, svc.Delete(ctx, form.ID))

	cleared, err := f.announcements.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.BookFormID)

	_, err = svc.Get(ctx, form.ID)
	assert.ErrorIs(t, err, ErrBookFormNotFound)
}

func TestBookFormService_CreateRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewBookFormService(f.forms, f.announcements)
	a := f.announcement(t, "Robotics Night")

	_, err := svc.Create(ctx, registrationForm(a.ID+10))
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)

	bad := registrationForm(a.ID)
	bad.Questions[0].Options = nil
	_, err = svc.Create(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidForm)

	form, err := svc.Create(ctx, registrationForm(a.ID))
	require.NoError(t, err)
	_, err = svc.Update(ctx, form.ID, []domain.Question{}, nil)
	assert.ErrorIs(t, err, ErrInvalidForm)
}
