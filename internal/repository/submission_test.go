package repository

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
	"github.com/clubhouse-hq/clubhouse-api/internal/testutil"
)

func TestSubmissionRepository_CreateFailsOnUnencodableAnswers(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewSQLite(t)
	repo := NewSubmissionRepository(dao.NewSubmissionDAO(gdb))

	nan := math.NaN()
	_, err := repo.Create(ctx, domain.BookSubmission{
		UserID:         1,
		AnnouncementID: 1,
		BookFormID:     1,
		Answers:        []domain.Answer{{QuestionID: "age", Type: domain.InputNumber, Number: &nan}},
	})
	require.Error(t, err)

	var rows int64
	require.NoError(t, gdb.Model(&dao.BookSubmission{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestSubmissionRepository_ReadFailsOnMisshapenAnswers(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewSQLite(t)
	repo := NewSubmissionRepository(dao.NewSubmissionDAO(gdb))

	row := dao.BookSubmission{UserID: 1, AnnouncementID: 1, BookFormID: 1, Answers: datatypes.JSON(`{"age": 21}`)}
	require.NoError(t, gdb.Create(&row).Error)

	_, err := repo.FindByID(ctx, row.ID)
	assert.Error(t, err)

	_, err = repo.FindByUserID(ctx, 1)
	assert.Error(t, err)
}

func TestBookFormRepository_RoundTripsQuestions(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewSQLite(t)
	repo := NewBookFormRepository(dao.NewBookFormDAO(gdb))

	announcement := dao.Announcement{Title: "Robotics Night", Date: "2026-11-20", IsActive: true}
	require.NoError(t, gdb.Create(&announcement).Error)

	created, err := repo.Create(ctx, domain.BookForm{
		AnnouncementID: announcement.ID,
		IsActive:       true,
		Questions: []domain.Question{
			{ID: "track", Label: "Track", Type: domain.InputSelect, Options: []string{"web", "ml"}},
		},
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, found.Questions, 1)
	assert.Equal(t, []string{"web", "ml"}, found.Questions[0].Options)
}
