package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/pkg/jwthelper"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
	"github.com/clubhouse-hq/clubhouse-api/internal/testutil"
)

type fixture struct {
	db            *gorm.DB
	users         *repository.UserRepository
	announcements *repository.AnnouncementRepository
	forms         *repository.BookFormRepository
	submissions   *repository.SubmissionRepository
	tickets       *repository.TicketRepository
	images        *fakeImages
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := testutil.NewSQLite(t)
	users := repository.NewUserRepository(dao.NewUserDAO(gdb))

	return &fixture{
		db:            gdb,
		users:         users,
		announcements: repository.NewAnnouncementRepository(dao.NewAnnouncementDAO(gdb)),
		forms:         repository.NewBookFormRepository(dao.NewBookFormDAO(gdb)),
		submissions:   repository.NewSubmissionRepository(dao.NewSubmissionDAO(gdb)),
		tickets:       repository.NewTicketRepository(dao.NewTicketDAO(gdb), users),
		images:        newFakeImages(),
	}
}

func (f *fixture) ticketService(publisher ScanPublisher) *TicketService {
	return NewTicketService(f.tickets, f.announcements, f.submissions, f.users, publisher)
}

func (f *fixture) user(t *testing.T, username string, role domain.Role) domain.User {
	t.Helper()

	u, err := f.users.Create(context.Background(), domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Name:     strings.ToUpper(username[:1]) + username[1:],
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) announcement(t *testing.T, title string) domain.Announcement {
	t.Helper()

	a, err := f.announcements.Create(context.Background(), domain.Announcement{
		Title:     title,
		Date:      "2026-11-20",
		Time:      "18:30",
		Location:  "Hall B",
		Category:  "workshop",
		MainImage: "/uploads/images/main.png",
		Organizers: []domain.Organizer{
			{Name: "Lee", Role: "host", Image: "/uploads/images/lee.png"},
			{Name: "Sam", Role: "guest", Image: "https://cdn.example.com/sam.png"},
		},
		Schedule: []domain.ScheduleItem{{Time: "18:30", Activity: "Doors"}},
		IsActive: true,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) form(t *testing.T, announcementID uint) domain.BookForm {
	t.Helper()

	form, err := f.forms.Create(context.Background(), domain.BookForm{
		AnnouncementID: announcementID,
		IsActive:       true,
		Questions: []domain.Question{
			{ID: "motivation", Label: "Why do you join?", Type: domain.InputTextarea, Required: true},
		},
	})
	require.NoError(t, err)
	return form
}

func (f *fixture) register(t *testing.T, userID, announcementID uint) {
	t.Helper()

	form, err := f.forms.FindByAnnouncementID(context.Background(), announcementID)
	if err != nil {
		form = f.form(t, announcementID)
	}

	_, err = f.submissions.Create(context.Background(), domain.BookSubmission{
		UserID:         userID,
		AnnouncementID: announcementID,
		BookFormID:     form.ID,
		Answers:        []domain.Answer{{QuestionID: "motivation", Type: domain.InputTextarea, Text: "robots"}},
	})
	require.NoError(t, err)
}

func (f *fixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func newTokenManager() *jwthelper.Manager {
	return jwthelper.NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

type fakeImages struct {
	mu      sync.Mutex
	deleted []string
	fail    bool
}

func newFakeImages() *fakeImages {
	return &fakeImages{}
}

func (f *fakeImages) Owns(url string) bool {
	return strings.HasPrefix(url, "/uploads/images/")
}

func (f *fakeImages) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return context.DeadlineExceeded
	}
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeImages) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.deleted...)
}

type recordingPublisher struct {
	mu      sync.Mutex
	results []domain.ScanResult
}

func (p *recordingPublisher) Publish(result domain.ScanResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.results = append(p.results, result)
}

func (p *recordingPublisher) Results() []domain.ScanResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]domain.ScanResult(nil), p.results...)
}
