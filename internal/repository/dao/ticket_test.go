package dao_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
	"github.com/clubhouse-hq/clubhouse-api/internal/testutil"
)

func databases(t *testing.T) map[string]func(*testing.T) *gorm.DB {
	t.Helper()

	return map[string]func(*testing.T) *gorm.DB{
		"sqlite":   testutil.NewSQLite,
		"postgres": testutil.NewPostgres,
	}
}

func seed(t *testing.T, gdb *gorm.DB) (dao.User, dao.Announcement) {
	t.Helper()
	ctx := context.Background()

	u, err := dao.NewUserDAO(gdb).Insert(ctx, dao.User{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "hash",
		Name:     "Ana",
		Role:     "user",
	})
	require.NoError(t, err)

	a, err := dao.NewAnnouncementDAO(gdb).Insert(ctx, dao.Announcement{
		Title:    "Robotics Night",
		Date:     "2026-11-20",
		IsActive: true,
	})
	require.NoError(t, err)

	return u, a
}

func TestTicketDAO_FindOrInsert(t *testing.T) {
	for name, open := range databases(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			gdb := open(t)
			d := dao.NewTicketDAO(gdb)
			u, a := seed(t, gdb)

			first, created, err := d.FindOrInsert(ctx, dao.Ticket{UserID: u.ID, AnnouncementID: a.ID, Token: "tok-1"})
			require.NoError(t, err)
			assert.True(t, created)

			again, created, err := d.FindOrInsert(ctx, dao.Ticket{UserID: u.ID, AnnouncementID: a.ID, Token: "tok-2"})
			require.NoError(t, err)
			assert.False(t, created)
			assert.Equal(t, first.ID, again.ID)
			assert.Equal(t, "tok-1", again.Token)

			other, err := dao.NewAnnouncementDAO(gdb).Insert(ctx, dao.Announcement{Title: "Hack Day", Date: "2026-12-01"})
			require.NoError(t, err)
			_, _, err = d.FindOrInsert(ctx, dao.Ticket{UserID: u.ID, AnnouncementID: other.ID, Token: "tok-1"})
			assert.ErrorIs(t, err, dao.ErrTicketExists)
		})
	}
}

func TestTicketDAO_RedeemOnce(t *testing.T) {
	for name, open := range databases(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			gdb := open(t)
			d := dao.NewTicketDAO(gdb)
			u, a := seed(t, gdb)

			_, _, err := d.FindOrInsert(ctx, dao.Ticket{UserID: u.ID, AnnouncementID: a.ID, Token: "tok-1"})
			require.NoError(t, err)

			_, err = d.Redeem(ctx, "tok-1", a.ID+1, 5, time.Now())
			assert.ErrorIs(t, err, dao.ErrTicketNotFound)

			_, err = d.Redeem(ctx, "unknown", a.ID, 5, time.Now())
			assert.ErrorIs(t, err, dao.ErrTicketNotFound)

			const scanners = 8
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				succeeded int
				redeemed  int
			)
			for i := 0; i < scanners; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := d.Redeem(ctx, "tok-1", a.ID, 5, time.Now())

					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						succeeded++
					case assert.ErrorIs(t, err, dao.ErrTicketAlreadyRedeemed):
						redeemed++
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, 1, succeeded)
			assert.Equal(t, scanners-1, redeemed)

			holder, err := dao.NewUserDAO(gdb).FindByID(ctx, u.ID)
			require.NoError(t, err)
			assert.Equal(t, 5, holder.Score)

			ticket, err := d.FindByUserAndAnnouncement(ctx, u.ID, a.ID)
			require.NoError(t, err)
			assert.True(t, ticket.Attendance)
			assert.NotNil(t, ticket.RedeemedAt)
		})
	}
}

func TestUserDAO_UniqueViolations(t *testing.T) {
	ctx := context.Background()
	d := dao.NewUserDAO(testutil.NewSQLite(t))

	_, err := d.Insert(ctx, dao.User{Username: "ana", Email: "ana@example.com", Password: "x", Role: "user"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, dao.User{Username: "ana2", Email: "ana@example.com", Password: "x", Role: "user"})
	assert.ErrorIs(t, err, dao.ErrUserEmailExists)

	_, err = d.Insert(ctx, dao.User{Username: "ana", Email: "other@example.com", Password: "x", Role: "user"})
	assert.ErrorIs(t, err, dao.ErrUserUsernameExists)
}
