package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

func TestUserService_ChangeRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewUserService(f.users, f.images)

	top := f.user(t, "top", domain.RoleTopAdmin)
	admin := f.user(t, "admin", domain.RoleAdmin)
	member := f.user(t, "member", domain.RoleUser)
	other := f.user(t, "other", domain.RoleUser)

	tests := []struct {
		name   string
		actor  uint
		target uint
		role   domain.Role
		want   error
	}{
		{name: "member cannot change roles", actor: member.ID, target: other.ID, role: domain.RoleAdmin, want: ErrPermissionDenied},
		{name: "admin cannot grant admin", actor: admin.ID, target: member.ID, role: domain.RoleAdmin, want: ErrForbiddenRoleChange},
		{name: "admin cannot demote top admin", actor: admin.ID, target: top.ID, role: domain.RoleUser, want: ErrForbiddenRoleChange},
		{name: "nobody changes their own role", actor: top.ID, target: top.ID, role: domain.RoleUser, want: ErrSelfRoleChange},
		{name: "unknown role", actor: top.ID, target: member.ID, role: "owner", want: ErrInvalidRole},
		{name: "unknown target", actor: top.ID, target: 9999, role: domain.RoleUser, want: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ChangeRole(ctx, tt.actor, tt.target, tt.role)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	promoted, err := svc.ChangeRole(ctx, top.ID, member.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)

	// The new admin acts with its stored role right away.
	_, err = svc.ChangeRole(ctx, member.ID, other.ID, domain.RoleUser)
	assert.NoError(t, err)

	demoted, err := svc.ChangeRole(ctx, top.ID, member.ID, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, demoted.Role)

	_, err = svc.ChangeRole(ctx, member.ID, other.ID, domain.RoleUser)
	assert.ErrorIs(t, err, ErrPermissionDenied, "a demoted admin loses access immediately")
}

func TestUserService_Leaderboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewUserService(f.users, f.images)

	for i, name := range []string{"ana", "ben", "cleo"} {
		u := f.user(t, name, domain.RoleUser)
		require.NoError(t, f.db.Exec("UPDATE users SET score = ? WHERE id = ?", (i+1)*5, u.ID).Error)
	}

	top, err := svc.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "cleo", top[0].Username)
	assert.Equal(t, 15, top[0].Score)
	assert.Equal(t, "ben", top[1].Username)

	all, err := svc.Leaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUserService_UpdateProfileDropsOldAvatar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewUserService(f.users, f.images)
	u := f.user(t, "ana", domain.RoleUser)

	first := "/uploads/images/a.png"
	bio := "Builds robots"
	updated, err := svc.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{AvatarURL: &first, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, first, updated.AvatarURL)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "Ana", updated.Name)
	assert.Empty(t, f.images.Deleted())

	second := "/uploads/images/b.png"
	_, err = svc.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{AvatarURL: &second})
	require.NoError(t, err)
	assert.Equal(t, []string{first}, f.images.Deleted())
}
