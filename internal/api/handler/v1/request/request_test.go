package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := func() SignupRequest {
		return SignupRequest{
			Username:        "ana_b",
			Email:           " Ana@Example.com ",
			Password:        "robots42",
			ConfirmPassword: "robots42",
			Name:            "Ana",
		}
	}

	req := valid()
	require.NoError(t, req.Validate())
	assert.Equal(t, "ana@example.com", req.Email)

	tests := []struct {
		name   string
		mutate func(*SignupRequest)
		want   error
	}{
		{"short password", func(r *SignupRequest) { r.Password, r.ConfirmPassword = "r0bot", "r0bot" }, errInvalidPassword},
		{"no digit", func(r *SignupRequest) { r.Password, r.ConfirmPassword = "robotsrobots", "robotsrobots" }, errInvalidPassword},
		{"no letter", func(r *SignupRequest) { r.Password, r.ConfirmPassword = "1234567890", "1234567890" }, errInvalidPassword},
		{"mismatch", func(r *SignupRequest) { r.ConfirmPassword = "robots43" }, errConfirmPasswordMismatch},
		{"bad username", func(r *SignupRequest) { r.Username = "a b" }, errInvalidUsername},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			assert.ErrorIs(t, req.Validate(), tt.want)
		})
	}

	req = valid()
	req.Email = "not-an-email"
	assert.Error(t, req.Validate())
}

func TestLoginRequest(t *testing.T) {
	req := LoginRequest{Username: " ana ", Password: "x"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "ana", req.Login())

	req = LoginRequest{Email: "Ana@Example.com", Username: "ana", Password: "x"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "ana@example.com", req.Login())

	req = LoginRequest{Password: "x"}
	assert.ErrorIs(t, req.Validate(), errMissingLogin)
}

func TestCreateAnnouncementRequest_Validate(t *testing.T) {
	req := CreateAnnouncementRequest{
		Title:      "Robotics Night",
		Date:       "2026-11-20",
		Time:       "18:30",
		MainImage:  "/uploads/images/a.png",
		Organizers: []OrganizerRequest{{Name: "Lee", Image: "https://cdn.example.com/lee.png"}},
		Schedule:   []ScheduleItemRequest{{Time: "18:30", Activity: "Doors"}},
	}
	require.NoError(t, req.Validate())

	a := req.ToDomain()
	assert.True(t, a.IsActive, "active by default")
	assert.Len(t, a.Organizers, 1)

	bad := req
	bad.Date = "20/11/2026"
	assert.Error(t, bad.Validate())

	bad = req
	bad.Time = "6pm"
	assert.Error(t, bad.Validate())

	bad = req
	bad.Schedule = []ScheduleItemRequest{{Time: "25:00", Activity: "Late"}}
	assert.Error(t, bad.Validate())

	bad = req
	bad.Organizers = []OrganizerRequest{{Image: "/x.png"}}
	assert.Error(t, bad.Validate())
}

func TestUpdateAnnouncementRequest_ToPatch(t *testing.T) {
	title := "New title"
	req := UpdateAnnouncementRequest{Title: &title, Schedule: []ScheduleItemRequest{}}
	require.NoError(t, req.Validate())

	patch := req.ToPatch()
	assert.Equal(t, &title, patch.Title)
	assert.Nil(t, patch.Organizers, "absent list is left unchanged")
	require.NotNil(t, patch.Schedule)
	assert.Empty(t, *patch.Schedule)

	empty := ""
	req = UpdateAnnouncementRequest{Title: &empty}
	assert.Error(t, req.Validate())
}

func TestBookFormRequests(t *testing.T) {
	req := CreateBookFormRequest{
		AnnouncementID: 3,
		Questions: []QuestionRequest{
			{ID: "level", Label: "Level", Type: "radio", Options: []string{"a", "b"}},
		},
	}
	require.NoError(t, req.Validate())
	assert.True(t, req.ToDomain().IsActive)

	req.Questions[0].Type = "color"
	assert.Error(t, req.Validate())

	req.Questions = nil
	assert.Error(t, req.Validate())

	update := UpdateBookFormRequest{}
	require.NoError(t, update.Validate())
	assert.Nil(t, update.DomainQuestions())
}

func TestValidateTicketRequest(t *testing.T) {
	req := ValidateTicketRequest{Token: "  tok  ", AnnouncementID: 1}
	require.NoError(t, req.Validate())
	assert.Equal(t, "tok", req.Token)

	req = ValidateTicketRequest{Token: "tok"}
	assert.Error(t, req.Validate())
}
