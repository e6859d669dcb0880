package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type OrganizerRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
}

func (req OrganizerRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Role, validation.Length(0, 100)),
		validation.Field(&req.Image, imageRef),
	)
}

type ScheduleItemRequest struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

func (req ScheduleItemRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Time, validation.Required, validation.Date(timeLayout)),
		validation.Field(&req.Activity, validation.Required, validation.Length(1, 200)),
	)
}

type CreateAnnouncementRequest struct {
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Date            string                `json:"date" format:"YYYY-MM-DD"`
	Time            string                `json:"time" format:"HH:MM"`
	Location        string                `json:"location"`
	Category        string                `json:"category"`
	MainImage       string                `json:"mainImage"`
	Organizers      []OrganizerRequest    `json:"organizers"`
	Schedule        []ScheduleItemRequest `json:"schedule"`
	IsActive        *bool                 `json:"isActive"`
	RegistrationURL string                `json:"registrationUrl"`
}

func (req *CreateAnnouncementRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&req.Time, validation.Date(timeLayout)),
		validation.Field(&req.Location, validation.Length(0, 200)),
		validation.Field(&req.Category, validation.Length(0, 50)),
		validation.Field(&req.MainImage, imageRef),
		validation.Field(&req.Organizers),
		validation.Field(&req.Schedule),
		validation.Field(&req.RegistrationURL, is.URL),
	)
}

func (req *CreateAnnouncementRequest) ToDomain() domain.Announcement {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return domain.Announcement{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		Category:        strings.ToLower(strings.TrimSpace(req.Category)),
		MainImage:       req.MainImage,
		Organizers:      organizers(req.Organizers),
		Schedule:        schedule(req.Schedule),
		IsActive:        active,
		RegistrationURL: req.RegistrationURL,
	}
}

// UpdateAnnouncementRequest is a partial update: absent fields are left as is,
// an explicit empty list clears organizers or schedule.
type UpdateAnnouncementRequest struct {
	Title           *string               `json:"title"`
	Description     *string               `json:"description"`
	Date            *string               `json:"date" format:"YYYY-MM-DD"`
	Time            *string               `json:"time" format:"HH:MM"`
	Location        *string               `json:"location"`
	Category        *string               `json:"category"`
	MainImage       *string               `json:"mainImage"`
	Organizers      []OrganizerRequest    `json:"organizers"`
	Schedule        []ScheduleItemRequest `json:"schedule"`
	IsActive        *bool                 `json:"isActive"`
	RegistrationURL *string               `json:"registrationUrl"`
}

func (req *UpdateAnnouncementRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.Date, validation.NilOrNotEmpty, validation.Date(dateLayout)),
		validation.Field(&req.Time, validation.Date(timeLayout)),
		validation.Field(&req.Location, validation.Length(0, 200)),
		validation.Field(&req.Category, validation.Length(0, 50)),
		validation.Field(&req.MainImage, imageRef),
		validation.Field(&req.Organizers),
		validation.Field(&req.Schedule),
		validation.Field(&req.RegistrationURL, is.URL),
	)
}

func (req *UpdateAnnouncementRequest) ToPatch() domain.AnnouncementPatch {
	patch := domain.AnnouncementPatch{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		Category:        req.Category,
		MainImage:       req.MainImage,
		IsActive:        req.IsActive,
		RegistrationURL: req.RegistrationURL,
	}
	if req.Organizers != nil {
		o := organizers(req.Organizers)
		patch.Organizers = &o
	}
	if req.Schedule != nil {
		s := schedule(req.Schedule)
		patch.Schedule = &s
	}

	return patch
}

func organizers(in []OrganizerRequest) []domain.Organizer {
	out := make([]domain.Organizer, 0, len(in))
	for _, o := range in {
		out = append(out, domain.Organizer{Name: o.Name, Role: o.Role, Image: o.Image})
	}
	return out
}

func schedule(in []ScheduleItemRequest) []domain.ScheduleItem {
	out := make([]domain.ScheduleItem, 0, len(in))
	for _, s := range in {
		out = append(out, domain.ScheduleItem{Time: s.Time, Activity: s.Activity})
	}
	return out
}
