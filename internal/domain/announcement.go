package domain

import "time"

type Organizer struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
}

type ScheduleItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

type Announcement struct {
	ID              uint           `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Date            string         `json:"date"`
	Time            string         `json:"time"`
	Location        string         `json:"location"`
	Category        string         `json:"category"`
	MainImage       string         `json:"mainImage"`
	Organizers      []Organizer    `json:"organizers"`
	Schedule        []ScheduleItem `json:"schedule"`
	IsActive        bool           `json:"isActive"`
	RegistrationURL string         `json:"registrationUrl,omitempty"`
	BookFormID      *uint          `json:"bookFormId,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// Images lists every image reference held by the announcement.
func (a Announcement) Images() []string {
	images := make([]string, 0, len(a.Organizers)+1)
	if a.MainImage != "" {
		images = append(images, a.MainImage)
	}
	for _, o := range a.Organizers {
		if o.Image != "" {
			images = append(images, o.Image)
		}
	}
	return images
}

type AnnouncementFilter struct {
	Category string
	Active   *bool
}

// AnnouncementPatch carries the fields of a partial update; nil means unchanged.
type AnnouncementPatch struct {
	Title           *string
	Description     *string
	Date            *string
	Time            *string
	Location        *string
	Category        *string
	MainImage       *string
	Organizers      *[]Organizer
	Schedule        *[]ScheduleItem
	IsActive        *bool
	RegistrationURL *string
}

// Apply returns a copy of a with the patch applied.
func (p AnnouncementPatch) Apply(a Announcement) Announcement {
	set(&a.Title, p.Title)
	set(&a.Description, p.Description)
	set(&a.Date, p.Date)
	set(&a.Time, p.Time)
	set(&a.Location, p.Location)
	set(&a.Category, p.Category)
	set(&a.MainImage, p.MainImage)
	set(&a.Organizers, p.Organizers)
	set(&a.Schedule, p.Schedule)
	set(&a.IsActive, p.IsActive)
	set(&a.RegistrationURL, p.RegistrationURL)
	return a
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
