package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

type AchievementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Date        string `json:"date" format:"YYYY-MM-DD"`
	Category    string `json:"category"`
}

func (req *AchievementRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.Image, imageRef),
		validation.Field(&req.Date, validation.Date(dateLayout)),
		validation.Field(&req.Category, validation.Length(0, 50)),
	)
}

func (req *AchievementRequest) ToDomain() domain.Achievement {
	return domain.Achievement{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Date:        req.Date,
		Category:    req.Category,
	}
}

type CourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Instructor  string `json:"instructor"`
	Level       string `json:"level"`
	Duration    string `json:"duration"`
	Link        string `json:"link"`
}

func (req *CourseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.Image, imageRef),
		validation.Field(&req.Instructor, validation.Length(0, 100)),
		validation.Field(&req.Level, validation.Length(0, 50)),
		validation.Field(&req.Duration, validation.Length(0, 50)),
		validation.Field(&req.Link, is.URL),
	)
}

func (req *CourseRequest) ToDomain() domain.Course {
	return domain.Course{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Instructor:  req.Instructor,
		Level:       req.Level,
		Duration:    req.Duration,
		Link:        req.Link,
	}
}
