package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

type QuestionRequest struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        string   `json:"type" enums:"text,number,email,textarea,select,radio,checkbox"`
	Required    bool     `json:"required"`
	Options     []string `json:"options"`
	Placeholder string   `json:"placeholder"`
}

func (req QuestionRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.ID, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Label, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Type, validation.Required, validation.In(inputTypes()...)),
	)
}

type CreateBookFormRequest struct {
	AnnouncementID uint              `json:"announcementId"`
	Questions      []QuestionRequest `json:"questions"`
	IsActive       *bool             `json:"isActive"`
}

func (req *CreateBookFormRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AnnouncementID, validation.Required),
		validation.Field(&req.Questions, validation.Required),
	)
}

func (req *CreateBookFormRequest) ToDomain() domain.BookForm {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return domain.BookForm{
		AnnouncementID: req.AnnouncementID,
		Questions:      questions(req.Questions),
		IsActive:       active,
	}
}

type UpdateBookFormRequest struct {
	Questions []QuestionRequest `json:"questions"`
	IsActive  *bool             `json:"isActive"`
}

func (req *UpdateBookFormRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Questions),
	)
}

// DomainQuestions returns nil when the request leaves questions unchanged.
func (req *UpdateBookFormRequest) DomainQuestions() []domain.Question {
	if req.Questions == nil {
		return nil
	}
	return questions(req.Questions)
}

func questions(in []QuestionRequest) []domain.Question {
	out := make([]domain.Question, 0, len(in))
	for _, q := range in {
		out = append(out, domain.Question{
			ID:          q.ID,
			Label:       q.Label,
			Type:        domain.InputType(q.Type),
			Required:    q.Required,
			Options:     q.Options,
			Placeholder: q.Placeholder,
		})
	}
	return out
}

func inputTypes() []any {
	types := make([]any, 0, len(domain.InputTypes))
	for _, t := range domain.InputTypes {
		types = append(types, string(t))
	}
	return types
}

type CreateSubmissionRequest struct {
	AnnouncementID uint           `json:"announcementId"`
	Answers        map[string]any `json:"answers" swaggertype:"object"`
}

func (req *CreateSubmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AnnouncementID, validation.Required),
		validation.Field(&req.Answers, validation.NotNil),
	)
}
