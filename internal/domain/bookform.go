package domain

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"
)

type InputType string

const (
	InputText     InputType = "text"
	InputNumber   InputType = "number"
	InputEmail    InputType = "email"
	InputTextarea InputType = "textarea"
	InputSelect   InputType = "select"
	InputRadio    InputType = "radio"
	InputCheckbox InputType = "checkbox"
)

var InputTypes = []InputType{InputText, InputNumber, InputEmail, InputTextarea, InputSelect, InputRadio, InputCheckbox}

var (
	ErrInvalidAnswer = errors.New("invalid answer")
	ErrInvalidForm   = errors.New("invalid form")
)

func (t InputType) Valid() bool {
	for _, it := range InputTypes {
		if t == it {
			return true
		}
	}
	return false
}

type Question struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        InputType `json:"type"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

type BookForm struct {
	ID             uint       `json:"id"`
	AnnouncementID uint       `json:"announcementId"`
	Questions      []Question `json:"questions"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Validate checks that question ids are unique and non-empty and that choice
// questions offer options.
func (f BookForm) Validate() error {
	if len(f.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrInvalidForm)
	}

	seen := make(map[string]struct{}, len(f.Questions))
	for i, q := range f.Questions {
		if strings.TrimSpace(q.ID) == "" {
			return fmt.Errorf("%w: question %d has no id", ErrInvalidForm, i+1)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidForm, q.ID)
		}
		seen[q.ID] = struct{}{}

		if strings.TrimSpace(q.Label) == "" {
			return fmt.Errorf("%w: question %q has no label", ErrInvalidForm, q.ID)
		}
		if !q.Type.Valid() {
			return fmt.Errorf("%w: question %q has unsupported type %q", ErrInvalidForm, q.ID, q.Type)
		}
		if (q.Type == InputSelect || q.Type == InputRadio) && len(q.Options) == 0 {
			return fmt.Errorf("%w: question %q needs at least one option", ErrInvalidForm, q.ID)
		}
	}

	return nil
}

// Answer is a tagged union: Type selects which of the value fields is set.
//
//	text, email, textarea, select, radio -> Text
//	number                               -> Number
//	checkbox with options                -> Choices
//	checkbox without options             -> Checked
type Answer struct {
	QuestionID string    `json:"questionId"`
	Type       InputType `json:"type"`
	Text       string    `json:"text,omitempty"`
	Number     *float64  `json:"number,omitempty"`
	Choices    []string  `json:"choices,omitempty"`
	Checked    *bool     `json:"checked,omitempty"`
}

func (a Answer) Value() any {
	switch a.Type {
	case InputNumber:
		if a.Number == nil {
			return nil
		}
		return *a.Number
	case InputCheckbox:
		if a.Checked != nil {
			return *a.Checked
		}
		return a.Choices
	default:
		return a.Text
	}
}

func (q Question) hasOption(v string) bool {
	for _, o := range q.Options {
		if o == v {
			return true
		}
	}
	return false
}

// ParseAnswer converts a decoded JSON value into a typed Answer for q.
// A nil result with a nil error means the question was left blank.
func (q Question) ParseAnswer(raw any) (*Answer, error) {
	if isBlank(raw) {
		if q.Required {
			return nil, fmt.Errorf("%w: %q is required", ErrInvalidAnswer, q.Label)
		}
		return nil, nil
	}

	answer := Answer{QuestionID: q.ID, Type: q.Type}
	switch q.Type {
	case InputText, InputTextarea:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be text", ErrInvalidAnswer, q.Label)
		}
		answer.Text = strings.TrimSpace(s)
	case InputEmail:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be an email address", ErrInvalidAnswer, q.Label)
		}
		s = strings.TrimSpace(s)
		if _, err := mail.ParseAddress(s); err != nil {
			return nil, fmt.Errorf("%w: %q must be an email address", ErrInvalidAnswer, q.Label)
		}
		answer.Text = s
	case InputNumber:
		n, err := toNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q must be a number", ErrInvalidAnswer, q.Label)
		}
		answer.Number = &n
	case InputSelect, InputRadio:
		s, ok := raw.(string)
		if !ok || !q.hasOption(s) {
			return nil, fmt.Errorf("%w: %q must be one of %v", ErrInvalidAnswer, q.Label, q.Options)
		}
		answer.Text = s
	case InputCheckbox:
		if len(q.Options) == 0 {
			b, ok := raw.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %q must be true or false", ErrInvalidAnswer, q.Label)
			}
			if !b && q.Required {
				return nil, fmt.Errorf("%w: %q must be checked", ErrInvalidAnswer, q.Label)
			}
			answer.Checked = &b
			break
		}
		choices, err := toStrings(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q must be a list of options", ErrInvalidAnswer, q.Label)
		}
		for _, c := range choices {
			if !q.hasOption(c) {
				return nil, fmt.Errorf("%w: %q has unknown option %q", ErrInvalidAnswer, q.Label, c)
			}
		}
		if len(choices) == 0 && q.Required {
			return nil, fmt.Errorf("%w: %q is required", ErrInvalidAnswer, q.Label)
		}
		answer.Choices = choices
	default:
		return nil, fmt.Errorf("%w: %q has unsupported type %q", ErrInvalidAnswer, q.Label, q.Type)
	}

	return &answer, nil
}

// BuildAnswers validates raw answers, keyed by question id, against the form.
func (f BookForm) BuildAnswers(raw map[string]any) ([]Answer, error) {
	known := make(map[string]struct{}, len(f.Questions))
	answers := make([]Answer, 0, len(f.Questions))
	for _, q := range f.Questions {
		known[q.ID] = struct{}{}
		a, err := q.ParseAnswer(raw[q.ID])
		if err != nil {
			return nil, err
		}
		if a != nil {
			answers = append(answers, *a)
		}
	}
	for id := range raw {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: unknown question %q", ErrInvalidAnswer, id)
		}
	}

	return answers, nil
}

func isBlank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}

// toNumber accepts finite numbers only; NaN and infinities cannot be stored as JSON.
func toNumber(raw any) (float64, error) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	default:
		return 0, ErrInvalidAnswer
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, ErrInvalidAnswer
	}
	return n, nil
}

func toStrings(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, ErrInvalidAnswer
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return []string{v}, nil
	}
	return nil, ErrInvalidAnswer
}

type BookSubmission struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"userId"`
	AnnouncementID uint      `json:"announcementId"`
	BookFormID     uint      `json:"bookFormId"`
	Answers        []Answer  `json:"answers"`
	CreatedAt      time.Time `json:"createdAt"`
}
