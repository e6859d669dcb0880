package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleForm() BookForm {
	return BookForm{
		Questions: []Question{
			{ID: "name", Label: "Full name", Type: InputText, Required: true},
			{ID: "mail", Label: "Email", Type: InputEmail},
			{ID: "age", Label: "Age", Type: InputNumber, Required: true},
			{ID: "track", Label: "Track", Type: InputSelect, Options: []string{"web", "ml"}, Required: true},
			{ID: "diet", Label: "Diet", Type: InputCheckbox, Options: []string{"vegan", "halal", "none"}},
			{ID: "rules", Label: "I accept the rules", Type: InputCheckbox, Required: true},
			{ID: "notes", Label: "Notes", Type: InputTextarea},
		},
	}
}

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestBookForm_BuildAnswers(t *testing.T) {
	answers, err := sampleForm().BuildAnswers(decode(t, `{
		"name": " Ana ",
		"mail": "ana@example.com",
		"age": "21",
		"track": "ml",
		"diet": ["vegan", "halal"],
		"rules": true
	}`))
	require.NoError(t, err)
	require.Len(t, answers, 6)

	byID := map[string]Answer{}
	for _, a := range answers {
		byID[a.QuestionID] = a
	}

	assert.Equal(t, "Ana", byID["name"].Text)
	assert.Equal(t, InputEmail, byID["mail"].Type)
	require.NotNil(t, byID["age"].Number)
	assert.Equal(t, 21.0, *byID["age"].Number)
	assert.Equal(t, "ml", byID["track"].Value())
	assert.Equal(t, []string{"vegan", "halal"}, byID["diet"].Choices)
	assert.Equal(t, true, byID["rules"].Value())
	assert.NotContains(t, byID, "notes")
}

func TestBookForm_BuildAnswersRejects(t *testing.T) {
	valid := `"name": "Ana", "age": 30, "track": "web", "rules": true`

	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing required", raw: `{"age": 30, "track": "web", "rules": true}`},
		{name: "blank required", raw: `{"name": "  ", "age": 30, "track": "web", "rules": true}`},
		{name: "unknown question", raw: `{` + valid + `, "shoe": "42"}`},
		{name: "number as words", raw: `{"name": "Ana", "age": "thirty", "track": "web", "rules": true}`},
		{name: "option not offered", raw: `{"name": "Ana", "age": 30, "track": "design", "rules": true}`},
		{name: "bad email", raw: `{` + valid + `, "mail": "not-an-email"}`},
		{name: "unchecked consent", raw: `{"name": "Ana", "age": 30, "track": "web", "rules": false}`},
		{name: "unknown choice", raw: `{` + valid + `, "diet": ["keto"]}`},
		{name: "text as number", raw: `{"name": 12, "age": 30, "track": "web", "rules": true}`},
		{name: "number not finite", raw: `{"name": "Ana", "age": "NaN", "track": "web", "rules": true}`},
		{name: "number infinite", raw: `{"name": "Ana", "age": "-Inf", "track": "web", "rules": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sampleForm().BuildAnswers(decode(t, tt.raw))
			assert.ErrorIs(t, err, ErrInvalidAnswer)
		})
	}
}

func TestBookForm_Validate(t *testing.T) {
	assert.NoError(t, sampleForm().Validate())

	tests := []struct {
		name      string
		questions []Question
	}{
		{name: "empty", questions: nil},
		{name: "missing id", questions: []Question{{Label: "A", Type: InputText}}},
		{name: "duplicate id", questions: []Question{
			{ID: "a", Label: "A", Type: InputText},
			{ID: "a", Label: "B", Type: InputText},
		}},
		{name: "missing label", questions: []Question{{ID: "a", Type: InputText}}},
		{name: "unknown type", questions: []Question{{ID: "a", Label: "A", Type: "date"}}},
		{name: "radio without options", questions: []Question{{ID: "a", Label: "A", Type: InputRadio}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BookForm{Questions: tt.questions}.Validate()
			assert.ErrorIs(t, err, ErrInvalidForm)
		})
	}
}

func TestAnnouncementPatch_Apply(t *testing.T) {
	a := Announcement{Title: "Old", Location: "Hall A", IsActive: true}

	title := "New"
	inactive := false
	got := AnnouncementPatch{Title: &title, IsActive: &inactive}.Apply(a)

	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Hall A", got.Location)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Old", a.Title)
}
