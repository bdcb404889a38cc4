// Package types provides type definitions for structured data used throughout the apply-autofill system.
package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// QuestionType identifies the expected answer shape of a template.
type QuestionType string

// Question type constants
const (
	QuestionTypeText     QuestionType = "text"
	QuestionTypeSelect   QuestionType = "select"
	QuestionTypeBoolean  QuestionType = "boolean"
	QuestionTypeDate     QuestionType = "date"
	QuestionTypeTextarea QuestionType = "textarea"
)

// Valid reports whether qt is one of the known question types.
func (qt QuestionType) Valid() bool {
	switch qt {
	case QuestionTypeText, QuestionTypeSelect, QuestionTypeBoolean, QuestionTypeDate, QuestionTypeTextarea:
		return true
	}
	return false
}

// Confidence grades how a resolved value was obtained.
type Confidence string

// Confidence constants, ordered strongest to weakest
const (
	ConfidenceExact       Confidence = "exact"
	ConfidenceFuzzy       Confidence = "fuzzy"
	ConfidenceSynthesized Confidence = "synthesized"
	ConfidenceUnresolved  Confidence = "unresolved"
)

// AnswerSource identifies where a resolved value came from.
type AnswerSource string

// Answer source constants
const (
	SourceStoredAnswer AnswerSource = "stored_answer"
	SourceProfileField AnswerSource = "profile_field"
	SourceDefault      AnswerSource = "default"
)

// AnswerOption is a single choice on a select-type template.
type AnswerOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// QuestionTemplate is a canonical, catalog-defined question with a stable
// id and an expected answer shape. Templates are immutable once seeded.
type QuestionTemplate struct {
	ID           int64           `json:"id"`
	Category     string          `json:"category"`
	Question     string          `json:"question"`
	QuestionType QuestionType    `json:"question_type"`
	Options      []AnswerOption  `json:"options,omitempty"`
	Aliases      []string        `json:"aliases,omitempty"`
	Description  string          `json:"description,omitempty"`
	DefaultValue json.RawMessage `json:"default_value,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// UserAnswer is one user's stored answer to a template question.
// There is exactly one logical answer per (user_id, template_id).
type UserAnswer struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	TemplateID int64           `json:"template_id"`
	Value      json.RawMessage `json:"value"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PersonalInfo holds the contact and identity fields of a profile.
type PersonalInfo struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zip_code,omitempty"`
	Country   string `json:"country,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Website   string `json:"website,omitempty"`
}

// FullName joins the first and last name, tolerating either being empty.
func (p *PersonalInfo) FullName() string {
	if p == nil {
		return ""
	}
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// Profile is the singleton structured profile for a user.
// CompletionPercentage is always recomputed from profile contents on
// write, never hand-edited.
type Profile struct {
	ID                   uuid.UUID     `json:"id"`
	UserID               uuid.UUID     `json:"user_id"`
	PersonalInfo         *PersonalInfo `json:"personal_info,omitempty"`
	Skills               []string      `json:"skills"`
	CompletionPercentage int           `json:"completion_percentage"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// WorkExperience is one employment history entry, owned by a user.
type WorkExperience struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	StartDate   *Date     `json:"start_date,omitempty"`
	EndDate     *Date     `json:"end_date,omitempty"`
	Current     bool      `json:"current"`
	Description string    `json:"description,omitempty"`
	Ordinal     int       `json:"ordinal"` // user-entry order
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Education is one education history entry, owned by a user.
type Education struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	School     string    `json:"school"`
	DegreeType string    `json:"degree_type,omitempty"`
	Field      string    `json:"field,omitempty"`
	GPA        string    `json:"gpa,omitempty"`
	Location   string    `json:"location,omitempty"`
	StartDate  *Date     `json:"start_date,omitempty"`
	EndDate    *Date     `json:"end_date,omitempty"`
	Ordinal    int       `json:"ordinal"` // user-entry order
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ObservedQuestion is the literal text of a form field encountered on a
// third-party site, plus whatever hints the extension could gather. It
// lives only for the duration of one resolution call.
type ObservedQuestion struct {
	Text         string       `json:"text"`
	QuestionType QuestionType `json:"question_type,omitempty"` // hint, may be empty
	FieldContext string       `json:"field_context,omitempty"` // nearby label/placeholder text
}

// ResolvedAnswer is the outcome of one resolution call. TemplateID is
// zero when no template matched; callers must not fabricate one.
type ResolvedAnswer struct {
	TemplateID int64        `json:"template_id,omitempty"`
	Value      any          `json:"value"`
	Confidence Confidence   `json:"confidence"`
	Source     AnswerSource `json:"source,omitempty"`
}

// ProfileSnapshot is the immutable per-request view of a user's stored
// data. All reads happen at the boundary, once per resolution call, so
// the matching and resolution logic never sees torn state.
type ProfileSnapshot struct {
	Profile        *Profile
	WorkExperience []WorkExperience
	Education      []Education
	Answers        map[int64]UserAnswer
}

// StoredAnswer returns the stored answer for a template, if any.
func (s *ProfileSnapshot) StoredAnswer(templateID int64) (UserAnswer, bool) {
	if s == nil || s.Answers == nil {
		return UserAnswer{}, false
	}
	a, ok := s.Answers[templateID]
	return a, ok
}

// Date is a custom type for handling SQL DATE (YYYY-MM-DD)
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Scan implements the Scanner interface
func (d *Date) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return errors.New("failed to scan Date")
	}
	d.Time = t
	return nil
}

// Value implements the Valuer interface
func (d *Date) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return d.Time, nil
}

// MarshalJSON implements json.Marshaler
func (d *Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" || str == `""` {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
