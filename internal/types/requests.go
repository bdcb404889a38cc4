package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// ResolveRequest represents one form-field resolution request from the
// extension. Either Text or HTML must be set; HTML is the field's
// surrounding markup and is reduced to an observed question server-side.
type ResolveRequest struct {
	Text         string       `json:"text,omitempty"`
	HTML         string       `json:"html,omitempty"`
	QuestionType QuestionType `json:"question_type,omitempty"`
	FieldContext string       `json:"field_context,omitempty"`
}

// Validate validates the ResolveRequest.
func (r *ResolveRequest) Validate() error {
	if r.Text == "" && r.HTML == "" {
		return &FieldValidationError{Field: "text", Message: "either text or html is required"}
	}
	if r.QuestionType != "" && !r.QuestionType.Valid() {
		return &FieldValidationError{Field: "question_type", Message: "unknown question type: " + string(r.QuestionType)}
	}
	return nil
}

// BatchResolveRequest represents a whole-form resolution request.
type BatchResolveRequest struct {
	Questions []ResolveRequest `json:"questions" validate:"required,min=1"`
}

// Validate validates the BatchResolveRequest and each question in it.
func (r *BatchResolveRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	for i := range r.Questions {
		if err := r.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SubmitAnswerRequest represents an explicit answer submission for a
// template. Value is kept raw so its shape can be checked against the
// template's question type.
type SubmitAnswerRequest struct {
	Value json.RawMessage `json:"value" validate:"required"`
}

// Validate validates the SubmitAnswerRequest using the validator.
func (r *SubmitAnswerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpsertProfileRequest represents a profile create/update request.
type UpsertProfileRequest struct {
	PersonalInfo *PersonalInfo `json:"personal_info,omitempty"`
	Skills       []string      `json:"skills,omitempty"`
}

// CreateWorkExperienceRequest represents a work experience create/update request.
type CreateWorkExperienceRequest struct {
	Company     string `json:"company" validate:"required,min=1"`
	Title       string `json:"title" validate:"required,min=1"`
	Location    string `json:"location,omitempty"`
	StartDate   *Date  `json:"start_date,omitempty"`
	EndDate     *Date  `json:"end_date,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Validate validates the CreateWorkExperienceRequest using the validator.
func (r *CreateWorkExperienceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CreateEducationRequest represents an education create/update request.
type CreateEducationRequest struct {
	School     string `json:"school" validate:"required,min=1"`
	DegreeType string `json:"degree_type,omitempty"`
	Field      string `json:"field,omitempty"`
	GPA        string `json:"gpa,omitempty"`
	Location   string `json:"location,omitempty"`
	StartDate  *Date  `json:"start_date,omitempty"`
	EndDate    *Date  `json:"end_date,omitempty"`
}

// Validate validates the CreateEducationRequest using the validator.
func (r *CreateEducationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CompletionSections reports per-section completeness of a profile.
type CompletionSections struct {
	PersonalInfo   bool `json:"personal_info"`
	WorkExperience bool `json:"work_experience"`
	Education      bool `json:"education"`
	Skills         bool `json:"skills"`
}

// CompletionReport is the dashboard-facing completion summary.
type CompletionReport struct {
	Percentage int                `json:"percentage"`
	Sections   CompletionSections `json:"sections"`
}

// FieldValidationError indicates a request field failed validation.
type FieldValidationError struct {
	Field   string
	Message string
}

func (e *FieldValidationError) Error() string {
	return "validation error: " + e.Field + " - " + e.Message
}
