// Package validation checks submitted answer values against the answer
// shape their template's question type requires.
package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/apply-autofill/internal/types"
)

// AnswerShapeError represents a submitted answer whose JSON shape does
// not match the template's question type. It is rejected synchronously
// and never retried.
type AnswerShapeError struct {
	TemplateID   int64
	QuestionType types.QuestionType
	Details      []string
}

func (e *AnswerShapeError) Error() string {
	return fmt.Sprintf("answer shape invalid for template %d (%s): %s",
		e.TemplateID, e.QuestionType, strings.Join(e.Details, "; "))
}

// SchemaError represents a failure to compile or evaluate a schema
// itself, as opposed to an invalid answer.
type SchemaError struct {
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("schema error: %s", e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
