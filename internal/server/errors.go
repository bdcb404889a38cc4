// Package server provides the HTTP REST API for the autofill engine.
package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/apply-autofill/internal/engine"
	"github.com/jonathan/apply-autofill/internal/fieldcontext"
	"github.com/jonathan/apply-autofill/internal/matching"
	"github.com/jonathan/apply-autofill/internal/types"
	"github.com/jonathan/apply-autofill/internal/validation"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// InvalidInput and malformed answer shapes map to 400, missing entities
// to 404, and anything else (including store failures, which the engine
// propagates untouched) to 500.
func HTTPStatus(err error) int {
	var notFound *engine.NotFoundError
	var invalidInput *matching.InvalidInputError
	var answerShape *validation.AnswerShapeError
	var fieldValidation *types.FieldValidationError
	var validationErrs validator.ValidationErrors
	var extraction *fieldcontext.ExtractionError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalidInput),
		errors.As(err, &answerShape),
		errors.As(err, &fieldValidation),
		errors.As(err, &validationErrs),
		errors.As(err, &extraction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
