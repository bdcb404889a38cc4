package validation

import (
	"encoding/json"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/apply-autofill/internal/types"
)

// schemaByType holds the JSON Schema for each fixed-shape question type.
// Select templates get a per-template enum schema instead.
var schemaByType = map[types.QuestionType]map[string]any{
	types.QuestionTypeText: {
		"type":      "string",
		"minLength": 1,
	},
	types.QuestionTypeTextarea: {
		"type":      "string",
		"minLength": 1,
	},
	types.QuestionTypeBoolean: {
		"type": "boolean",
	},
	types.QuestionTypeDate: {
		"type":    "string",
		"pattern": `^\d{4}-\d{2}-\d{2}$`,
	},
}

// ValidateAnswer checks a raw submitted JSON value against the answer
// shape required by the template's question type. Returns an
// AnswerShapeError describing every violation, or nil when valid.
func ValidateAnswer(tmpl *types.QuestionTemplate, raw json.RawMessage) error {
	if len(raw) == 0 {
		return &AnswerShapeError{
			TemplateID:   tmpl.ID,
			QuestionType: tmpl.QuestionType,
			Details:      []string{"value is required"},
		}
	}

	schema, err := schemaFor(tmpl)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewStringLoader(string(raw)))
	if err != nil {
		// A value the schema engine cannot even parse is malformed input,
		// not an internal failure.
		return &AnswerShapeError{
			TemplateID:   tmpl.ID,
			QuestionType: tmpl.QuestionType,
			Details:      []string{"value is not valid JSON: " + err.Error()},
		}
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			details = append(details, resultErr.Description())
		}
		return &AnswerShapeError{
			TemplateID:   tmpl.ID,
			QuestionType: tmpl.QuestionType,
			Details:      details,
		}
	}

	// Pattern-valid dates still need to be real calendar dates.
	if tmpl.QuestionType == types.QuestionTypeDate {
		var value string
		if err := json.Unmarshal(raw, &value); err == nil {
			if _, err := time.Parse("2006-01-02", value); err != nil {
				return &AnswerShapeError{
					TemplateID:   tmpl.ID,
					QuestionType: tmpl.QuestionType,
					Details:      []string{"not a valid calendar date: " + value},
				}
			}
		}
	}

	return nil
}

// schemaFor returns the JSON Schema for a template. Select templates
// restrict the value to their option values.
func schemaFor(tmpl *types.QuestionTemplate) (map[string]any, error) {
	if tmpl.QuestionType == types.QuestionTypeSelect {
		values := make([]any, 0, len(tmpl.Options))
		for _, opt := range tmpl.Options {
			values = append(values, opt.Value)
		}
		if len(values) == 0 {
			return nil, &SchemaError{Message: "select template has no options"}
		}
		return map[string]any{"type": "string", "enum": values}, nil
	}

	schema, ok := schemaByType[tmpl.QuestionType]
	if !ok {
		return nil, &SchemaError{Message: "no schema for question type " + string(tmpl.QuestionType)}
	}
	return schema, nil
}
