// Package fieldcontext reduces HTML fragments captured around a form
// field to an observed question the matcher can work with.
package fieldcontext

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/apply-autofill/internal/types"
)

// ExtractionError represents a failure to parse or interpret a field's
// HTML fragment.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("field extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("field extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Extract parses the HTML fragment the extension captured around one
// form field and builds the observed question: the best available label
// text, a question-type hint derived from the control element, and the
// fragment's remaining visible text as field context.
func Extract(fragment string) (types.ObservedQuestion, error) {
	if strings.TrimSpace(fragment) == "" {
		return types.ObservedQuestion{}, &ExtractionError{Message: "empty HTML fragment"}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return types.ObservedQuestion{}, &ExtractionError{Message: "failed to parse HTML", Cause: err}
	}

	control := doc.Find("input, select, textarea").First()

	question := types.ObservedQuestion{
		Text:         questionText(doc, control),
		QuestionType: typeHint(control),
		FieldContext: collapseText(doc.Text()),
	}

	if question.Text == "" {
		return types.ObservedQuestion{}, &ExtractionError{Message: "no question text found in fragment"}
	}

	return question, nil
}

// questionText picks the field's label text by precedence: a <label>
// bound via for=, any <label> in the fragment, aria-label, placeholder,
// then <legend> (fieldset groups like radio clusters).
func questionText(doc *goquery.Document, control *goquery.Selection) string {
	if control.Length() > 0 {
		if id, ok := control.Attr("id"); ok && id != "" {
			if text := collapseText(doc.Find(`label[for="` + id + `"]`).Text()); text != "" {
				return text
			}
		}
	}

	if text := collapseText(doc.Find("label").First().Text()); text != "" {
		return text
	}

	if control.Length() > 0 {
		if aria, ok := control.Attr("aria-label"); ok {
			if text := collapseText(aria); text != "" {
				return text
			}
		}
		if placeholder, ok := control.Attr("placeholder"); ok {
			if text := collapseText(placeholder); text != "" {
				return text
			}
		}
	}

	return collapseText(doc.Find("legend").First().Text())
}

// typeHint maps the control element onto a question-type hint. Unknown
// or absent controls yield no hint rather than a guess.
func typeHint(control *goquery.Selection) types.QuestionType {
	if control.Length() == 0 {
		return ""
	}

	switch goquery.NodeName(control) {
	case "select":
		return types.QuestionTypeSelect
	case "textarea":
		return types.QuestionTypeTextarea
	case "input":
		inputType, _ := control.Attr("type")
		switch strings.ToLower(inputType) {
		case "checkbox", "radio":
			return types.QuestionTypeBoolean
		case "date":
			return types.QuestionTypeDate
		default:
			return types.QuestionTypeText
		}
	}
	return ""
}

func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
