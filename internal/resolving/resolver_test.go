package resolving

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/apply-autofill/internal/matching"
	"github.com/jonathan/apply-autofill/internal/types"
)

func emailTemplate() *types.QuestionTemplate {
	return &types.QuestionTemplate{
		ID: 1, Category: "personal.email", QuestionType: types.QuestionTypeText,
		Question: "What is your email address?",
	}
}

func TestResolveStoredAnswerWinsOverProfile(t *testing.T) {
	// Both a stored answer and a synthesizable profile field exist; the
	// stored answer must win.
	snapshot := &types.ProfileSnapshot{
		Profile: &types.Profile{
			PersonalInfo: &types.PersonalInfo{Email: "profile@example.com"},
		},
		Answers: map[int64]types.UserAnswer{
			1: {TemplateID: 1, Value: json.RawMessage(`"stored@example.com"`)},
		},
	}
	match := &matching.Match{Template: emailTemplate(), Confidence: types.ConfidenceExact, Score: 1.0}

	resolved := Resolve(match, snapshot)

	assert.Equal(t, int64(1), resolved.TemplateID)
	assert.Equal(t, "stored@example.com", resolved.Value)
	assert.Equal(t, types.ConfidenceExact, resolved.Confidence)
	assert.Equal(t, types.SourceStoredAnswer, resolved.Source)
}

func TestResolveStoredAnswerKeepsMatchConfidence(t *testing.T) {
	snapshot := &types.ProfileSnapshot{
		Answers: map[int64]types.UserAnswer{
			1: {TemplateID: 1, Value: json.RawMessage(`"stored@example.com"`)},
		},
	}
	match := &matching.Match{Template: emailTemplate(), Confidence: types.ConfidenceFuzzy, Score: 0.8}

	resolved := Resolve(match, snapshot)

	assert.Equal(t, types.ConfidenceFuzzy, resolved.Confidence)
	assert.Equal(t, types.SourceStoredAnswer, resolved.Source)
}

func TestResolveSynthesizesFromProfile(t *testing.T) {
	snapshot := &types.ProfileSnapshot{
		Profile: &types.Profile{
			PersonalInfo: &types.PersonalInfo{Email: "profile@example.com"},
		},
	}
	match := &matching.Match{Template: emailTemplate(), Confidence: types.ConfidenceExact, Score: 1.0}

	resolved := Resolve(match, snapshot)

	assert.Equal(t, "profile@example.com", resolved.Value)
	assert.Equal(t, types.ConfidenceSynthesized, resolved.Confidence)
	assert.Equal(t, types.SourceProfileField, resolved.Source)
}

func TestResolveFallsBackToTemplateDefault(t *testing.T) {
	tmpl := emailTemplate()
	tmpl.DefaultValue = json.RawMessage(`"unknown@example.com"`)
	match := &matching.Match{Template: tmpl, Confidence: types.ConfidenceExact, Score: 1.0}

	resolved := Resolve(match, &types.ProfileSnapshot{})

	assert.Equal(t, "unknown@example.com", resolved.Value)
	assert.Equal(t, types.ConfidenceSynthesized, resolved.Confidence)
	assert.Equal(t, types.SourceDefault, resolved.Source)
}

func TestResolveUnresolvedWhenNothingAvailable(t *testing.T) {
	match := &matching.Match{Template: emailTemplate(), Confidence: types.ConfidenceExact, Score: 1.0}

	resolved := Resolve(match, &types.ProfileSnapshot{})

	assert.Equal(t, int64(1), resolved.TemplateID)
	assert.Nil(t, resolved.Value)
	assert.Equal(t, types.ConfidenceUnresolved, resolved.Confidence)
	assert.Empty(t, resolved.Source)
}

func TestResolveNoMatch(t *testing.T) {
	for _, match := range []*matching.Match{nil, {Confidence: types.ConfidenceUnresolved}} {
		resolved := Resolve(match, &types.ProfileSnapshot{})
		assert.Zero(t, resolved.TemplateID)
		assert.Equal(t, types.ConfidenceUnresolved, resolved.Confidence)
	}
}

func TestResolveDecodesStoredJSONValues(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected any
	}{
		{"String", `"hello"`, "hello"},
		{"Boolean", `true`, true},
		{"Number", `42`, float64(42)},
		{"Malformed falls back to raw text", `{broken`, "{broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &types.ProfileSnapshot{
				Answers: map[int64]types.UserAnswer{
					1: {TemplateID: 1, Value: json.RawMessage(tt.raw)},
				},
			}
			match := &matching.Match{Template: emailTemplate(), Confidence: types.ConfidenceExact}

			resolved := Resolve(match, snapshot)
			assert.Equal(t, tt.expected, resolved.Value)
		})
	}
}
