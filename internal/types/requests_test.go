package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ResolveRequest
		wantErr bool
	}{
		{"Text only", ResolveRequest{Text: "Email Address"}, false},
		{"HTML only", ResolveRequest{HTML: `<label>Email</label><input>`}, false},
		{"Both", ResolveRequest{Text: "Email", HTML: "<input>"}, false},
		{"Neither", ResolveRequest{}, true},
		{"Valid type hint", ResolveRequest{Text: "Email", QuestionType: QuestionTypeText}, false},
		{"Invalid type hint", ResolveRequest{Text: "Email", QuestionType: "file"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBatchResolveRequestValidate(t *testing.T) {
	assert.Error(t, (&BatchResolveRequest{}).Validate(), "empty batch rejected")

	valid := &BatchResolveRequest{Questions: []ResolveRequest{{Text: "Email"}}}
	assert.NoError(t, valid.Validate())

	mixed := &BatchResolveRequest{Questions: []ResolveRequest{{Text: "Email"}, {}}}
	assert.Error(t, mixed.Validate(), "one bad item fails the batch")
}

func TestSubmitAnswerRequestValidate(t *testing.T) {
	assert.Error(t, (&SubmitAnswerRequest{}).Validate())
	assert.NoError(t, (&SubmitAnswerRequest{Value: json.RawMessage(`"x"`)}).Validate())
}

func TestCreateWorkExperienceRequestValidate(t *testing.T) {
	assert.Error(t, (&CreateWorkExperienceRequest{}).Validate())
	assert.Error(t, (&CreateWorkExperienceRequest{Company: "Acme"}).Validate(), "title required")
	assert.NoError(t, (&CreateWorkExperienceRequest{Company: "Acme", Title: "Engineer"}).Validate())
}

func TestCreateEducationRequestValidate(t *testing.T) {
	assert.Error(t, (&CreateEducationRequest{}).Validate())
	assert.NoError(t, (&CreateEducationRequest{School: "State University"}).Validate())
}
