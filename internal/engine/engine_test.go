package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-autofill/internal/catalog"
	"github.com/jonathan/apply-autofill/internal/types"
	"github.com/jonathan/apply-autofill/internal/validation"
)

// fakeStore is an in-memory Store for engine tests.
type fakeStore struct {
	profile    *types.Profile
	work       []types.WorkExperience
	education  []types.Education
	answers    map[int64]types.UserAnswer
	completion int
}

func newFakeStore() *fakeStore {
	return &fakeStore{answers: make(map[int64]types.UserAnswer)}
}

func (f *fakeStore) GetProfile(_ context.Context, _ uuid.UUID) (*types.Profile, error) {
	return f.profile, nil
}

func (f *fakeStore) ListWorkExperience(_ context.Context, _ uuid.UUID) ([]types.WorkExperience, error) {
	return f.work, nil
}

func (f *fakeStore) ListEducation(_ context.Context, _ uuid.UUID) ([]types.Education, error) {
	return f.education, nil
}

func (f *fakeStore) ListAnswers(_ context.Context, _ uuid.UUID) ([]types.UserAnswer, error) {
	answers := make([]types.UserAnswer, 0, len(f.answers))
	for _, a := range f.answers {
		answers = append(answers, a)
	}
	return answers, nil
}

func (f *fakeStore) UpsertAnswer(_ context.Context, userID uuid.UUID, templateID int64, value json.RawMessage) (*types.UserAnswer, error) {
	answer := types.UserAnswer{
		ID:         uuid.New(),
		UserID:     userID,
		TemplateID: templateID,
		Value:      value,
		UpdatedAt:  time.Now(),
	}
	f.answers[templateID] = answer
	return &answer, nil
}

func (f *fakeStore) UpdateProfileCompletion(_ context.Context, _ uuid.UUID, percentage int) error {
	f.completion = percentage
	if f.profile != nil {
		f.profile.CompletionPercentage = percentage
	}
	return nil
}

func newTestEngine(store Store) *Engine {
	return New(store, catalog.Seeded(), nil)
}

func TestResolveStoredAnswer(t *testing.T) {
	store := newFakeStore()
	store.answers[1] = types.UserAnswer{
		TemplateID: 1,
		Value:      json.RawMessage(`"dana@example.com"`),
	}
	e := newTestEngine(store)

	// "Email Address" hits template 1 through its alias list.
	resolved, err := e.Resolve(context.Background(), uuid.New(), types.ObservedQuestion{Text: "Email Address"}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resolved.TemplateID)
	assert.Equal(t, "dana@example.com", resolved.Value)
	assert.Equal(t, types.ConfidenceExact, resolved.Confidence)
	assert.Equal(t, types.SourceStoredAnswer, resolved.Source)
}

func TestResolvePrefersStoredAnswerOverProfile(t *testing.T) {
	store := newFakeStore()
	store.profile = &types.Profile{
		PersonalInfo: &types.PersonalInfo{Email: "profile@example.com"},
	}
	store.answers[1] = types.UserAnswer{
		TemplateID: 1,
		Value:      json.RawMessage(`"stored@example.com"`),
	}
	e := newTestEngine(store)

	resolved, err := e.Resolve(context.Background(), uuid.New(), types.ObservedQuestion{Text: "email address"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "stored@example.com", resolved.Value)
	assert.Equal(t, types.SourceStoredAnswer, resolved.Source)
}

func TestResolveSynthesizesFromProfile(t *testing.T) {
	store := newFakeStore()
	store.work = []types.WorkExperience{
		{Company: "Acme", Title: "Staff Engineer", Current: true},
	}
	e := newTestEngine(store)

	resolved, err := e.Resolve(context.Background(), uuid.New(), types.ObservedQuestion{Text: "Current Employer"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Acme", resolved.Value)
	assert.Equal(t, types.ConfidenceSynthesized, resolved.Confidence)
	assert.Equal(t, types.SourceProfileField, resolved.Source)
}

func TestResolveUnmatchedQuestion(t *testing.T) {
	e := newTestEngine(newFakeStore())

	resolved, err := e.Resolve(context.Background(), uuid.New(), types.ObservedQuestion{
		Text: "Describe a conflict you handled at work and what you learned",
	}, nil)
	require.NoError(t, err)

	assert.Zero(t, resolved.TemplateID)
	assert.Nil(t, resolved.Value)
	assert.Equal(t, types.ConfidenceUnresolved, resolved.Confidence)
}

func TestResolveMatchedButNoData(t *testing.T) {
	e := newTestEngine(newFakeStore())

	resolved, err := e.Resolve(context.Background(), uuid.New(), types.ObservedQuestion{Text: "Start Date"}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(24), resolved.TemplateID)
	assert.Nil(t, resolved.Value)
	assert.Equal(t, types.ConfidenceUnresolved, resolved.Confidence)
}

func TestResolveEmptyQuestion(t *testing.T) {
	e := newTestEngine(newFakeStore())

	_, err := e.Resolve(context.Background(), uuid.New(), types.ObservedQuestion{Text: "  "}, nil)
	assert.Error(t, err)
}

func TestResolveBatch(t *testing.T) {
	store := newFakeStore()
	store.profile = &types.Profile{
		PersonalInfo: &types.PersonalInfo{
			FirstName: "Dana",
			LastName:  "Okafor",
			Email:     "dana@example.com",
		},
	}
	e := newTestEngine(store)

	questions := []types.ObservedQuestion{
		{Text: "First Name"},
		{Text: "Last Name"},
		{Text: "Email Address"},
		{Text: "Tell us about an obscure hobby of yours"},
	}

	resolved, err := e.ResolveBatch(context.Background(), uuid.New(), questions)
	require.NoError(t, err)
	require.Len(t, resolved, 4)

	assert.Equal(t, "Dana", resolved[0].Value)
	assert.Equal(t, "Okafor", resolved[1].Value)
	assert.Equal(t, "dana@example.com", resolved[2].Value)
	assert.Equal(t, types.ConfidenceUnresolved, resolved[3].Confidence)
}

func TestResolveBatchOrderStable(t *testing.T) {
	store := newFakeStore()
	store.profile = &types.Profile{
		PersonalInfo: &types.PersonalInfo{FirstName: "Dana", LastName: "Okafor"},
	}
	e := newTestEngine(store)

	questions := []types.ObservedQuestion{
		{Text: "Last Name"},
		{Text: "First Name"},
	}

	for i := 0; i < 5; i++ {
		resolved, err := e.ResolveBatch(context.Background(), uuid.New(), questions)
		require.NoError(t, err)
		require.Len(t, resolved, 2)
		assert.Equal(t, "Okafor", resolved[0].Value, "results must stay in request order")
		assert.Equal(t, "Dana", resolved[1].Value)
	}
}

func TestResolveBatchRecencyTieBreakStable(t *testing.T) {
	// Two templates whose questions fuzzy-tie on an ambiguous field. An
	// earlier field anchors the employer category, so the tie must fall
	// to it on every run, not to the lower id.
	cat := catalog.New([]types.QuestionTemplate{
		{
			ID: 1, Category: "personal.fullName", QuestionType: types.QuestionTypeText,
			Question: "Name of person",
		},
		{
			ID: 2, Category: "experience.currentEmployer", QuestionType: types.QuestionTypeText,
			Question: "Name of company",
			Aliases:  []string{"employer"},
		},
	})
	e := New(newFakeStore(), cat, nil)

	questions := []types.ObservedQuestion{
		{Text: "Employer"},
		{Text: "name of"},
	}

	for i := 0; i < 100; i++ {
		resolved, err := e.ResolveBatch(context.Background(), uuid.New(), questions)
		require.NoError(t, err)
		require.Len(t, resolved, 2)
		assert.Equal(t, int64(2), resolved[0].TemplateID)
		assert.Equal(t, int64(2), resolved[1].TemplateID,
			"tie must follow the category matched on the previous field")
	}

	// Without the anchor the same tie falls to the lowest id.
	for i := 0; i < 100; i++ {
		resolved, err := e.ResolveBatch(context.Background(), uuid.New(), questions[1:])
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, int64(1), resolved[0].TemplateID)
	}
}

func TestSubmitAnswer(t *testing.T) {
	store := newFakeStore()
	e := newTestEngine(store)
	userID := uuid.New()

	answer, err := e.SubmitAnswer(context.Background(), userID, 1, json.RawMessage(`"dana@example.com"`))
	require.NoError(t, err)
	assert.Equal(t, userID, answer.UserID)
	assert.Equal(t, int64(1), answer.TemplateID)

	// The stored answer now wins future resolutions.
	resolved, err := e.Resolve(context.Background(), userID, types.ObservedQuestion{Text: "email"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", resolved.Value)
	assert.Equal(t, types.SourceStoredAnswer, resolved.Source)
}

func TestSubmitAnswerUnknownTemplate(t *testing.T) {
	e := newTestEngine(newFakeStore())

	_, err := e.SubmitAnswer(context.Background(), uuid.New(), 999, json.RawMessage(`"x"`))
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSubmitAnswerRejectsWrongShape(t *testing.T) {
	e := newTestEngine(newFakeStore())

	tests := []struct {
		name       string
		templateID int64
		value      string
	}{
		{"Number for text template", 1, `42`},
		{"String for boolean template", 22, `"yes"`},
		{"Non-option for select template", 18, `"bootcamp"`},
		{"Garbage date", 24, `"tomorrow"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.SubmitAnswer(context.Background(), uuid.New(), tt.templateID, json.RawMessage(tt.value))
			var shapeErr *validation.AnswerShapeError
			assert.ErrorAs(t, err, &shapeErr)
		})
	}
}

func TestCompletion(t *testing.T) {
	store := newFakeStore()
	store.profile = &types.Profile{
		PersonalInfo: &types.PersonalInfo{FirstName: "Dana"},
		Skills:       []string{"Go"},
	}
	store.work = []types.WorkExperience{{Company: "Acme"}}
	e := newTestEngine(store)

	report, err := e.Completion(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 75, report.Percentage)
	assert.True(t, report.Sections.PersonalInfo)
	assert.True(t, report.Sections.WorkExperience)
	assert.False(t, report.Sections.Education)
	assert.True(t, report.Sections.Skills)
}

func TestCompletionWithoutProfile(t *testing.T) {
	e := newTestEngine(newFakeStore())

	report, err := e.Completion(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, report.Percentage)
}

func TestRecomputeCompletionPersists(t *testing.T) {
	store := newFakeStore()
	store.profile = &types.Profile{
		PersonalInfo: &types.PersonalInfo{FirstName: "Dana"},
	}
	e := newTestEngine(store)

	report, err := e.RecomputeCompletion(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 25, report.Percentage)
	assert.Equal(t, 25, store.completion)
}

func TestRecomputeCompletionSkipsMissingProfile(t *testing.T) {
	store := newFakeStore()
	store.completion = -1
	e := newTestEngine(store)

	report, err := e.RecomputeCompletion(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, report.Percentage)
	assert.Equal(t, -1, store.completion, "nothing to persist without a profile row")
}

func TestSnapshot(t *testing.T) {
	store := newFakeStore()
	store.profile = &types.Profile{PersonalInfo: &types.PersonalInfo{FirstName: "Dana"}}
	store.work = []types.WorkExperience{{Company: "Acme"}}
	store.education = []types.Education{{School: "State University"}}
	store.answers[5] = types.UserAnswer{TemplateID: 5, Value: json.RawMessage(`"5551234567"`)}
	e := newTestEngine(store)

	snapshot, err := e.Snapshot(context.Background(), uuid.New())
	require.NoError(t, err)

	require.NotNil(t, snapshot.Profile)
	assert.Len(t, snapshot.WorkExperience, 1)
	assert.Len(t, snapshot.Education, 1)

	answer, ok := snapshot.StoredAnswer(5)
	assert.True(t, ok)
	assert.Equal(t, int64(5), answer.TemplateID)

	_, ok = snapshot.StoredAnswer(99)
	assert.False(t, ok)
}
