package matching

import (
	"sort"
	"sync"

	"github.com/jonathan/apply-autofill/internal/types"
)

// DefaultThreshold is the minimum fuzzy similarity score for a match.
const DefaultThreshold = 0.6

// TemplateSource provides the catalog snapshot the matcher indexes.
type TemplateSource interface {
	All() []types.QuestionTemplate
}

// Match is the outcome of matching one observed question. Template is
// nil when Confidence is unresolved.
type Match struct {
	Template   *types.QuestionTemplate
	Confidence types.Confidence
	Score      float64
}

// Session carries per-form matching context across fields. Exact-match
// ties prefer the category matched most recently in the same session.
// The session is caller-owned; the matcher itself stays stateless.
type Session struct {
	mu           sync.Mutex
	lastCategory string
}

// NewSession creates an empty matching session.
func NewSession() *Session {
	return &Session{}
}

// LastCategory returns the category of the most recent match in this session.
func (s *Session) LastCategory() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCategory
}

func (s *Session) note(category string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCategory = category
}

// Matcher maps an observed question to zero-or-one catalog template.
// It is a pure function of its inputs plus the catalog snapshot it was
// built from, and never mutates catalog or answer state.
type Matcher struct {
	threshold float64
	templates []types.QuestionTemplate
	tokens    []map[string]bool // token set per template, same index as templates
	exact     map[string][]int  // normalized canonical text or alias -> template indices
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold overrides the fuzzy acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		if threshold > 0 {
			m.threshold = threshold
		}
	}
}

// New builds a Matcher over a catalog snapshot.
func New(source TemplateSource, opts ...Option) *Matcher {
	templates := append([]types.QuestionTemplate(nil), source.All()...)

	// Deterministic iteration order regardless of source ordering
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].ID < templates[j].ID
	})

	m := &Matcher{
		threshold: DefaultThreshold,
		templates: templates,
		tokens:    make([]map[string]bool, len(templates)),
		exact:     make(map[string][]int),
	}

	for i := range templates {
		m.tokens[i] = Tokens(templates[i].Question)

		canonical := Normalize(templates[i].Question)
		if canonical != "" {
			m.exact[canonical] = append(m.exact[canonical], i)
		}
		for _, alias := range templates[i].Aliases {
			normalized := Normalize(alias)
			if normalized == "" || normalized == canonical {
				continue
			}
			m.exact[normalized] = append(m.exact[normalized], i)
		}
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Threshold returns the configured fuzzy acceptance threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match maps one observed question to the best catalog template, or to
// an unresolved Match when nothing clears the bar. sess may be nil.
func (m *Matcher) Match(q types.ObservedQuestion, sess *Session) (*Match, error) {
	normalized := Normalize(q.Text)
	if normalized == "" {
		return nil, &InvalidInputError{Message: "observed question text is empty"}
	}

	// Priority 1: exact canonical or alias match
	if indices, ok := m.exact[normalized]; ok {
		if idx, found := m.pickExact(indices, q.QuestionType, sess.LastCategory()); found {
			tmpl := m.templates[idx]
			sess.note(tmpl.Category)
			return &Match{Template: &tmpl, Confidence: types.ConfidenceExact, Score: 1.0}, nil
		}
	}

	// Priority 2: fuzzy token-overlap match
	if idx, score, found := m.pickFuzzy(q, sess.LastCategory()); found {
		tmpl := m.templates[idx]
		sess.note(tmpl.Category)
		return &Match{Template: &tmpl, Confidence: types.ConfidenceFuzzy, Score: score}, nil
	}

	return &Match{Confidence: types.ConfidenceUnresolved}, nil
}

// pickExact selects among exact-match candidates: type-compatible only,
// preferring the session's most recent category, then the lowest id.
func (m *Matcher) pickExact(indices []int, hint types.QuestionType, recentCategory string) (int, bool) {
	best := -1
	bestRecent := false
	for _, idx := range indices {
		if !compatibleType(hint, m.templates[idx].QuestionType) {
			continue
		}
		recent := recentCategory != "" && m.templates[idx].Category == recentCategory
		if best == -1 || (recent && !bestRecent) {
			best = idx
			bestRecent = recent
		}
	}
	return best, best != -1
}

// pickFuzzy scores every type-compatible template and returns the best
// one above the threshold. Field context text is scored as a fallback
// signal; it can rescue a match but never outranks a better text score.
func (m *Matcher) pickFuzzy(q types.ObservedQuestion, recentCategory string) (int, float64, bool) {
	textTokens := Tokens(q.Text)
	var contextTokens map[string]bool
	if q.FieldContext != "" {
		contextTokens = Tokens(q.FieldContext)
	}

	best := -1
	bestScore := 0.0
	bestRecent := false
	for i := range m.templates {
		if !compatibleType(q.QuestionType, m.templates[i].QuestionType) {
			continue
		}

		score := Jaccard(textTokens, m.tokens[i])
		if contextTokens != nil {
			if ctxScore := Jaccard(contextTokens, m.tokens[i]); ctxScore > score {
				score = ctxScore
			}
		}

		recent := recentCategory != "" && m.templates[i].Category == recentCategory
		switch {
		case score > bestScore:
			best, bestScore, bestRecent = i, score, recent
		case score == bestScore && best != -1 && recent && !bestRecent:
			best, bestRecent = i, recent
		}
	}

	if best == -1 || bestScore < m.threshold {
		return -1, 0.0, false
	}
	return best, bestScore, true
}

// compatibleType reports whether a question-type hint is compatible with
// a template's question type. A missing hint is compatible with all. A
// text hint may still match textarea and select templates (selects are
// often rendered as autocomplete text inputs); everything else requires
// an exact type match.
func compatibleType(hint, questionType types.QuestionType) bool {
	if hint == "" || hint == questionType {
		return true
	}
	switch hint {
	case types.QuestionTypeText:
		return questionType == types.QuestionTypeTextarea || questionType == types.QuestionTypeSelect
	case types.QuestionTypeTextarea:
		return questionType == types.QuestionTypeText
	}
	return false
}
