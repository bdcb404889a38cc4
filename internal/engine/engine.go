package engine

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/apply-autofill/internal/catalog"
	"github.com/jonathan/apply-autofill/internal/matching"
	"github.com/jonathan/apply-autofill/internal/resolving"
	"github.com/jonathan/apply-autofill/internal/scoring"
	"github.com/jonathan/apply-autofill/internal/types"
	"github.com/jonathan/apply-autofill/internal/validation"
)

// Store is the persistence boundary the engine reads through. All reads
// happen once per call and are passed onward as an immutable snapshot.
// Implementations return nil (not an error) for absent entities.
type Store interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	ListWorkExperience(ctx context.Context, userID uuid.UUID) ([]types.WorkExperience, error)
	ListEducation(ctx context.Context, userID uuid.UUID) ([]types.Education, error)
	ListAnswers(ctx context.Context, userID uuid.UUID) ([]types.UserAnswer, error)
	UpsertAnswer(ctx context.Context, userID uuid.UUID, templateID int64, value json.RawMessage) (*types.UserAnswer, error)
	UpdateProfileCompletion(ctx context.Context, userID uuid.UUID, percentage int) error
}

// Engine is the per-request entry point for matching, resolution,
// answer submission and completion scoring. It holds no mutable state
// of its own; every operation computes over externally-owned data.
type Engine struct {
	store   Store
	catalog *catalog.Catalog
	matcher *matching.Matcher
	log     *zap.Logger
}

// New creates an Engine over a store and a catalog snapshot.
func New(store Store, cat *catalog.Catalog, log *zap.Logger, matcherOpts ...matching.Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		store:   store,
		catalog: cat,
		matcher: matching.New(cat, matcherOpts...),
		log:     log,
	}
}

// Catalog returns the engine's catalog snapshot.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Snapshot fetches the user's profile, work experience, education and
// stored answers in one parallel round trip.
func (e *Engine) Snapshot(ctx context.Context, userID uuid.UUID) (*types.ProfileSnapshot, error) {
	snapshot := &types.ProfileSnapshot{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := e.store.GetProfile(gCtx, userID)
		if err != nil {
			return err
		}
		snapshot.Profile = profile
		return nil
	})
	g.Go(func() error {
		work, err := e.store.ListWorkExperience(gCtx, userID)
		if err != nil {
			return err
		}
		snapshot.WorkExperience = work
		return nil
	})
	g.Go(func() error {
		education, err := e.store.ListEducation(gCtx, userID)
		if err != nil {
			return err
		}
		snapshot.Education = education
		return nil
	})
	g.Go(func() error {
		answers, err := e.store.ListAnswers(gCtx, userID)
		if err != nil {
			return err
		}
		byTemplate := make(map[int64]types.UserAnswer, len(answers))
		for _, answer := range answers {
			byTemplate[answer.TemplateID] = answer
		}
		snapshot.Answers = byTemplate
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Resolve matches one observed question and produces the best available
// answer for the user. sess may be nil when no per-form context exists.
func (e *Engine) Resolve(ctx context.Context, userID uuid.UUID, q types.ObservedQuestion, sess *matching.Session) (*types.ResolvedAnswer, error) {
	match, err := e.matcher.Match(q, sess)
	if err != nil {
		return nil, err
	}

	if match.Template == nil {
		e.log.Debug("no template matched", zap.String("question", q.Text))
		return &types.ResolvedAnswer{Confidence: types.ConfidenceUnresolved}, nil
	}

	snapshot, err := e.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	resolved := resolving.Resolve(match, snapshot)
	e.log.Debug("resolved question",
		zap.String("question", q.Text),
		zap.Int64("template_id", resolved.TemplateID),
		zap.String("confidence", string(resolved.Confidence)),
		zap.String("source", string(resolved.Source)),
	)
	return &resolved, nil
}

// ResolveBatch resolves every field on one form. The snapshot is fetched
// once (the only I/O); fields are then matched and resolved sequentially
// in form order, so the session's recency tie-break sees earlier fields'
// matches and the same input always yields the same output.
func (e *Engine) ResolveBatch(ctx context.Context, userID uuid.UUID, questions []types.ObservedQuestion) ([]types.ResolvedAnswer, error) {
	snapshot, err := e.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess := matching.NewSession()
	results := make([]types.ResolvedAnswer, len(questions))
	for i := range questions {
		match, err := e.matcher.Match(questions[i], sess)
		if err != nil {
			return nil, err
		}
		results[i] = resolving.Resolve(match, snapshot)
	}
	return results, nil
}

// SubmitAnswer validates and upserts an explicit user answer for a
// template. The upsert is idempotent: repeated writes of the same value
// change nothing beyond updated_at.
func (e *Engine) SubmitAnswer(ctx context.Context, userID uuid.UUID, templateID int64, value json.RawMessage) (*types.UserAnswer, error) {
	tmpl := e.catalog.FindByID(templateID)
	if tmpl == nil {
		return nil, &NotFoundError{Resource: "template", ID: strconv.FormatInt(templateID, 10)}
	}

	if err := validation.ValidateAnswer(tmpl, value); err != nil {
		return nil, err
	}

	answer, err := e.store.UpsertAnswer(ctx, userID, templateID, value)
	if err != nil {
		return nil, err
	}

	e.log.Debug("answer stored",
		zap.String("user_id", userID.String()),
		zap.Int64("template_id", templateID),
	)
	return answer, nil
}

// Completion computes the dashboard completion report for a user. A
// missing profile is a normal branch and scores as empty, not an error.
func (e *Engine) Completion(ctx context.Context, userID uuid.UUID) (*types.CompletionReport, error) {
	snapshot, err := e.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	report := scoring.Score(snapshot)
	return &report, nil
}

// RecomputeCompletion rescores the profile and persists the result.
// Called on every write that touches one of the four scored sections,
// so the stored value stays consistent with what the UI last saw.
func (e *Engine) RecomputeCompletion(ctx context.Context, userID uuid.UUID) (*types.CompletionReport, error) {
	snapshot, err := e.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := scoring.Score(snapshot)
	if snapshot.Profile != nil {
		if err := e.store.UpdateProfileCompletion(ctx, userID, report.Percentage); err != nil {
			return nil, err
		}
	}
	return &report, nil
}
