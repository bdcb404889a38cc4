// Package resolving turns matched templates into concrete answer values.
package resolving

import (
	"encoding/json"

	"github.com/jonathan/apply-autofill/internal/matching"
	"github.com/jonathan/apply-autofill/internal/types"
)

// Resolve produces a ResolvedAnswer for a matched template against an
// immutable profile snapshot. Policy, in order: stored answer, profile
// synthesis, template default, unresolved. Resolution is read-only; the
// write-back path for new answers lives with the caller.
func Resolve(match *matching.Match, snapshot *types.ProfileSnapshot) types.ResolvedAnswer {
	if match == nil || match.Template == nil {
		return types.ResolvedAnswer{Confidence: types.ConfidenceUnresolved}
	}

	tmpl := match.Template

	// 1. A stored answer always wins, regardless of profile content.
	if stored, ok := snapshot.StoredAnswer(tmpl.ID); ok {
		return types.ResolvedAnswer{
			TemplateID: tmpl.ID,
			Value:      decodeValue(stored.Value),
			Confidence: match.Confidence,
			Source:     types.SourceStoredAnswer,
		}
	}

	// 2. Synthesize from profile data via the per-category rule table.
	if value, ok := Synthesize(tmpl.Category, snapshot); ok {
		return types.ResolvedAnswer{
			TemplateID: tmpl.ID,
			Value:      value,
			Confidence: types.ConfidenceSynthesized,
			Source:     types.SourceProfileField,
		}
	}

	// 3. Template-defined default. None exist in the current catalog,
	// but the contract allows them.
	if len(tmpl.DefaultValue) > 0 {
		return types.ResolvedAnswer{
			TemplateID: tmpl.ID,
			Value:      decodeValue(tmpl.DefaultValue),
			Confidence: types.ConfidenceSynthesized,
			Source:     types.SourceDefault,
		}
	}

	// 4. Unresolved: the extension leaves the field blank or prompts.
	return types.ResolvedAnswer{
		TemplateID: tmpl.ID,
		Confidence: types.ConfidenceUnresolved,
	}
}

// decodeValue unwraps a stored JSON value into its Go representation.
// Malformed stored values fall back to the raw string rather than
// failing the whole resolution.
func decodeValue(raw json.RawMessage) any {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	return value
}
