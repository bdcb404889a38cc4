package matching

import (
	"strings"
	"unicode"
)

// boilerplateTokens are filler words form builders wrap around questions.
// They carry no signal for matching and are stripped during normalization.
var boilerplateTokens = map[string]bool{
	"please":   true,
	"required": true,
	"optional": true,
	"enter":    true,
}

// Normalize canonicalizes observed question text for comparison:
// lower-case, punctuation stripped, whitespace collapsed, boilerplate
// tokens removed. Normalize is deterministic and idempotent.
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))

	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		// Punctuation and whitespace both collapse to a single space
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}

	fields := strings.Fields(builder.String())
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if boilerplateTokens[f] {
			continue
		}
		kept = append(kept, f)
	}

	return strings.Join(kept, " ")
}

// Tokens returns the normalized text split into its token set.
func Tokens(text string) map[string]bool {
	normalized := Normalize(text)
	if normalized == "" {
		return map[string]bool{}
	}
	set := make(map[string]bool)
	for _, f := range strings.Fields(normalized) {
		set[f] = true
	}
	return set
}
