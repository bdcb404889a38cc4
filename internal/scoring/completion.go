// Package scoring computes profile completion scores.
package scoring

import (
	"math"

	"github.com/jonathan/apply-autofill/internal/types"
)

// totalSections is the number of profile sections counted toward completion.
const totalSections = 4

// Score computes the 0-100 completion percentage and per-section status
// for a profile snapshot. A section counts as complete on presence
// alone: personal info exists, at least one work experience, at least
// one education entry, a non-empty skill set. Pure function; callers
// persist the result back onto the profile on every write that touches
// one of the four inputs.
func Score(snapshot *types.ProfileSnapshot) types.CompletionReport {
	sections := types.CompletionSections{}
	if snapshot != nil {
		if snapshot.Profile != nil {
			sections.PersonalInfo = snapshot.Profile.PersonalInfo != nil
			sections.Skills = len(snapshot.Profile.Skills) > 0
		}
		sections.WorkExperience = len(snapshot.WorkExperience) > 0
		sections.Education = len(snapshot.Education) > 0
	}

	completed := 0
	for _, done := range []bool{sections.PersonalInfo, sections.WorkExperience, sections.Education, sections.Skills} {
		if done {
			completed++
		}
	}

	percentage := int(math.Round(100 * float64(completed) / float64(totalSections)))

	return types.CompletionReport{
		Percentage: percentage,
		Sections:   sections,
	}
}
