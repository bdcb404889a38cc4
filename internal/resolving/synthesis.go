package resolving

import (
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/apply-autofill/internal/types"
)

// synthesisRule derives an answer for one template category from
// structured profile data. Rules are declarative (extract + optional
// transform) so the category coverage stays table-driven.
type synthesisRule struct {
	extract   func(*types.ProfileSnapshot) string
	transform func(string) string
}

var synthesisRules = map[string]synthesisRule{
	"personal.firstName": {extract: personalField(func(p *types.PersonalInfo) string { return p.FirstName })},
	"personal.lastName":  {extract: personalField(func(p *types.PersonalInfo) string { return p.LastName })},
	"personal.fullName":  {extract: personalField(func(p *types.PersonalInfo) string { return p.FullName() })},
	"personal.email":     {extract: personalField(func(p *types.PersonalInfo) string { return p.Email })},
	"personal.phone": {
		extract:   personalField(func(p *types.PersonalInfo) string { return p.Phone }),
		transform: FormatPhone,
	},
	"personal.address":  {extract: personalField(func(p *types.PersonalInfo) string { return p.Address })},
	"personal.city":     {extract: personalField(func(p *types.PersonalInfo) string { return p.City })},
	"personal.state":    {extract: personalField(func(p *types.PersonalInfo) string { return p.State })},
	"personal.zipCode":  {extract: personalField(func(p *types.PersonalInfo) string { return p.ZipCode })},
	"personal.country":  {extract: personalField(func(p *types.PersonalInfo) string { return p.Country })},
	"personal.linkedin": {extract: personalField(func(p *types.PersonalInfo) string { return p.LinkedIn })},
	"personal.website":  {extract: personalField(func(p *types.PersonalInfo) string { return p.Website })},

	"experience.currentEmployer": {extract: func(s *types.ProfileSnapshot) string {
		if job := mostRecentWork(s); job != nil {
			return job.Company
		}
		return ""
	}},
	"experience.currentTitle": {extract: func(s *types.ProfileSnapshot) string {
		if job := mostRecentWork(s); job != nil {
			return job.Title
		}
		return ""
	}},
	"experience.yearsOfExperience": {extract: totalYearsOfExperience},

	"education.school": {extract: func(s *types.ProfileSnapshot) string {
		if edu := mostRecentEducation(s); edu != nil {
			return edu.School
		}
		return ""
	}},
	"education.highestDegree": {extract: highestDegree},
	"education.fieldOfStudy": {extract: func(s *types.ProfileSnapshot) string {
		if edu := mostRecentEducation(s); edu != nil {
			return edu.Field
		}
		return ""
	}},
	"education.graduationYear": {extract: func(s *types.ProfileSnapshot) string {
		if edu := mostRecentEducation(s); edu != nil && edu.EndDate != nil && !edu.EndDate.IsZero() {
			return strconv.Itoa(edu.EndDate.Year())
		}
		return ""
	}},

	"skills.list": {extract: func(s *types.ProfileSnapshot) string {
		if s == nil || s.Profile == nil {
			return ""
		}
		return strings.Join(s.Profile.Skills, ", ")
	}},
}

// Synthesize derives an answer for a template category from the profile
// snapshot. The second return is false when no rule covers the category
// or the target profile field is empty.
func Synthesize(category string, snapshot *types.ProfileSnapshot) (string, bool) {
	rule, ok := synthesisRules[category]
	if !ok || snapshot == nil {
		return "", false
	}

	value := rule.extract(snapshot)
	if value == "" {
		return "", false
	}
	if rule.transform != nil {
		value = rule.transform(value)
	}
	return value, true
}

// personalField adapts a PersonalInfo field getter into a snapshot extractor.
func personalField(get func(*types.PersonalInfo) string) func(*types.ProfileSnapshot) string {
	return func(s *types.ProfileSnapshot) string {
		if s == nil || s.Profile == nil || s.Profile.PersonalInfo == nil {
			return ""
		}
		return get(s.Profile.PersonalInfo)
	}
}

// mostRecentWork picks the user's most recent work experience: a current
// position wins, then the latest end date, then the last-entered entry.
func mostRecentWork(s *types.ProfileSnapshot) *types.WorkExperience {
	if s == nil || len(s.WorkExperience) == 0 {
		return nil
	}

	best := &s.WorkExperience[0]
	for i := 1; i < len(s.WorkExperience); i++ {
		candidate := &s.WorkExperience[i]
		switch {
		case candidate.Current != best.Current:
			if candidate.Current {
				best = candidate
			}
		case laterEndDate(candidate, best):
			best = candidate
		case sameEndDate(candidate, best) && candidate.Ordinal > best.Ordinal:
			best = candidate
		}
	}
	return best
}

func laterEndDate(a, b *types.WorkExperience) bool {
	aEnd, bEnd := endOf(a), endOf(b)
	return aEnd.After(bEnd)
}

func sameEndDate(a, b *types.WorkExperience) bool {
	return endOf(a).Equal(endOf(b))
}

// endOf treats a missing end date on a current position as "today".
func endOf(w *types.WorkExperience) time.Time {
	if w.EndDate != nil && !w.EndDate.IsZero() {
		return w.EndDate.Time
	}
	if w.Current {
		return time.Now()
	}
	return time.Time{}
}

// mostRecentEducation picks the education entry with the latest end
// date, falling back to the last-entered entry.
func mostRecentEducation(s *types.ProfileSnapshot) *types.Education {
	if s == nil || len(s.Education) == 0 {
		return nil
	}

	best := &s.Education[0]
	for i := 1; i < len(s.Education); i++ {
		candidate := &s.Education[i]
		bestEnd, candidateEnd := eduEnd(best), eduEnd(candidate)
		if candidateEnd.After(bestEnd) || (candidateEnd.Equal(bestEnd) && candidate.Ordinal > best.Ordinal) {
			best = candidate
		}
	}
	return best
}

func eduEnd(e *types.Education) time.Time {
	if e.EndDate != nil && !e.EndDate.IsZero() {
		return e.EndDate.Time
	}
	return time.Time{}
}

// totalYearsOfExperience sums the spans of all work experience entries,
// rounded down to whole years. Open-ended current positions count up to
// today.
func totalYearsOfExperience(s *types.ProfileSnapshot) string {
	if s == nil || len(s.WorkExperience) == 0 {
		return ""
	}

	var total time.Duration
	for i := range s.WorkExperience {
		w := &s.WorkExperience[i]
		if w.StartDate == nil || w.StartDate.IsZero() {
			continue
		}
		end := endOf(w)
		if end.IsZero() || end.Before(w.StartDate.Time) {
			continue
		}
		total += end.Sub(w.StartDate.Time)
	}

	years := int(total.Hours() / (24 * 365.25))
	if years <= 0 {
		return ""
	}
	return strconv.Itoa(years)
}

// degreeRanks orders degree keywords from lowest to highest.
var degreeRanks = []struct {
	keyword string
	value   string
	rank    int
}{
	{"high school", "high_school", 1},
	{"ged", "high_school", 1},
	{"associate", "associate", 2},
	{"bachelor", "bachelor", 3},
	{"bs", "bachelor", 3},
	{"ba", "bachelor", 3},
	{"master", "master", 4},
	{"ms", "master", 4},
	{"ma", "master", 4},
	{"mba", "master", 4},
	{"phd", "doctorate", 5},
	{"doctor", "doctorate", 5},
	{"md", "doctorate", 5},
	{"jd", "doctorate", 5},
}

// highestDegree maps the user's education entries onto the canonical
// degree option values, returning the highest-ranked one.
func highestDegree(s *types.ProfileSnapshot) string {
	if s == nil {
		return ""
	}

	bestRank := 0
	bestValue := ""
	for i := range s.Education {
		degree := strings.ToLower(s.Education[i].DegreeType)
		if degree == "" {
			continue
		}
		for _, entry := range degreeRanks {
			if !degreeMentions(degree, entry.keyword) {
				continue
			}
			if entry.rank > bestRank {
				bestRank = entry.rank
				bestValue = entry.value
			}
		}
	}
	return bestValue
}

// degreeMentions checks for a keyword as a whole word so that "master"
// does not fire on "headmaster" style noise, and short abbreviations
// like "ba" do not fire inside longer words.
func degreeMentions(degree, keyword string) bool {
	if strings.Contains(keyword, " ") {
		return strings.Contains(degree, keyword)
	}
	for _, word := range strings.FieldsFunc(degree, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if word == keyword {
			return true
		}
	}
	return false
}
