package resolving

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-autofill/internal/types"
)

func fullSnapshot() *types.ProfileSnapshot {
	return &types.ProfileSnapshot{
		Profile: &types.Profile{
			PersonalInfo: &types.PersonalInfo{
				FirstName: "Dana",
				LastName:  "Okafor",
				Email:     "dana@example.com",
				Phone:     "5551234567",
				City:      "Portland",
				State:     "OR",
			},
			Skills: []string{"Go", "PostgreSQL", "Kubernetes"},
		},
		WorkExperience: []types.WorkExperience{
			{
				Company:   "Old Corp",
				Title:     "Junior Engineer",
				StartDate: types.NewDate(2015, time.January, 1),
				EndDate:   types.NewDate(2018, time.January, 1),
				Ordinal:   1,
			},
			{
				Company:   "Acme",
				Title:     "Staff Engineer",
				StartDate: types.NewDate(2018, time.February, 1),
				Current:   true,
				Ordinal:   2,
			},
		},
		Education: []types.Education{
			{
				School:     "State University",
				DegreeType: "Bachelor of Science",
				Field:      "Computer Science",
				EndDate:    types.NewDate(2014, time.June, 1),
				Ordinal:    1,
			},
			{
				School:     "Tech Institute",
				DegreeType: "Master of Science",
				Field:      "Software Engineering",
				EndDate:    types.NewDate(2016, time.June, 1),
				Ordinal:    2,
			},
		},
	}
}

func TestSynthesizePersonalFields(t *testing.T) {
	snapshot := fullSnapshot()

	tests := []struct {
		category string
		expected string
	}{
		{"personal.firstName", "Dana"},
		{"personal.lastName", "Okafor"},
		{"personal.fullName", "Dana Okafor"},
		{"personal.email", "dana@example.com"},
		{"personal.phone", "(555) 123-4567"},
		{"personal.city", "Portland"},
		{"personal.state", "OR"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			value, ok := Synthesize(tt.category, snapshot)
			require.True(t, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestSynthesizeExperienceFields(t *testing.T) {
	snapshot := fullSnapshot()

	employer, ok := Synthesize("experience.currentEmployer", snapshot)
	require.True(t, ok)
	assert.Equal(t, "Acme", employer, "current position wins over ended ones")

	title, ok := Synthesize("experience.currentTitle", snapshot)
	require.True(t, ok)
	assert.Equal(t, "Staff Engineer", title)

	years, ok := Synthesize("experience.yearsOfExperience", snapshot)
	require.True(t, ok)
	assert.NotEmpty(t, years)
}

func TestSynthesizeEducationFields(t *testing.T) {
	snapshot := fullSnapshot()

	school, ok := Synthesize("education.school", snapshot)
	require.True(t, ok)
	assert.Equal(t, "Tech Institute", school, "latest end date wins")

	degree, ok := Synthesize("education.highestDegree", snapshot)
	require.True(t, ok)
	assert.Equal(t, "master", degree)

	field, ok := Synthesize("education.fieldOfStudy", snapshot)
	require.True(t, ok)
	assert.Equal(t, "Software Engineering", field)

	year, ok := Synthesize("education.graduationYear", snapshot)
	require.True(t, ok)
	assert.Equal(t, "2016", year)
}

func TestSynthesizeSkills(t *testing.T) {
	value, ok := Synthesize("skills.list", fullSnapshot())
	require.True(t, ok)
	assert.Equal(t, "Go, PostgreSQL, Kubernetes", value)
}

func TestSynthesizeMisses(t *testing.T) {
	tests := []struct {
		name     string
		category string
		snapshot *types.ProfileSnapshot
	}{
		{"Unknown category", "authorization.workAuthorization", fullSnapshot()},
		{"Nil snapshot", "personal.email", nil},
		{"Empty snapshot", "personal.email", &types.ProfileSnapshot{}},
		{"Empty field", "personal.website", fullSnapshot()},
		{"No work history", "experience.currentEmployer", &types.ProfileSnapshot{}},
		{"No education", "education.school", &types.ProfileSnapshot{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := Synthesize(tt.category, tt.snapshot)
			assert.False(t, ok)
			assert.Empty(t, value)
		})
	}
}

func TestMostRecentWork(t *testing.T) {
	t.Run("Latest end date when nothing is current", func(t *testing.T) {
		snapshot := &types.ProfileSnapshot{
			WorkExperience: []types.WorkExperience{
				{Company: "Newer", EndDate: types.NewDate(2022, time.March, 1), Ordinal: 1},
				{Company: "Older", EndDate: types.NewDate(2019, time.March, 1), Ordinal: 2},
			},
		}
		job := mostRecentWork(snapshot)
		require.NotNil(t, job)
		assert.Equal(t, "Newer", job.Company)
	})

	t.Run("Ties fall to the last entered entry", func(t *testing.T) {
		end := types.NewDate(2022, time.March, 1)
		snapshot := &types.ProfileSnapshot{
			WorkExperience: []types.WorkExperience{
				{Company: "First", EndDate: end, Ordinal: 1},
				{Company: "Second", EndDate: end, Ordinal: 2},
			},
		}
		job := mostRecentWork(snapshot)
		require.NotNil(t, job)
		assert.Equal(t, "Second", job.Company)
	})

	t.Run("Current beats later end date", func(t *testing.T) {
		snapshot := &types.ProfileSnapshot{
			WorkExperience: []types.WorkExperience{
				{Company: "Ended", EndDate: types.NewDate(2030, time.January, 1), Ordinal: 1},
				{Company: "Ongoing", Current: true, Ordinal: 2},
			},
		}
		job := mostRecentWork(snapshot)
		require.NotNil(t, job)
		assert.Equal(t, "Ongoing", job.Company)
	})
}

func TestTotalYearsOfExperience(t *testing.T) {
	t.Run("Sums closed spans", func(t *testing.T) {
		snapshot := &types.ProfileSnapshot{
			WorkExperience: []types.WorkExperience{
				{StartDate: types.NewDate(2015, time.January, 1), EndDate: types.NewDate(2018, time.January, 1)},
				{StartDate: types.NewDate(2018, time.January, 1), EndDate: types.NewDate(2020, time.January, 1)},
			},
		}
		assert.Equal(t, "4", totalYearsOfExperience(snapshot), "3 + 2 years floored")
	})

	t.Run("Skips entries without a start date", func(t *testing.T) {
		snapshot := &types.ProfileSnapshot{
			WorkExperience: []types.WorkExperience{
				{EndDate: types.NewDate(2020, time.January, 1)},
			},
		}
		assert.Empty(t, totalYearsOfExperience(snapshot))
	})

	t.Run("Sub-year total is empty", func(t *testing.T) {
		snapshot := &types.ProfileSnapshot{
			WorkExperience: []types.WorkExperience{
				{StartDate: types.NewDate(2020, time.January, 1), EndDate: types.NewDate(2020, time.June, 1)},
			},
		}
		assert.Empty(t, totalYearsOfExperience(snapshot))
	})
}

func TestHighestDegree(t *testing.T) {
	tests := []struct {
		name     string
		degrees  []string
		expected string
	}{
		{"Bachelor and master", []string{"Bachelor of Science", "Master of Science"}, "master"},
		{"PhD", []string{"PhD in Physics"}, "doctorate"},
		{"Abbreviation", []string{"BS", "MBA"}, "master"},
		{"High school", []string{"High School Diploma"}, "high_school"},
		{"Associate", []string{"Associate of Arts"}, "associate"},
		{"Whole words only", []string{"Headmaster certificate"}, ""},
		{"Empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &types.ProfileSnapshot{}
			for _, degree := range tt.degrees {
				snapshot.Education = append(snapshot.Education, types.Education{DegreeType: degree})
			}
			assert.Equal(t, tt.expected, highestDegree(snapshot))
		})
	}
}
