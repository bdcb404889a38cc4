package catalog

import "github.com/jonathan/apply-autofill/internal/types"

// SeedTemplates returns the curated canonical question set. Ids are
// stable across releases; new templates are only ever appended. Aliases
// are compared in normalized form, so punctuation variants ("E-mail")
// do not need their own entries.
func SeedTemplates() []types.QuestionTemplate {
	return []types.QuestionTemplate{
		{
			ID: 1, Category: "personal.email", QuestionType: types.QuestionTypeText,
			Question: "What is your email address?",
			Aliases:  []string{"email", "email address", "e-mail address", "contact email"},
		},
		{
			ID: 2, Category: "personal.firstName", QuestionType: types.QuestionTypeText,
			Question: "What is your first name?",
			Aliases:  []string{"first name", "given name", "legal first name"},
		},
		{
			ID: 3, Category: "personal.lastName", QuestionType: types.QuestionTypeText,
			Question: "What is your last name?",
			Aliases:  []string{"last name", "surname", "family name", "legal last name"},
		},
		{
			ID: 4, Category: "personal.fullName", QuestionType: types.QuestionTypeText,
			Question: "What is your full name?",
			Aliases:  []string{"full name", "name", "full legal name"},
		},
		{
			ID: 5, Category: "personal.phone", QuestionType: types.QuestionTypeText,
			Question: "What is your phone number?",
			Aliases:  []string{"phone", "phone number", "mobile number", "telephone", "cell phone", "contact number"},
		},
		{
			ID: 6, Category: "personal.address", QuestionType: types.QuestionTypeText,
			Question: "What is your street address?",
			Aliases:  []string{"address", "street address", "address line 1", "home address"},
		},
		{
			ID: 7, Category: "personal.city", QuestionType: types.QuestionTypeText,
			Question: "What city do you live in?",
			Aliases:  []string{"city", "town"},
		},
		{
			ID: 8, Category: "personal.state", QuestionType: types.QuestionTypeText,
			Question: "What state do you live in?",
			Aliases:  []string{"state", "state province", "province", "region"},
		},
		{
			ID: 9, Category: "personal.zipCode", QuestionType: types.QuestionTypeText,
			Question: "What is your zip code?",
			Aliases:  []string{"zip", "zip code", "postal code"},
		},
		{
			ID: 10, Category: "personal.country", QuestionType: types.QuestionTypeText,
			Question: "What country do you live in?",
			Aliases:  []string{"country", "country of residence"},
		},
		{
			ID: 11, Category: "personal.linkedin", QuestionType: types.QuestionTypeText,
			Question: "What is your LinkedIn profile URL?",
			Aliases:  []string{"linkedin", "linkedin profile", "linkedin url"},
		},
		{
			ID: 12, Category: "personal.website", QuestionType: types.QuestionTypeText,
			Question: "What is your personal website?",
			Aliases:  []string{"website", "personal website", "portfolio", "portfolio url"},
		},
		{
			ID: 13, Category: "experience.currentEmployer", QuestionType: types.QuestionTypeText,
			Question: "Who is your current employer?",
			Aliases:  []string{"current employer", "current company", "company", "employer", "most recent employer"},
		},
		{
			ID: 14, Category: "experience.currentTitle", QuestionType: types.QuestionTypeText,
			Question: "What is your current job title?",
			Aliases:  []string{"current title", "job title", "title", "current position", "current role"},
		},
		{
			ID: 15, Category: "experience.yearsOfExperience", QuestionType: types.QuestionTypeText,
			Question: "How many years of work experience do you have?",
			Aliases:  []string{"years of experience", "total years of experience", "years experience"},
		},
		{
			ID: 16, Category: "experience.summary", QuestionType: types.QuestionTypeTextarea,
			Question: "Describe your relevant work experience.",
			Aliases:  []string{"work experience", "relevant experience", "experience summary"},
		},
		{
			ID: 17, Category: "education.school", QuestionType: types.QuestionTypeText,
			Question: "What school did you attend?",
			Aliases:  []string{"school", "university", "college", "school name", "university name"},
		},
		{
			ID: 18, Category: "education.highestDegree", QuestionType: types.QuestionTypeSelect,
			Question: "What is the highest degree you have earned?",
			Aliases:  []string{"highest degree", "degree", "highest level of education", "education level"},
			Options: []types.AnswerOption{
				{Value: "high_school", Label: "High school diploma"},
				{Value: "associate", Label: "Associate degree"},
				{Value: "bachelor", Label: "Bachelor's degree"},
				{Value: "master", Label: "Master's degree"},
				{Value: "doctorate", Label: "Doctorate"},
				{Value: "other", Label: "Other"},
			},
		},
		{
			ID: 19, Category: "education.fieldOfStudy", QuestionType: types.QuestionTypeText,
			Question: "What was your field of study?",
			Aliases:  []string{"field of study", "major", "area of study"},
		},
		{
			ID: 20, Category: "education.graduationYear", QuestionType: types.QuestionTypeText,
			Question: "What year did you graduate?",
			Aliases:  []string{"graduation year", "year of graduation", "grad year"},
		},
		{
			ID: 21, Category: "skills.list", QuestionType: types.QuestionTypeTextarea,
			Question: "List your relevant skills.",
			Aliases:  []string{"skills", "relevant skills", "key skills", "technical skills"},
		},
		{
			ID: 22, Category: "authorization.workAuthorization", QuestionType: types.QuestionTypeBoolean,
			Question: "Are you legally authorized to work in the United States?",
			Aliases:  []string{"work authorization", "authorized to work", "legally authorized to work in the us"},
		},
		{
			ID: 23, Category: "authorization.sponsorship", QuestionType: types.QuestionTypeBoolean,
			Question: "Will you now or in the future require sponsorship for employment visa status?",
			Aliases:  []string{"require sponsorship", "visa sponsorship", "sponsorship"},
		},
		{
			ID: 24, Category: "availability.startDate", QuestionType: types.QuestionTypeDate,
			Question: "When are you available to start?",
			Aliases:  []string{"start date", "available start date", "earliest start date", "availability"},
		},
		{
			ID: 25, Category: "eeo.gender", QuestionType: types.QuestionTypeSelect,
			Question: "What is your gender?",
			Aliases:  []string{"gender", "gender identity"},
			Options: []types.AnswerOption{
				{Value: "male", Label: "Male"},
				{Value: "female", Label: "Female"},
				{Value: "non_binary", Label: "Non-binary"},
				{Value: "decline", Label: "Decline to self-identify"},
			},
		},
		{
			ID: 26, Category: "eeo.veteranStatus", QuestionType: types.QuestionTypeSelect,
			Question: "What is your veteran status?",
			Aliases:  []string{"veteran status", "protected veteran status"},
			Options: []types.AnswerOption{
				{Value: "veteran", Label: "I am a protected veteran"},
				{Value: "not_veteran", Label: "I am not a protected veteran"},
				{Value: "decline", Label: "Decline to self-identify"},
			},
		},
	}
}

// Seeded builds a Catalog from the curated seed set.
func Seeded() *Catalog {
	return New(SeedTemplates())
}
