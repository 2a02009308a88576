package screening

// ParsedResume is the structured resume extracted by the screening service.
// The client never mutates it, only projects it into report fragments.
type ParsedResume struct {
	FullName       string           `json:"full_name,omitempty"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Location       string           `json:"location,omitempty"`
	ExternalLinks  *ExternalLinks   `json:"external_links,omitempty"`
	WorkExperience []WorkExperience `json:"work_experience,omitempty"`
	Education      []Education      `json:"education,omitempty"`
	Projects       []Project        `json:"projects,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
	Publications   []string         `json:"publications,omitempty"`
}

type ExternalLinks struct {
	Linkedin  string `json:"linkedin,omitempty"`
	Github    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type WorkExperience struct {
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	Institution    string `json:"institution,omitempty"`
	Degree         string `json:"degree,omitempty"`
	Marks          string `json:"marks,omitempty"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
}

type Project struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

// CategoryMatch is one scored dimension of fit. The evidence fields are
// category specific: the service fills only the ones that apply.
type CategoryMatch struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning,omitempty"`

	// skill_match
	MatchedSkills    []string `json:"matched_skills,omitempty"`
	MissingSkills    []string `json:"missing_skills,omitempty"`
	AdditionalSkills []string `json:"additional_skills,omitempty"`

	// experience_match
	RelevantExperience []string `json:"relevant_experience,omitempty"`
	YearsExperience    float64  `json:"years_experience,omitempty"`
	SeniorityMatch     string   `json:"seniority_match,omitempty"`

	// education_match
	MeetsRequirement bool     `json:"meets_requirement,omitempty"`
	RelevantDegrees  []string `json:"relevant_degrees,omitempty"`

	// project_match
	RelevantProjects []string `json:"relevant_projects,omitempty"`
	KeyTechnologies  []string `json:"key_technologies,omitempty"`

	// cultural_fit
	Indicators []string `json:"indicators,omitempty"`
}

// ScreeningResult carries the five category matches plus the overall verdict.
// All five categories must be present for rendering to proceed.
type ScreeningResult struct {
	SkillMatch      *CategoryMatch `json:"skill_match" validate:"required"`
	ExperienceMatch *CategoryMatch `json:"experience_match" validate:"required"`
	EducationMatch  *CategoryMatch `json:"education_match" validate:"required"`
	ProjectMatch    *CategoryMatch `json:"project_match" validate:"required"`
	CulturalFit     *CategoryMatch `json:"cultural_fit" validate:"required"`

	OverallScore   float64  `json:"overall_score"`
	Recommendation string   `json:"recommendation,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Concerns       []string `json:"concerns,omitempty"`
}

// Optimization holds the resume improvement suggestions produced by the
// optimize endpoint.
type Optimization struct {
	Summary           string   `json:"summary,omitempty"`
	MissingSkills     []string `json:"missing_skills,omitempty"`
	ContentGaps       []string `json:"content_gaps,omitempty"`
	FormattingTips    []string `json:"formatting_tips,omitempty"`
	CustomizationTips []string `json:"customization_tips,omitempty"`
	PriorityActions   []string `json:"priority_actions,omitempty"`
}
