// Package report turns a screening outcome into view models. Every function
// here is a stateless transform: no retained state, no side effects.
package report

import (
	"github.com/resumekit/screener-cli/internal/screening"
)

// Report is the full view model for one screening outcome, split into
// independently renderable fragments.
type Report struct {
	JobTitle       string
	Gauge          Gauge
	Recommendation Recommendation
	Summary        string
	Overview       Overview
	Breakdown      []Category
	Experience     []screening.WorkExperience
	Projects       []screening.Project
	Analysis       Analysis
}

type Recommendation struct {
	Text string
	Tier Tier
}

// Overview carries the candidate identity, the best (first) education entry,
// the full skill list and whichever external links are present.
type Overview struct {
	FullName     string
	Email        string
	Phone        string
	Location     string
	Education    *screening.Education
	Skills       []string
	Publications []string
	Links        []Link
}

type Link struct {
	Label string
	URL   string
}

// Category is one row of the score breakdown, in fixed display order.
type Category struct {
	Key       string
	Label     string
	Score     float64
	Band      Band
	Reasoning string
}

// Analysis groups strengths, concerns and the three-way skill partition from
// the skill match category.
type Analysis struct {
	Strengths        []string
	Concerns         []string
	MatchedSkills    []string
	MissingSkills    []string
	AdditionalSkills []string
}

// Render builds the report for a complete outcome. Sequences keep the order
// the service produced, never re-sorted.
func Render(outcome *screening.Outcome) *Report {
	if outcome == nil || outcome.Parsed == nil || outcome.Screened == nil {
		return nil
	}

	screened := outcome.Screened

	return &Report{
		JobTitle: outcome.JobTitle,
		Gauge:    GaugeFor(screened.OverallScore),
		Recommendation: Recommendation{
			Text: screened.Recommendation,
			Tier: TierFor(screened.Recommendation),
		},
		Summary:    screened.Summary,
		Overview:   RenderOverview(outcome.Parsed),
		Breakdown:  renderBreakdown(screened),
		Experience: outcome.Parsed.WorkExperience,
		Projects:   outcome.Parsed.Projects,
		Analysis:   renderAnalysis(screened),
	}
}

// RenderOverview builds the overview fragment alone. The parse-only flow has
// no screening result to render.
func RenderOverview(parsed *screening.ParsedResume) Overview {
	overview := Overview{
		FullName:     parsed.FullName,
		Email:        parsed.Email,
		Phone:        parsed.Phone,
		Location:     parsed.Location,
		Skills:       parsed.Skills,
		Publications: parsed.Publications,
	}

	if len(parsed.Education) > 0 {
		overview.Education = &parsed.Education[0]
	}

	// Absent link types are omitted, never rendered as broken entries.
	if links := parsed.ExternalLinks; links != nil {
		if links.Linkedin != "" {
			overview.Links = append(overview.Links, Link{Label: "LinkedIn", URL: links.Linkedin})
		}
		if links.Github != "" {
			overview.Links = append(overview.Links, Link{Label: "GitHub", URL: links.Github})
		}
		if links.Portfolio != "" {
			overview.Links = append(overview.Links, Link{Label: "Portfolio", URL: links.Portfolio})
		}
	}

	return overview
}

func renderBreakdown(screened *screening.ScreeningResult) []Category {
	ordered := []struct {
		key   string
		label string
		match *screening.CategoryMatch
	}{
		{"skill_match", "Skills", screened.SkillMatch},
		{"experience_match", "Experience", screened.ExperienceMatch},
		{"education_match", "Education", screened.EducationMatch},
		{"project_match", "Projects", screened.ProjectMatch},
		{"cultural_fit", "Cultural Fit", screened.CulturalFit},
	}

	breakdown := make([]Category, 0, len(ordered))
	for _, entry := range ordered {
		if entry.match == nil {
			continue
		}

		breakdown = append(breakdown, Category{
			Key:       entry.key,
			Label:     entry.label,
			Score:     entry.match.Score,
			Band:      BandFor(entry.match.Score),
			Reasoning: entry.match.Reasoning,
		})
	}

	return breakdown
}

func renderAnalysis(screened *screening.ScreeningResult) Analysis {
	analysis := Analysis{
		Strengths: screened.Strengths,
		Concerns:  screened.Concerns,
	}

	if skill := screened.SkillMatch; skill != nil {
		analysis.MatchedSkills = skill.MatchedSkills
		analysis.MissingSkills = skill.MissingSkills
		analysis.AdditionalSkills = skill.AdditionalSkills
	}

	return analysis
}
