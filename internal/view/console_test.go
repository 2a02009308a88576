package view

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/resumekit/screener-cli/internal/report"
	"github.com/resumekit/screener-cli/internal/screening"
)

func TestShowErrorSkipsEmptyMessages(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf)

	console.ShowError("")
	if buf.Len() != 0 {
		t.Fatalf("expected no output for an empty message, got %q", buf.String())
	}

	console.ShowError("db down")
	if got := buf.String(); got != "error: db down\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestShowResults(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf)

	console.ShowResults(&report.Report{
		JobTitle:       "Backend Engineer",
		Gauge:          report.GaugeFor(7.83),
		Recommendation: report.Recommendation{Text: "Potential Match", Tier: report.TierPotential},
		Summary:        "solid backend profile",
		Overview: report.Overview{
			FullName: "Jane Doe",
			Links:    []report.Link{{Label: "GitHub", URL: "https://github.com/janedoe"}},
		},
		Breakdown: []report.Category{
			{Key: "skill_match", Label: "Skills", Score: 8.5, Band: report.BandHigh, Reasoning: "covers the stack"},
		},
		Experience: []screening.WorkExperience{
			{Company: "Acme", Position: "Engineer", Duration: "2019-2022"},
		},
		Projects: []screening.Project{
			{Name: "alpha", Skills: []string{"go"}},
		},
		Analysis: report.Analysis{
			Strengths:     []string{"production Go"},
			MissingSkills: []string{"kubernetes"},
		},
	})

	out := buf.String()
	for _, want := range []string{
		"Screening report: Backend Engineer",
		"Potential Match [potential]",
		"7.83/10",
		"Jane Doe",
		"GitHub: https://github.com/janedoe",
		"Skills",
		"[high]",
		"Engineer at Acme (2019-2022)",
		"alpha",
		"tech: go",
		"- production Go",
		"- kubernetes",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestShowResultsNil(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).ShowResults(nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil report, got %q", buf.String())
	}
}

func TestShowLoading(t *testing.T) {
	var buf syncBuffer
	console := NewConsole(&buf)

	console.ShowLoading(true)
	console.ShowLoading(true) // idempotent
	console.ShowLoading(false)
	console.ShowLoading(false) // idempotent

	if got := buf.String(); !strings.HasPrefix(got, "screening") || !strings.HasSuffix(got, "\n") {
		t.Fatalf("unexpected loading output %q", got)
	}
}

func TestGaugeBarClamped(t *testing.T) {
	if got := gaugeBar(report.GaugeFor(11)); !strings.Contains(got, strings.Repeat("#", 20)) {
		t.Fatalf("expected a full bar for an out-of-range score, got %q", got)
	}
	if got := gaugeBar(report.GaugeFor(-2)); strings.Contains(got, "#") {
		t.Fatalf("expected an empty bar for a negative score, got %q", got)
	}
}

// syncBuffer guards the underlying buffer because the spinner goroutine may
// write concurrently with the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
