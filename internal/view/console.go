// Package view renders report fragments to a terminal. It is the only place
// the application writes user-facing output outside of logging.
package view

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/resumekit/screener-cli/internal/report"
	"github.com/resumekit/screener-cli/internal/screening"
	"github.com/resumekit/screener-cli/internal/utils"
)

const spinnerInterval = 500 * time.Millisecond

// Console implements the submit.View sink on top of an io.Writer.
type Console struct {
	out io.Writer

	mu       sync.Mutex
	cancel   context.CancelFunc
	spinDone chan struct{}
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) ShowUpload() {
	fmt.Fprintln(c.out, "Select a resume (.pdf, .docx or .doc, up to 10 MiB) and provide the job title and description.")
}

// ShowLoading starts or stops the waiting indicator. Stopping is idempotent.
func (c *Console) ShowLoading(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if on {
		if c.cancel != nil {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		c.spinDone = make(chan struct{})

		fmt.Fprint(c.out, "screening")
		go c.spin(ctx, c.spinDone)
		return
	}

	if c.cancel == nil {
		return
	}

	c.cancel()
	<-c.spinDone
	c.cancel = nil
	fmt.Fprintln(c.out)
}

func (c *Console) spin(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		if err := utils.WaitFor(ctx, spinnerInterval); err != nil {
			return
		}
		fmt.Fprint(c.out, ".")
	}
}

// ShowError prints the most recent failure. An empty message clears the
// channel, which on a terminal simply means printing nothing.
func (c *Console) ShowError(message string) {
	if message == "" {
		return
	}

	fmt.Fprintf(c.out, "error: %s\n", message)
}

// ShowResults renders every report fragment in order.
func (c *Console) ShowResults(rep *report.Report) {
	if rep == nil {
		return
	}

	c.header(fmt.Sprintf("Screening report: %s", rep.JobTitle))

	fmt.Fprintf(c.out, "%s  %s [%s]\n", gaugeBar(rep.Gauge), rep.Recommendation.Text, rep.Recommendation.Tier)
	if rep.Summary != "" {
		fmt.Fprintln(c.out, rep.Summary)
	}

	c.ShowOverview(rep.Overview)

	c.header("Score breakdown")
	for _, cat := range rep.Breakdown {
		fmt.Fprintf(c.out, "  %-12s %4.1f/10 [%s]\n", cat.Label, cat.Score, cat.Band)
		if cat.Reasoning != "" {
			fmt.Fprintf(c.out, "    %s\n", cat.Reasoning)
		}
	}

	c.header("Work experience")
	for _, exp := range rep.Experience {
		fmt.Fprintf(c.out, "  %s at %s (%s)\n", exp.Position, exp.Company, exp.Duration)
		if exp.Description != "" {
			fmt.Fprintf(c.out, "    %s\n", exp.Description)
		}
	}

	c.header("Projects")
	for _, project := range rep.Projects {
		fmt.Fprintf(c.out, "  %s\n", project.Name)
		if project.Description != "" {
			fmt.Fprintf(c.out, "    %s\n", project.Description)
		}
		if len(project.Skills) > 0 {
			fmt.Fprintf(c.out, "    tech: %s\n", strings.Join(project.Skills, ", "))
		}
	}

	c.header("Analysis")
	c.list("Strengths", rep.Analysis.Strengths)
	c.list("Concerns", rep.Analysis.Concerns)
	c.list("Matched skills", rep.Analysis.MatchedSkills)
	c.list("Missing skills", rep.Analysis.MissingSkills)
	c.list("Additional skills", rep.Analysis.AdditionalSkills)
}

// ShowOverview renders the candidate overview fragment. Also used on its own
// by the parse-only command.
func (c *Console) ShowOverview(overview report.Overview) {
	c.header("Candidate")

	fmt.Fprintf(c.out, "  %s\n", overview.FullName)
	for _, line := range []string{overview.Email, overview.Phone, overview.Location} {
		if line != "" {
			fmt.Fprintf(c.out, "  %s\n", line)
		}
	}

	for _, link := range overview.Links {
		fmt.Fprintf(c.out, "  %s: %s\n", link.Label, link.URL)
	}

	if edu := overview.Education; edu != nil {
		fmt.Fprintf(c.out, "  %s, %s", edu.Degree, edu.Institution)
		if edu.GraduationYear != "" {
			fmt.Fprintf(c.out, " (%s)", edu.GraduationYear)
		}
		fmt.Fprintln(c.out)
	}

	if len(overview.Skills) > 0 {
		fmt.Fprintf(c.out, "  skills: %s\n", strings.Join(overview.Skills, ", "))
	}
	c.list("Publications", overview.Publications)
}

// ShowOptimization renders the optimization suggestions section.
func (c *Console) ShowOptimization(opt *screening.Optimization) {
	if opt == nil {
		return
	}

	c.header("Optimization suggestions")
	if opt.Summary != "" {
		fmt.Fprintln(c.out, opt.Summary)
	}
	c.list("Missing skills", opt.MissingSkills)
	c.list("Content gaps", opt.ContentGaps)
	c.list("Formatting tips", opt.FormattingTips)
	c.list("Customization tips", opt.CustomizationTips)
	c.list("Priority actions", opt.PriorityActions)
}

func (c *Console) header(title string) {
	fmt.Fprintf(c.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

func (c *Console) list(title string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(c.out, "  %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(c.out, "    - %s\n", item)
	}
}

// gaugeBar renders the clamped sweep fraction as a fixed-width bar.
func gaugeBar(gauge report.Gauge) string {
	const width = 20
	filled := int(gauge.Fraction*width + 0.5)

	return fmt.Sprintf("[%s%s] %.2f/10",
		strings.Repeat("#", filled),
		strings.Repeat(" ", width-filled),
		gauge.Score,
	)
}
