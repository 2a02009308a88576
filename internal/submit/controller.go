// Package submit owns the submission lifecycle: the view state machine, the
// file and form gates, the bounded network call and failure classification.
package submit

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/resumekit/screener-cli/internal/logger"
	"github.com/resumekit/screener-cli/internal/report"
	"github.com/resumekit/screener-cli/internal/screening"
	"github.com/resumekit/screener-cli/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the controller position in the submission lifecycle.
type State string

const (
	StateIdle          State = "idle"
	StateAwaitingInput State = "awaiting_input"
	StateSubmitting    State = "submitting"
	StateSucceeded     State = "succeeded"
	StateFailed        State = "failed"
)

// defaultMaxWait bounds a single submission before it is cancelled.
const defaultMaxWait = 300 * time.Second

// View is the sink the controller hands rendered state to. It is the only
// place the controller touches presentation.
type View interface {
	ShowUpload()
	ShowLoading(on bool)
	// ShowError surfaces the most recent failure; an empty message clears
	// the error channel.
	ShowError(message string)
	ShowResults(rep *report.Report)
}

// Form holds the job fields entered by the user. WeightsText is the raw
// optional weight-override text, parsed only at submit time.
type Form struct {
	JobTitle       string
	JobDescription string
	WeightsText    string
}

// Controller drives one submission at a time. It is meant for a single
// cooperative flow: all methods are called from one goroutine and a second
// Submit while one is in flight is rejected.
type Controller struct {
	client  *screening.Client
	view    View
	logger  *zap.Logger
	maxWait time.Duration

	state   State
	file    *CandidateFile
	form    Form
	outcome *screening.Outcome
}

func NewController(client *screening.Client, view View, logger *zap.Logger) *Controller {
	return &Controller{
		client:  client,
		view:    view,
		logger:  logger,
		maxWait: defaultMaxWait,
		state:   StateIdle,
	}
}

// SetMaxWait overrides the submission wait bound. Non-positive values keep
// the default.
func (c *Controller) SetMaxWait(d time.Duration) {
	if d > 0 {
		c.maxWait = d
	}
}

func (c *Controller) State() State {
	return c.state
}

// File returns the retained candidate file, if any.
func (c *Controller) File() *CandidateFile {
	return c.file
}

// Outcome returns the current screening outcome. It is replaced wholesale on
// the next successful submission and discarded on reset.
func (c *Controller) Outcome() *screening.Outcome {
	return c.outcome
}

// SelectFile validates and retains the file at path. On a validation error
// the file is not retained and the controller stays in its current state.
func (c *Controller) SelectFile(path string) error {
	file, err := StatFile(path)
	if err != nil {
		c.view.ShowError(err.Error())
		return err
	}

	c.file = file
	c.view.ShowError("")

	if c.state == StateIdle {
		c.state = StateAwaitingInput
	}

	c.logger.Info("selected resume file",
		zap.String("file", file.Name),
		zap.String("size", file.SizeMiB()),
	)

	return nil
}

// SetForm replaces the retained form fields.
func (c *Controller) SetForm(form Form) {
	c.form = form
}

// Submit runs the form gate and, when it passes, issues the screening request
// with a bounded wait. The retained file and form survive a failure so the
// user can retry without re-entering them.
func (c *Controller) Submit(ctx context.Context) error {
	if c.state == StateSubmitting {
		return newFailure(FailApplicationError, "a submission is already in flight")
	}

	req, failure := c.buildRequest()
	if failure != nil {
		c.view.ShowError(failure.Message)
		return failure
	}

	file, err := os.Open(c.file.Path)
	if err != nil {
		failure := newFailure(FailMissingRequiredField, "resume file could not be read, select it again")
		c.view.ShowError(failure.Message)
		return failure
	}
	defer file.Close()
	req.File = file
	req.RequestID = uuid.NewString()

	c.state = StateSubmitting
	c.view.ShowError("")
	c.view.ShowLoading(true)
	defer c.view.ShowLoading(false)

	log := logger.WithSubmissionFields(c.logger, req.RequestID, req.JobTitle)

	log.Info("submitting resume for screening", zap.String("file", c.file.Name))
	log.Debug("job description",
		zap.String("text", utils.TruncateForLog(req.JobDescription, 200)),
	)

	// The timer races the pending request: cancelling the context aborts
	// the transport call, so a late response can never land after a
	// failure has been recorded.
	reqCtx, cancel := context.WithTimeout(ctx, c.maxWait)
	defer cancel()

	outcome, err := c.client.Screen(reqCtx, req)
	if err != nil {
		failure := classify(err)
		c.state = StateFailed
		c.view.ShowError(failure.Message)
		log.Warn("screening failed",
			zap.String("kind", string(failure.Kind)),
			zap.Error(err),
		)
		return failure
	}

	outcome.JobTitle = req.JobTitle
	c.outcome = outcome
	c.state = StateSucceeded

	log.Info("resume screened",
		zap.Float64("overall_score", outcome.Screened.OverallScore),
		zap.String("recommendation", outcome.Screened.Recommendation),
	)

	c.view.ShowResults(report.Render(outcome))

	return nil
}

// Optimize reuses the retained file and form to fetch optimization
// suggestions for the current submission. It does not move the state machine:
// the screening outcome stays authoritative.
func (c *Controller) Optimize(ctx context.Context) (*screening.OptimizeOutcome, error) {
	req, failure := c.buildRequest()
	if failure != nil {
		c.view.ShowError(failure.Message)
		return nil, failure
	}

	file, err := os.Open(c.file.Path)
	if err != nil {
		failure := newFailure(FailMissingRequiredField, "resume file could not be read, select it again")
		c.view.ShowError(failure.Message)
		return nil, failure
	}
	defer file.Close()
	req.File = file

	c.view.ShowLoading(true)
	defer c.view.ShowLoading(false)

	reqCtx, cancel := context.WithTimeout(ctx, c.maxWait)
	defer cancel()

	outcome, err := c.client.Optimize(reqCtx, req)
	if err != nil {
		failure := classify(err)
		c.view.ShowError(failure.Message)
		return nil, failure
	}

	return outcome, nil
}

// Reset discards the retained file, form and outcome and returns the view to
// the upload state.
func (c *Controller) Reset() {
	c.file = nil
	c.form = Form{}
	c.outcome = nil
	c.state = StateIdle
	c.view.ShowError("")
	c.view.ShowUpload()
}

// buildRequest checks the submit preconditions and assembles the request,
// without touching the network or the filesystem.
func (c *Controller) buildRequest() (*screening.Request, *Failure) {
	if c.file == nil {
		return nil, newFailure(FailMissingRequiredField, "no resume file selected")
	}

	title := strings.TrimSpace(c.form.JobTitle)
	description := strings.TrimSpace(c.form.JobDescription)
	if title == "" || description == "" {
		return nil, newFailure(FailMissingRequiredField, "job title and job description are required")
	}

	weights, err := ParseWeights(c.form.WeightsText)
	if err != nil {
		return nil, newFailure(FailInvalidWeightsFormat, "weights must be a JSON object of category to number")
	}

	return &screening.Request{
		FileName:       c.file.Name,
		JobTitle:       title,
		JobDescription: description,
		Weights:        weights,
	}, nil
}

// ParseWeights parses optional weight-override text. Empty text means no
// overrides.
func ParseWeights(text string) (map[string]float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var weights map[string]float64
	if err := json.Unmarshal([]byte(text), &weights); err != nil {
		return nil, err
	}

	return weights, nil
}
