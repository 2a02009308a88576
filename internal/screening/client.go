package screening

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://localhost:5000"
	userAgent     = "resumekit/screener-cli"

	screenPath   = "/api/screen"
	parsePath    = "/api/parse"
	optimizePath = "/api/optimize"
	healthPath   = "/api/health"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Client talks to the resume screening service. The zero timeout on the
// embedded http.Client is deliberate: every call takes a context and the
// caller owns the deadline.
type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger) *Client {
	return &Client{
		logger:     logger,
		APIURL:     defaultAPIURL,
		HTTPClient: &http.Client{},
		UserAgent:  userAgent,
	}
}

// Request is one screening submission: the resume file plus the job context.
type Request struct {
	FileName       string
	File           io.Reader
	JobTitle       string
	JobDescription string
	// RequestID correlates the request with client-side logs. A fresh id
	// is generated when left empty.
	RequestID string
	// Weights optionally overrides the per-category scoring weights. It is
	// forwarded to the service verbatim, never interpreted client side.
	Weights map[string]float64
}

// Screen submits the resume and job description for screening and returns the
// decoded outcome. The outcome carries no job title yet; the caller attaches
// the one it submitted.
func (c *Client) Screen(ctx context.Context, req *Request) (*Outcome, error) {
	data, err := c.postMultipart(ctx, c.APIURL+screenPath, req)
	if err != nil {
		return nil, err
	}

	var outcome Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, fmt.Errorf("decoding screening payload: %w", err)
	}

	if err := validate.Struct(&outcome); err != nil {
		return nil, fmt.Errorf("screening payload is incomplete: %w", err)
	}

	return &outcome, nil
}

// Parse submits the resume for parsing only.
func (c *Client) Parse(ctx context.Context, fileName string, file io.Reader) (*ParsedResume, error) {
	req := &Request{FileName: fileName, File: file}

	data, err := c.postMultipart(ctx, c.APIURL+parsePath, req)
	if err != nil {
		return nil, err
	}

	var parsed ParsedResume
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding parsed resume: %w", err)
	}

	return &parsed, nil
}

// Optimize submits the resume and job description and returns screening
// results together with optimization suggestions.
func (c *Client) Optimize(ctx context.Context, req *Request) (*OptimizeOutcome, error) {
	data, err := c.postMultipart(ctx, c.APIURL+optimizePath, req)
	if err != nil {
		return nil, err
	}

	var outcome OptimizeOutcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, fmt.Errorf("decoding optimization payload: %w", err)
	}

	if err := validate.Struct(&outcome); err != nil {
		return nil, fmt.Errorf("optimization payload is incomplete: %w", err)
	}

	return &outcome, nil
}

// Ping checks the service health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var health struct {
		Status string `json:"status"`
	}

	if err := c.getJSON(ctx, c.APIURL+healthPath, &health); err != nil {
		return err
	}

	if health.Status != "healthy" {
		return fmt.Errorf("screening service is not healthy: %q", health.Status)
	}

	return nil
}
