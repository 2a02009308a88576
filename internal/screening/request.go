package screening

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// StatusError is returned when the service answers with a non-success HTTP
// status. Message carries the body's error field when present.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// APIError is returned when the service answers with a success status but the
// payload's success flag is false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// envelope is the JSON wrapper around every service response. CacheStatus is
// kept loosely typed: the service adds flags per endpoint.
type envelope struct {
	Success     bool            `json:"success"`
	Data        json.RawMessage `json:"data,omitempty"`
	Error       string          `json:"error,omitempty"`
	CacheStatus map[string]any  `json:"cache_status,omitempty"`
}

// CacheStatus reports which parts of the response the service served from its
// caches. Informational only.
type CacheStatus struct {
	ParsedCached    bool `mapstructure:"parsed_cached"`
	ScreeningCached bool `mapstructure:"screening_cached"`
}

// postMultipart posts the request as a multipart form and returns the data
// part of the response envelope.
func (c *Client) postMultipart(ctx context.Context, url string, sub *Request) (json.RawMessage, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	part, err := w.CreateFormFile("file", sub.FileName)
	if err != nil {
		return nil, err
	}

	if _, err = io.Copy(part, sub.File); err != nil {
		return nil, fmt.Errorf("copying resume file: %w", err)
	}

	fields := map[string]string{}
	if sub.JobTitle != "" {
		fields["job_title"] = sub.JobTitle
	}
	if sub.JobDescription != "" {
		fields["job_description"] = sub.JobDescription
	}
	if len(sub.Weights) > 0 {
		weights, err := json.Marshal(sub.Weights)
		if err != nil {
			return nil, fmt.Errorf("encoding weights: %w", err)
		}
		fields["weights"] = string(weights)
	}

	for key, val := range fields {
		if err := w.WriteField(key, val); err != nil {
			return nil, err
		}
	}
	w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &b)
	if err != nil {
		return nil, err
	}

	c.setHeaders(req)
	if sub.RequestID != "" {
		req.Header.Set("X-Request-ID", sub.RequestID)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.request(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.parseEnvelope(resp)
}

func (c *Client) parseEnvelope(resp *http.Response) (json.RawMessage, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("screening service returned status %d", resp.StatusCode)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response envelope: %w", decodeErr)
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "screening service reported a failure"
		}
		return nil, &APIError{Message: msg}
	}

	if len(env.Data) == 0 {
		return nil, errors.New("response envelope has no data")
	}

	if len(env.CacheStatus) > 0 {
		var status CacheStatus
		if err := mapstructure.Decode(env.CacheStatus, &status); err == nil {
			c.logger.Debug("service cache status",
				zap.Bool("parsed_cached", status.ParsedCached),
				zap.Bool("screening_cached", status.ScreeningCached),
			)
		}
	}

	return env.Data, nil
}

func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	c.setHeaders(req)

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("screening service returned status %d", resp.StatusCode),
		}
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(body, target)
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request",
		zap.String("url", req.URL.String()),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)

	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
}
