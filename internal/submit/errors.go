package submit

import (
	"context"
	"errors"
	"net/url"

	"github.com/resumekit/screener-cli/internal/screening"
)

// FailureKind classifies why an attempt failed. Every kind is terminal for
// the attempt but never for the session.
type FailureKind string

const (
	// File gate.
	FailUnsupportedType FailureKind = "unsupported_type"
	FailTooLarge        FailureKind = "too_large"

	// Form gate.
	FailMissingRequiredField FailureKind = "missing_required_field"
	FailInvalidWeightsFormat FailureKind = "invalid_weights_format"

	// Request lifecycle.
	FailTimeout            FailureKind = "timeout"
	FailNetworkUnavailable FailureKind = "network_unavailable"
	FailServerError        FailureKind = "server_error"
	FailApplicationError   FailureKind = "application_error"
)

// Failure carries the classification plus the user-visible message.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func newFailure(kind FailureKind, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

// classify maps a request lifecycle error onto the failure taxonomy. The
// timeout check runs first because transport errors wrap the context error.
func classify(err error) *Failure {
	var (
		statusErr *screening.StatusError
		apiErr    *screening.APIError
		urlErr    *url.Error
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Failure{
			Kind:    FailTimeout,
			Message: "the screening request timed out, please try again",
			Err:     err,
		}
	case errors.As(err, &apiErr):
		return &Failure{Kind: FailApplicationError, Message: apiErr.Message, Err: err}
	case errors.As(err, &statusErr):
		return &Failure{Kind: FailServerError, Message: statusErr.Message, Err: err}
	case errors.As(err, &urlErr):
		return &Failure{
			Kind:    FailNetworkUnavailable,
			Message: "could not reach the screening service, check your connection",
			Err:     err,
		}
	default:
		// Anything else arrived after a response: a payload the client
		// could not use.
		return &Failure{Kind: FailApplicationError, Message: err.Error(), Err: err}
	}
}
