package submit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/resumekit/screener-cli/internal/report"
	"github.com/resumekit/screener-cli/internal/screening"

	"go.uber.org/zap"
)

const successBody = `{
	"success": true,
	"data": {
		"parsed": {"full_name": "Jane Doe", "skills": ["go"]},
		"screened": {
			"skill_match": {"score": 8.5},
			"experience_match": {"score": 6.5},
			"education_match": {"score": 9},
			"project_match": {"score": 7},
			"cultural_fit": {"score": 5},
			"overall_score": 7.83,
			"recommendation": "Potential Match"
		}
	}
}`

type stubView struct {
	uploads int
	loading []bool
	errors  []string
	results []*report.Report
}

func (v *stubView) ShowUpload()                  { v.uploads++ }
func (v *stubView) ShowLoading(on bool)          { v.loading = append(v.loading, on) }
func (v *stubView) ShowError(message string)     { v.errors = append(v.errors, message) }
func (v *stubView) ShowResults(r *report.Report) { v.results = append(v.results, r) }

func (v *stubView) lastError() string {
	if len(v.errors) == 0 {
		return ""
	}
	return v.errors[len(v.errors)-1]
}

func newTestController(t *testing.T, handler http.HandlerFunc) (*Controller, *stubView, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := screening.New(zap.NewNop())
	client.APIURL = server.URL

	view := &stubView{}

	return NewController(client, view, zap.NewNop()), view, server
}

func writeResume(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 test"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func validForm() Form {
	return Form{JobTitle: "Backend Engineer", JobDescription: "Build Go services."}
}

func expectKind(t *testing.T, err error, kind FailureKind) *Failure {
	t.Helper()

	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected a Failure, got %v", err)
	}
	if failure.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%s)", kind, failure.Kind, failure.Message)
	}
	return failure
}

func TestSubmitWithoutFile(t *testing.T) {
	var calls atomic.Int32
	controller, view, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	controller.SetForm(validForm())

	err := controller.Submit(context.Background())
	expectKind(t, err, FailMissingRequiredField)

	if calls.Load() != 0 {
		t.Fatal("expected no network call")
	}
	if controller.State() != StateIdle {
		t.Fatalf("expected state idle, got %s", controller.State())
	}
	if view.lastError() == "" {
		t.Fatal("expected a visible error message")
	}
}

func TestSelectFileRejectsUnsupported(t *testing.T) {
	controller, view, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {})

	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := controller.SelectFile(path)
	expectKind(t, err, FailUnsupportedType)

	if controller.File() != nil {
		t.Fatal("rejected file must not be retained")
	}
	if controller.State() != StateIdle {
		t.Fatalf("expected state idle, got %s", controller.State())
	}
	if view.lastError() == "" {
		t.Fatal("expected a visible error message")
	}
}

func TestSelectFileMovesToAwaitingInput(t *testing.T) {
	controller, _, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {})

	if err := controller.SelectFile(writeResume(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if controller.State() != StateAwaitingInput {
		t.Fatalf("expected awaiting_input, got %s", controller.State())
	}
}

func TestSubmitRejectsMalformedWeights(t *testing.T) {
	var calls atomic.Int32
	controller, _, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	if err := controller.SelectFile(writeResume(t)); err != nil {
		t.Fatal(err)
	}

	form := validForm()
	form.WeightsText = "{not json"
	controller.SetForm(form)

	err := controller.Submit(context.Background())
	expectKind(t, err, FailInvalidWeightsFormat)

	if calls.Load() != 0 {
		t.Fatal("expected no network call")
	}
	if controller.State() != StateAwaitingInput {
		t.Fatalf("expected awaiting_input, got %s", controller.State())
	}
}

func TestSubmitSuccess(t *testing.T) {
	controller, view, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(successBody))
	})

	if err := controller.SelectFile(writeResume(t)); err != nil {
		t.Fatal(err)
	}
	controller.SetForm(validForm())

	if err := controller.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if controller.State() != StateSucceeded {
		t.Fatalf("expected succeeded, got %s", controller.State())
	}

	outcome := controller.Outcome()
	if outcome == nil || outcome.JobTitle != "Backend Engineer" {
		t.Fatalf("expected outcome with attached job title, got %+v", outcome)
	}

	if len(view.results) != 1 {
		t.Fatalf("expected one rendered report, got %d", len(view.results))
	}
	if len(view.loading) != 2 || !view.loading[0] || view.loading[1] {
		t.Fatalf("expected loading on then off, got %v", view.loading)
	}
}

func TestSubmitServerError(t *testing.T) {
	controller, view, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "db down"}`))
	})

	if err := controller.SelectFile(writeResume(t)); err != nil {
		t.Fatal(err)
	}
	controller.SetForm(validForm())

	err := controller.Submit(context.Background())
	failure := expectKind(t, err, FailServerError)

	if failure.Message != "db down" {
		t.Fatalf("expected message %q, got %q", "db down", failure.Message)
	}
	if view.lastError() != "db down" {
		t.Fatalf("expected displayed message %q, got %q", "db down", view.lastError())
	}
	if controller.State() != StateFailed {
		t.Fatalf("expected failed, got %s", controller.State())
	}

	// The retained file and form survive the failure for a retry.
	if controller.File() == nil {
		t.Fatal("expected file to stay retained after failure")
	}
}

func TestSubmitApplicationError(t *testing.T) {
	controller, _, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "error": "unreadable resume"}`))
	})

	if err := controller.SelectFile(writeResume(t)); err != nil {
		t.Fatal(err)
	}
	controller.SetForm(validForm())

	failure := expectKind(t, controller.Submit(context.Background()), FailApplicationError)
	if failure.Message != "unreadable resume" {
		t.Fatalf("unexpected message %q", failure.Message)
	}
}

func TestSubmitNetworkUnavailable(t *testing.T) {
	controller, _, server := newTestController(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	if err := controller.SelectFile(writeResume(t)); err != nil {
		t.Fatal(err)
	}
	controller.SetForm(validForm())

	expectKind(t, controller.Submit(context.Background()), FailNetworkUnavailable)

	if controller.State() != StateFailed {
		t.Fatalf("expected failed, got %s", controller.State())
	}
}

func TestSubmitTimeoutCancelsRequest(t *testing.T) {
	requestDone := make(chan struct{})
	controller, view, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		// Hold the request until the client gives up.
		<-r.Context().Done()
		close(requestDone)
	})

	if err := controller.SelectFile(writeResume(t)); err != nil {
		t.Fatal(err)
	}
	controller.SetForm(validForm())
	controller.SetMaxWait(50 * time.Millisecond)

	expectKind(t, controller.Submit(context.Background()), FailTimeout)

	select {
	case <-requestDone:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the in-flight request to be cancelled")
	}

	// A late response cannot overwrite the recorded failure.
	if controller.State() != StateFailed {
		t.Fatalf("expected failed, got %s", controller.State())
	}
	if controller.Outcome() != nil {
		t.Fatal("expected no outcome after timeout")
	}
	if len(view.results) != 0 {
		t.Fatal("expected no rendered report after timeout")
	}
}

func TestSubmitRejectedWhileInFlight(t *testing.T) {
	controller, _, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {})

	if err := controller.SelectFile(writeResume(t)); err != nil {
		t.Fatal(err)
	}
	controller.SetForm(validForm())
	controller.state = StateSubmitting

	if err := controller.Submit(context.Background()); err == nil {
		t.Fatal("expected second submit to be rejected")
	}
}

func TestReset(t *testing.T) {
	controller, view, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(successBody))
	})

	if err := controller.SelectFile(writeResume(t)); err != nil {
		t.Fatal(err)
	}
	controller.SetForm(validForm())
	if err := controller.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}

	controller.Reset()

	if controller.State() != StateIdle {
		t.Fatalf("expected idle, got %s", controller.State())
	}
	if controller.File() != nil || controller.Outcome() != nil {
		t.Fatal("expected file and outcome to be discarded")
	}
	if view.uploads != 1 {
		t.Fatalf("expected the upload view to be shown once, got %d", view.uploads)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind FailureKind
	}{
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			kind: FailTimeout,
		},
		{
			name: "status error",
			err:  &screening.StatusError{StatusCode: 500, Message: "boom"},
			kind: FailServerError,
		},
		{
			name: "api error",
			err:  &screening.APIError{Message: "bad payload"},
			kind: FailApplicationError,
		},
		{
			name: "anything else",
			err:  errors.New("unexpected"),
			kind: FailApplicationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if failure := classify(tt.err); failure.Kind != tt.kind {
				t.Fatalf("expected %s, got %s", tt.kind, failure.Kind)
			}
		})
	}
}
