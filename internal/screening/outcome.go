package screening

import (
	"encoding/json"
	"os"
)

// Outcome is the root result payload for one screening run. JobTitle is
// attached by the client after a successful submission, not by the service.
type Outcome struct {
	Parsed   *ParsedResume    `json:"parsed" validate:"required"`
	Screened *ScreeningResult `json:"screened" validate:"required"`
	JobTitle string           `json:"job_title,omitempty"`
}

// OptimizeOutcome is the extended payload returned by the optimize endpoint.
type OptimizeOutcome struct {
	Parsed       *ParsedResume    `json:"parsed" validate:"required"`
	Screened     *ScreeningResult `json:"screened" validate:"required"`
	Optimization *Optimization    `json:"optimization" validate:"required"`
}

// DumpToTmpFile writes the outcome as indented JSON to a temp file and
// returns its name.
func (o *Outcome) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "screening_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return "", err
	}
	return file.Name(), nil
}
