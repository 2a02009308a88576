package submit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxFileSize is the upload ceiling enforced before any request is built.
const maxFileSize = 10 * 1024 * 1024

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".doc":  {},
}

// CandidateFile describes a validated resume file. It is held only between
// selection and submission.
type CandidateFile struct {
	Name string
	Size int64
	Ext  string
	// Path is set when the file was selected from disk; the file is
	// re-opened from it at submit time.
	Path string
}

// SizeMiB returns a human-readable size summary, display only.
func (f *CandidateFile) SizeMiB() string {
	return fmt.Sprintf("%.2f MiB", float64(f.Size)/(1024*1024))
}

// ValidateFile gates a candidate file by extension and size. It never reads
// file contents.
func ValidateFile(name string, size int64) (*CandidateFile, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, newFailure(FailUnsupportedType, "invalid file format, only PDF and DOCX are supported")
	}

	if size > maxFileSize {
		return nil, newFailure(FailTooLarge, "file is too large, the maximum size is 10 MiB")
	}

	return &CandidateFile{Name: filepath.Base(name), Size: size, Ext: ext}, nil
}

// StatFile validates a file on disk, taking its size from the filesystem.
func StatFile(path string) (*CandidateFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume file info: %w", err)
	}

	file, err := ValidateFile(info.Name(), info.Size())
	if err != nil {
		return nil, err
	}

	file.Path = path

	return file, nil
}
