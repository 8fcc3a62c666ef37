// Package validator runs the epubcheck conformance checker and reads its
// issue counts.
package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ChuLiYu/epub-pager/internal/job"
	"github.com/ChuLiYu/epub-pager/pkg/types"
)

// report is the part of epubcheck's --json output we need.
type report struct {
	Checker struct {
		Fatal   *int `json:"nFatal"`
		Error   *int `json:"nError"`
		Warning *int `json:"nWarning"`
	} `json:"checker"`
}

// Epubcheck is a job.Validator backed by the epubcheck executable.
type Epubcheck struct {
	Path string
}

// NewEpubcheck matches job.ValidatorFactory.
func NewEpubcheck(path string) job.Validator {
	return &Epubcheck{Path: path}
}

// Check runs epubcheck against document. epubcheck exits non-zero when it
// finds errors; that is still a successful check as long as the JSON
// report was written.
func (e *Epubcheck) Check(ctx context.Context, document string) (types.Counts, error) {
	dir, err := os.MkdirTemp("", "epubcheck-")
	if err != nil {
		return types.Counts{}, fmt.Errorf("failed to create report dir: %w", err)
	}
	defer os.RemoveAll(dir)
	reportPath := filepath.Join(dir, "report.json")

	cmd := exec.CommandContext(ctx, e.Path, document, "--json", reportPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return types.Counts{}, fmt.Errorf("failed to run %s: %w", e.Path, runErr)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		if runErr != nil {
			return types.Counts{}, fmt.Errorf("%s exited with code %d and wrote no report: %s",
				e.Path, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return types.Counts{}, fmt.Errorf("failed to read report: %w", err)
	}
	return parseReport(data)
}

func parseReport(data []byte) (types.Counts, error) {
	var r report
	if err := json.Unmarshal(data, &r); err != nil {
		return types.Counts{}, fmt.Errorf("failed to parse report: %w", err)
	}
	c := r.Checker
	if c.Fatal == nil || c.Error == nil || c.Warning == nil {
		return types.Counts{}, errors.New("report has no checker counts")
	}
	return types.Counts{Fatal: *c.Fatal, Error: *c.Error, Warn: *c.Warning}, nil
}
