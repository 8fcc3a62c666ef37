// Package engine runs an external pagination engine as a subprocess.
//
// The engine receives the job request as JSON on stdin:
//
//	{"epub_file": "book.epub", "config": {"pgwords": 300, ...}}
//
// and must print its result as JSON on stdout:
//
//	{"bk_outfile": "...", "logfile": "...", "fatal": 0, "error": 0, "warn": 0, "wordcount": 0}
//
// A non-zero exit status or an unreadable result is a failure.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ChuLiYu/epub-pager/internal/job"
	"github.com/ChuLiYu/epub-pager/pkg/types"
)

// DefaultPath is the engine executable looked up in PATH when none is set.
const DefaultPath = "epub-pager-engine"

// response is the engine's stdout payload.
type response struct {
	Output    string `json:"bk_outfile"`
	LogFile   string `json:"logfile"`
	Fatal     int    `json:"fatal"`
	Error     int    `json:"error"`
	Warn      int    `json:"warn"`
	WordCount int    `json:"wordcount"`
}

// Exec is a job.Engine backed by an executable.
type Exec struct {
	Path string
	Args []string
}

// NewExec creates an Exec engine. An empty path uses DefaultPath.
func NewExec(path string, args ...string) *Exec {
	if path == "" {
		path = DefaultPath
	}
	return &Exec{Path: path, Args: args}
}

// Paginate runs the engine once and waits for it to exit.
func (e *Exec) Paginate(ctx context.Context, req job.Request) (job.Output, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return job.Output{}, fmt.Errorf("failed to encode request: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.Path, e.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return job.Output{}, fmt.Errorf("%s exited with code %d: %s",
				e.Path, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return job.Output{}, fmt.Errorf("failed to run %s: %w", e.Path, err)
	}

	var resp response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return job.Output{}, fmt.Errorf("failed to parse engine result: %w", err)
	}

	return job.Output{
		Document:  resp.Output,
		LogFile:   resp.LogFile,
		Issues:    types.Counts{Fatal: resp.Fatal, Error: resp.Error, Warn: resp.Warn},
		WordCount: resp.WordCount,
	}, nil
}
