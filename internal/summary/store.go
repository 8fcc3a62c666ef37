package summary

// ============================================================================
// Responsibilities:
// 1. Persist a finished job's result as a JSON summary file
// 2. Write atomically (temp file + rename) so readers never see a torn file
// 3. Check the schema version on load so old summaries are rejected cleanly
// ============================================================================

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ChuLiYu/epub-pager/pkg/types"
)

// SchemaVersion is the current summary file layout.
const SchemaVersion = 1

var (
	ErrCorruptedSummary    = errors.New("summary file is corrupted")
	ErrIncompatibleVersion = errors.New("summary schema version is incompatible")
	ErrSummaryNotFound     = errors.New("summary file not found")
)

// document is the on-disk layout.
type document struct {
	SchemaVer int             `json:"schema_ver"`
	Result    types.JobResult `json:"result"`
}

// Store reads and writes one summary file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Write stores res atomically.
func (s *Store) Write(res types.JobResult) error {
	data, err := json.MarshalIndent(document{SchemaVer: SchemaVersion, Result: res}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp summary: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename summary: %w", err)
	}
	return nil
}

// Load reads the summary back.
func (s *Store) Load() (types.JobResult, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.JobResult{}, fmt.Errorf("%w: %s", ErrSummaryNotFound, s.path)
		}
		return types.JobResult{}, fmt.Errorf("failed to read summary: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.JobResult{}, fmt.Errorf("%w: %v", ErrCorruptedSummary, err)
	}
	if doc.SchemaVer != SchemaVersion {
		return types.JobResult{}, fmt.Errorf("%w: got %d, want %d", ErrIncompatibleVersion, doc.SchemaVer, SchemaVersion)
	}
	if !doc.Result.Pager.Valid() || !doc.Result.Original.Valid() || !doc.Result.Paginated.Valid() {
		return types.JobResult{}, fmt.Errorf("%w: negative issue counts", ErrCorruptedSummary)
	}
	return doc.Result, nil
}
