// Package types defines the job result model shared by the pagination
// pipeline, the report renderer and the summary store.
package types

import "fmt"

// Severity is one validator/engine issue level. Levels are counted
// independently and never summed.
type Severity int

const (
	SeverityFatal Severity = iota
	SeverityError
	SeverityWarning
)

// Severities lists every level in report order.
var Severities = []Severity{SeverityFatal, SeverityError, SeverityWarning}

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Counts is one provenance group of (fatal, error, warning) issue counts.
type Counts struct {
	Fatal int `json:"fatal"`
	Error int `json:"error"`
	Warn  int `json:"warn"`
}

// Get returns the count for a single severity.
func (c Counts) Get(s Severity) int {
	switch s {
	case SeverityFatal:
		return c.Fatal
	case SeverityError:
		return c.Error
	case SeverityWarning:
		return c.Warn
	default:
		return 0
	}
}

// Any reports whether at least one counter is non-zero.
func (c Counts) Any() bool {
	return c.Fatal != 0 || c.Error != 0 || c.Warn != 0
}

// Valid reports whether every counter is non-negative.
func (c Counts) Valid() bool {
	return c.Fatal >= 0 && c.Error >= 0 && c.Warn >= 0
}

// Provenance names the source of a diagnostic group.
type Provenance string

const (
	ProvenancePager     Provenance = "pager" // issues raised by the pagination engine
	ProvenanceOriginal  Provenance = "orig"  // validator run against the input document
	ProvenancePaginated Provenance = "echk"  // validator run against the produced document
)

// JobResult is the record returned by a pagination job.
//
// Original and Paginated are only meaningful when the matching Checked flag
// is set. An unchecked group is "not measured", not "clean".
type JobResult struct {
	Document string `json:"epub_file"`  // input document
	Output   string `json:"bk_outfile"` // produced document
	LogFile  string `json:"logfile"`    // engine log

	Pager     Counts `json:"pager"`
	Original  Counts `json:"orig"`
	Paginated Counts `json:"echk"`

	OriginalChecked  bool `json:"orig_checked"`
	PaginatedChecked bool `json:"echk_checked"`

	WordCount int `json:"wordcount,omitempty"`
}

// Group returns the counts recorded for a provenance.
func (r JobResult) Group(p Provenance) Counts {
	switch p {
	case ProvenancePager:
		return r.Pager
	case ProvenanceOriginal:
		return r.Original
	case ProvenancePaginated:
		return r.Paginated
	default:
		return Counts{}
	}
}
