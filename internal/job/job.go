// Package job runs one pagination job: an optional validator pass over the
// original document, the pagination engine, and a validator pass over the
// produced document.
package job

import (
	"context"
	"errors"

	"github.com/ChuLiYu/epub-pager/internal/config"
	"github.com/ChuLiYu/epub-pager/pkg/types"
)

var (
	// ErrEngineFailure means the engine produced no usable document. The
	// job is aborted and no result is returned.
	ErrEngineFailure = errors.New("pagination engine failed")

	// ErrValidatorFailure means a validator pass could not produce counts.
	ErrValidatorFailure = errors.New("validator failed")
)

// Request is the input handed to the engine. It is not modified after
// construction.
type Request struct {
	Document string        `json:"epub_file"`
	Config   config.Record `json:"config"`
}

// NewRequest builds a Request.
func NewRequest(document string, cfg config.Record) Request {
	return Request{Document: document, Config: cfg}
}

// Output is what the engine reports for a finished job.
type Output struct {
	Document  string       // produced document
	LogFile   string       // engine log
	Issues    types.Counts // issues raised by the engine itself
	WordCount int          // 0 when the engine does not report it
}

// Engine paginates a document. Paginate blocks until the engine is done.
type Engine interface {
	Paginate(ctx context.Context, req Request) (Output, error)
}

// Validator checks a document package and reports its issue counts.
type Validator interface {
	Check(ctx context.Context, document string) (types.Counts, error)
}

// ValidatorFactory builds a Validator for the executable configured in
// the epubcheck option.
type ValidatorFactory func(path string) Validator
