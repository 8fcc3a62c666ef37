package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ChuLiYu/epub-pager/internal/config"
	"github.com/ChuLiYu/epub-pager/internal/metrics"
	"github.com/ChuLiYu/epub-pager/pkg/types"
)

// Invoker runs pagination jobs sequentially.
type Invoker struct {
	engine       Engine
	newValidator ValidatorFactory
	metrics      *metrics.Collector
	log          *slog.Logger
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithValidator sets how validators are built. Without it no validator
// pass runs and the validator counts are reported as not measured.
func WithValidator(f ValidatorFactory) Option {
	return func(i *Invoker) { i.newValidator = f }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(i *Invoker) { i.metrics = c }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(i *Invoker) { i.log = l }
}

// NewInvoker creates an Invoker around an engine.
func NewInvoker(engine Engine, opts ...Option) *Invoker {
	i := &Invoker{engine: engine, log: slog.Default()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Invoke paginates document with cfg.
//
// When a validator is configured it runs before pagination against the
// original document (only if chk_orig is set) and after pagination against
// the produced document. Any engine or validator failure aborts the job.
func (i *Invoker) Invoke(ctx context.Context, document string, cfg config.Record) (types.JobResult, error) {
	start := time.Now()
	res, err := i.invoke(ctx, document, cfg)
	if err != nil {
		i.metrics.RecordFailure()
		return types.JobResult{}, err
	}
	i.metrics.RecordJob(res, time.Since(start))
	return res, nil
}

func (i *Invoker) invoke(ctx context.Context, document string, cfg config.Record) (types.JobResult, error) {
	req := NewRequest(document, cfg)
	res := types.JobResult{Document: document}

	var check Validator
	if path := cfg.ValidatorPath(); path != "" && i.newValidator != nil {
		check = i.newValidator(path)
	} else {
		i.log.Info("no validator configured, validation will not be measured")
	}

	if check != nil && cfg.Bool("chk_orig") {
		counts, err := i.validate(ctx, check, metrics.PassOriginal, document)
		if err != nil {
			return res, fmt.Errorf("%w: original document: %v", ErrValidatorFailure, err)
		}
		res.Original = counts
		res.OriginalChecked = true
	}

	i.log.Info("paginating", "document", document)
	engineStart := time.Now()
	out, err := i.engine.Paginate(ctx, req)
	i.metrics.ObserveEngine(time.Since(engineStart))
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrEngineFailure, err)
	}
	if err := checkOutput(out); err != nil {
		return res, fmt.Errorf("%w: %v", ErrEngineFailure, err)
	}
	if !out.Issues.Valid() {
		return res, fmt.Errorf("%w: negative issue counts %+v", ErrEngineFailure, out.Issues)
	}

	res.Output = out.Document
	res.LogFile = out.LogFile
	res.Pager = out.Issues
	res.WordCount = out.WordCount
	if out.WordCount > 0 {
		i.log.Debug("page size",
			"words", out.WordCount,
			"words_per_page", config.WordsPerPage(cfg, out.WordCount))
	}

	if check != nil {
		counts, err := i.validate(ctx, check, metrics.PassPaginated, out.Document)
		if err != nil {
			return res, fmt.Errorf("%w: paginated document: %v", ErrValidatorFailure, err)
		}
		res.Paginated = counts
		res.PaginatedChecked = true
	}
	return res, nil
}

func (i *Invoker) validate(ctx context.Context, check Validator, pass, document string) (types.Counts, error) {
	start := time.Now()
	counts, err := check.Check(ctx, document)
	i.metrics.ObserveValidation(pass, time.Since(start))
	if err != nil {
		return types.Counts{}, err
	}
	if !counts.Valid() {
		return types.Counts{}, fmt.Errorf("negative issue counts %+v", counts)
	}
	i.log.Debug("validated", "pass", pass, "document", document,
		"fatal", counts.Fatal, "error", counts.Error, "warn", counts.Warn)
	return counts, nil
}

// checkOutput enforces that both reported paths exist.
func checkOutput(out Output) error {
	if out.Document == "" {
		return errors.New("no output document reported")
	}
	if out.LogFile == "" {
		return errors.New("no log file reported")
	}
	for _, p := range []string{out.Document, out.LogFile} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("reported path unavailable: %w", err)
		}
	}
	return nil
}
