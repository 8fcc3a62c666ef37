// ============================================================================
// epub-pager Metrics - Prometheus job metrics
// ============================================================================
//
// Package: internal/metrics
// File: metrics.go
// Purpose: Record the outcome of pagination jobs in Prometheus form
//
// Metrics:
//   - epubpager_jobs_total{outcome}                    Counter
//   - epubpager_job_duration_seconds                   Histogram
//   - epubpager_engine_duration_seconds                Histogram
//   - epubpager_validation_duration_seconds{pass}      Histogram
//   - epubpager_diagnostics{provenance,severity}       Gauge
//   - epubpager_validation_measured{provenance}        Gauge (0/1)
//
// A CLI run is too short to be scraped, so the registry is written once to
// a node_exporter textfile at the end of the job (WriteTextfile).
//
// Every method is safe on a nil *Collector so callers can leave metrics off.
//
// ============================================================================

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ChuLiYu/epub-pager/pkg/types"
)

// Validation pass labels.
const (
	PassOriginal  = "original"
	PassPaginated = "paginated"
)

// Collector holds the job metrics.
type Collector struct {
	jobs               *prometheus.CounterVec
	jobDuration        prometheus.Histogram
	engineDuration     prometheus.Histogram
	validationDuration *prometheus.HistogramVec
	diagnostics        *prometheus.GaugeVec
	measured           *prometheus.GaugeVec
}

// NewCollector creates the collectors and registers them with reg.
// Registering twice on the same registry panics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "epubpager_jobs_total",
			Help: "Pagination jobs by outcome",
		}, []string{"outcome"}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "epubpager_job_duration_seconds",
			Help:    "Wall time of a successful job, validator passes included",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		engineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "epubpager_engine_duration_seconds",
			Help:    "Time spent in the pagination engine",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		validationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "epubpager_validation_duration_seconds",
			Help:    "Time spent in a validator pass",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"pass"}),
		diagnostics: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epubpager_diagnostics",
			Help: "Issue counts of the last job by provenance and severity",
		}, []string{"provenance", "severity"}),
		measured: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epubpager_validation_measured",
			Help: "1 if the validator ran for the provenance group",
		}, []string{"provenance"}),
	}

	reg.MustRegister(c.jobs, c.jobDuration, c.engineDuration, c.validationDuration, c.diagnostics, c.measured)
	return c
}

// RecordJob records a successful job and its diagnostic counts.
func (c *Collector) RecordJob(res types.JobResult, d time.Duration) {
	if c == nil {
		return
	}
	c.jobs.WithLabelValues("success").Inc()
	c.jobDuration.Observe(d.Seconds())
	for _, p := range []types.Provenance{types.ProvenancePager, types.ProvenanceOriginal, types.ProvenancePaginated} {
		counts := res.Group(p)
		for _, s := range types.Severities {
			c.diagnostics.WithLabelValues(string(p), s.String()).Set(float64(counts.Get(s)))
		}
	}
	c.measured.WithLabelValues(string(types.ProvenanceOriginal)).Set(boolGauge(res.OriginalChecked))
	c.measured.WithLabelValues(string(types.ProvenancePaginated)).Set(boolGauge(res.PaginatedChecked))
}

// RecordFailure records an aborted job.
func (c *Collector) RecordFailure() {
	if c == nil {
		return
	}
	c.jobs.WithLabelValues("failure").Inc()
}

// ObserveEngine records the duration of one engine call.
func (c *Collector) ObserveEngine(d time.Duration) {
	if c == nil {
		return
	}
	c.engineDuration.Observe(d.Seconds())
}

// ObserveValidation records the duration of one validator pass.
func (c *Collector) ObserveValidation(pass string, d time.Duration) {
	if c == nil {
		return
	}
	c.validationDuration.WithLabelValues(pass).Observe(d.Seconds())
}

// WriteTextfile writes everything gathered by g to path in the Prometheus
// text format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
