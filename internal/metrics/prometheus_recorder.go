package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "staticfiles"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg              *prom.Registry
	filesCopied      prom.Counter
	filesSkipped     prom.Counter
	entries          *prom.CounterVec
	reactions        *prom.CounterVec
	reactionDuration prom.Histogram
}

// NewPrometheusRecorder constructs and registers the metrics on reg (a fresh
// registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		filesCopied: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_copied_total",
			Help:      "Static files copied into output directories",
		}),
		filesSkipped: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_skipped_total",
			Help:      "Static files excluded by the include glob",
		}),
		entries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "entries_total",
			Help:      "Configuration entries processed by result",
		}, []string{"result"}),
		reactions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "reactions_total",
			Help:      "Build event reactions by outcome",
		}, []string{"outcome"}),
		reactionDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "reaction_duration_seconds",
			Help:      "Duration of build event reactions",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.filesCopied, pr.filesSkipped, pr.entries, pr.reactions, pr.reactionDuration)
	return pr
}

func (p *PrometheusRecorder) AddFilesCopied(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.filesCopied.Add(float64(n))
}

func (p *PrometheusRecorder) AddFilesSkipped(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.filesSkipped.Add(float64(n))
}

func (p *PrometheusRecorder) IncEntry(result EntryResult) {
	if p == nil {
		return
	}
	p.entries.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveReaction(d time.Duration, outcome Outcome) {
	if p == nil {
		return
	}
	p.reactions.WithLabelValues(string(outcome)).Inc()
	p.reactionDuration.Observe(d.Seconds())
}

// WriteTextfile atomically writes the current metric values to path.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
