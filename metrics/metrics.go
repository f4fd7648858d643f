// Package metrics exposes the one histogram family a flowgraph process
// emits: processing_time, labeled by node_id and observed in seconds per
// processor invocation (spec.md §6). Registration happens once, explicitly,
// from cmd -- not from a package init() -- since it touches prometheus's
// global registry, a side effect tests should be able to control.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce   sync.Once
	processingTime *prometheus.HistogramVec
)

// Register installs the processing_time histogram into the default
// prometheus registry. Safe to call more than once; only the first call
// has an effect.
func Register() {
	registerOnce.Do(func() {
		processingTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flowgraph",
			Name:      "processing_time_seconds",
			Help:      "Time spent in a single processor invocation, labeled by node_id.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"node_id"})
		prometheus.MustRegister(processingTime)
	})
}

// ObserveProcessingTime records one processor invocation's duration. A
// no-op if Register has not yet been called, so consumer threads never
// need a nil check of their own.
func ObserveProcessingTime(nodeID string, d time.Duration) {
	if processingTime == nil {
		return
	}
	processingTime.WithLabelValues(nodeID).Observe(d.Seconds())
}
