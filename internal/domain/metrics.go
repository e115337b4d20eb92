package domain

// MetricKind enumerates supported instrument kinds.
type MetricKind string

const (
	// Counter is a monotonically accumulated integer, reported as its
	// delta since the previous drain.
	Counter MetricKind = "count"
	// Gauge is the last value written during the drain window.
	Gauge MetricKind = "gauge"
	// Histogram is a set of observations reduced to summary statistics
	// at drain time.
	Histogram MetricKind = "histogram"
)

// HistogramStats are the deterministic statistics derived from one
// drain window's observations. Raw samples are never exported.
type HistogramStats struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

// Metric is one drained instrument, timestamped at drain time.
// Counters and gauges carry Value; histograms carry Stats.
type Metric struct {
	Name      string
	Kind      MetricKind
	Tags      []string
	Timestamp int64
	Value     float64
	Stats     *HistogramStats
}
