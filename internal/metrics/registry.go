// Package metrics implements the instrument registry: counter, gauge,
// and histogram handles keyed by name plus ordered tag list, drained
// (read and cleared) once per flush by a single flush owner.
package metrics

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vshulcz/Telemetra/internal/domain"
)

// instrumentKey identifies one instrument: name plus its tag list in
// registration order.
type instrumentKey struct {
	name string
	tags string
}

func newKey(name string, tags []string) instrumentKey {
	return instrumentKey{name: name, tags: strings.Join(tags, ",")}
}

type counterEntry struct {
	name   string
	tags   []string
	handle *Counter
}

type gaugeEntry struct {
	name   string
	tags   []string
	handle *Gauge
}

type histogramEntry struct {
	name   string
	tags   []string
	handle *Histogram
}

// Registry owns every registered instrument. It is an explicit
// capability object: independent registries coexist, nothing is
// process-global. Registration from multiple call sites with the same
// name and tags lands on the same handle, so values group naturally.
type Registry struct {
	mu         sync.Mutex
	counters   map[instrumentKey]*counterEntry
	gauges     map[instrumentKey]*gaugeEntry
	histograms map[instrumentKey]*histogramEntry
}

func NewRegistry() *Registry {
	return &Registry{
		counters:   make(map[instrumentKey]*counterEntry),
		gauges:     make(map[instrumentKey]*gaugeEntry),
		histograms: make(map[instrumentKey]*histogramEntry),
	}
}

// Counter returns the counter handle for name and tags, creating it on
// first use. Handles stay valid for the process lifetime.
func (r *Registry) Counter(name string, tags ...string) *Counter {
	k := newKey(name, tags)
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.counters[k]
	if !ok {
		e = &counterEntry{name: name, tags: slices.Clone(tags), handle: &Counter{}}
		r.counters[k] = e
	}
	return e.handle
}

// Gauge returns the gauge handle for name and tags, creating it on
// first use.
func (r *Registry) Gauge(name string, tags ...string) *Gauge {
	k := newKey(name, tags)
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.gauges[k]
	if !ok {
		e = &gaugeEntry{name: name, tags: slices.Clone(tags), handle: &Gauge{}}
		r.gauges[k] = e
	}
	return e.handle
}

// Histogram returns the histogram handle for name and tags, creating
// it on first use.
func (r *Registry) Histogram(name string, tags ...string) *Histogram {
	k := newKey(name, tags)
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.histograms[k]
	if !ok {
		e = &histogramEntry{name: name, tags: slices.Clone(tags), handle: &Histogram{}}
		r.histograms[k] = e
	}
	return e.handle
}

// Drain reads and clears every instrument in one pass and returns the
// resulting metrics: counters first, then gauges, then histograms,
// each sorted by name and tags. Instruments untouched since the
// previous drain are skipped. Producer writes racing a drain land in
// the next window; handles are never invalidated.
//
// Drain must not run concurrently with itself on one registry; the
// exporter's single-flight guard enforces that.
func (r *Registry) Drain(now time.Time) []domain.Metric {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := now.Unix()
	out := make([]domain.Metric, 0, len(r.counters)+len(r.gauges)+len(r.histograms))

	for _, e := range sortedValues(r.counters) {
		if d := e.handle.take(); d != 0 {
			out = append(out, domain.Metric{
				Name:      e.name,
				Kind:      domain.Counter,
				Tags:      slices.Clone(e.tags),
				Timestamp: ts,
				Value:     float64(d),
			})
		}
	}
	for _, e := range sortedValues(r.gauges) {
		if v, ok := e.handle.take(); ok {
			out = append(out, domain.Metric{
				Name:      e.name,
				Kind:      domain.Gauge,
				Tags:      slices.Clone(e.tags),
				Timestamp: ts,
				Value:     v,
			})
		}
	}
	for _, e := range sortedValues(r.histograms) {
		samples := e.handle.take()
		if len(samples) == 0 {
			continue
		}
		stats := summarize(samples)
		out = append(out, domain.Metric{
			Name:      e.name,
			Kind:      domain.Histogram,
			Tags:      slices.Clone(e.tags),
			Timestamp: ts,
			Stats:     &stats,
		})
	}
	return out
}

func summarize(samples []float64) domain.HistogramStats {
	s := domain.HistogramStats{
		Count: int64(len(samples)),
		Min:   samples[0],
		Max:   samples[0],
	}
	for _, v := range samples {
		s.Sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

func sortedValues[E any](m map[instrumentKey]E) []E {
	keys := make([]instrumentKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].tags < keys[j].tags
	})
	out := make([]E, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
