package metrics

import (
	"sync"
	"sync/atomic"
)

// Counter accumulates a monotonically increasing integer. Safe for
// concurrent producers; a drain swaps the accumulated delta out.
type Counter struct {
	v atomic.Int64
}

func (c *Counter) Inc() {
	c.v.Add(1)
}

func (c *Counter) Add(delta int64) {
	c.v.Add(delta)
}

// take returns the accumulated delta and starts a fresh window.
func (c *Counter) take() int64 {
	return c.v.Swap(0)
}

// Gauge keeps the last written value. A drain reports it only when it
// was written since the previous drain.
type Gauge struct {
	mu    sync.Mutex
	value float64
	set   bool
}

func (g *Gauge) Set(v float64) {
	g.mu.Lock()
	g.value = v
	g.set = true
	g.mu.Unlock()
}

func (g *Gauge) take() (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.value, g.set
	g.set = false
	return v, ok
}

// Histogram buffers raw observations until the next drain empties it.
type Histogram struct {
	mu      sync.Mutex
	samples []float64
}

func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	h.samples = append(h.samples, v)
	h.mu.Unlock()
}

func (h *Histogram) take() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.samples
	h.samples = nil
	return s
}
