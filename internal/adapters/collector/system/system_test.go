package system

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/vshulcz/Telemetra/internal/domain"
	"github.com/vshulcz/Telemetra/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCollector_SamplesIntoRegistry(t *testing.T) {
	reg := metrics.NewRegistry()
	c := New(reg)

	if err := c.Start(context.Background(), 5*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	c.Stop()

	drained := reg.Drain(time.Now())
	byName := map[string]domain.Metric{}
	for _, m := range drained {
		byName[m.Name] = m
	}

	polls, ok := byName["runtime.polls"]
	if !ok {
		t.Fatal("runtime.polls counter missing")
	}
	if polls.Kind != domain.Counter || polls.Value < 1 {
		t.Fatalf("runtime.polls=%+v", polls)
	}

	heap, ok := byName["runtime.mem.heap_alloc"]
	if !ok {
		t.Fatal("runtime.mem.heap_alloc gauge missing")
	}
	if heap.Kind != domain.Gauge || heap.Value <= 0 {
		t.Fatalf("runtime.mem.heap_alloc=%+v", heap)
	}
}

func TestCollector_RejectsBadInterval(t *testing.T) {
	c := New(metrics.NewRegistry())
	if err := c.Start(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero interval")
	}
}

func TestCollector_StopIsIdempotent(t *testing.T) {
	c := New(metrics.NewRegistry())
	if err := c.Start(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Stop()
	c.Stop()
}

func TestCollector_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := New(metrics.NewRegistry())
	if err := c.Start(ctx, 10*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()
	c.Stop()
}
