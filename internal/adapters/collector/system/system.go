// Package system samples Go runtime and host statistics into the
// shared instrument registry at a fixed poll interval.
package system

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/vshulcz/Telemetra/internal/metrics"
)

// Collector writes runtime memory stats, GC pause observations, and
// host CPU/RAM utilization into the registry it was given. The
// exporter drains them on its own schedule.
type Collector struct {
	reg  *metrics.Registry
	stop chan struct{}
	wg   sync.WaitGroup

	lastNumGC uint32
}

func New(reg *metrics.Registry) *Collector {
	return &Collector{
		reg:  reg,
		stop: make(chan struct{}),
	}
}

// Start launches the runtime and host samplers at the given interval.
func (c *Collector) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", interval)
	}

	t := time.NewTicker(interval)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			case <-t.C:
				c.sampleRuntime()
			}
		}
	}()

	tSys := time.NewTicker(interval)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer tSys.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			case <-tSys.C:
				c.sampleHost()
			}
		}
	}()

	return nil
}

// Stop halts every sampler goroutine and waits for them to finish.
func (c *Collector) Stop() {
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
	c.wg.Wait()
}

func (c *Collector) sampleRuntime() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	c.reg.Gauge("runtime.mem.alloc").Set(float64(ms.Alloc))
	c.reg.Gauge("runtime.mem.total_alloc").Set(float64(ms.TotalAlloc))
	c.reg.Gauge("runtime.mem.sys").Set(float64(ms.Sys))
	c.reg.Gauge("runtime.mem.heap_alloc").Set(float64(ms.HeapAlloc))
	c.reg.Gauge("runtime.mem.heap_inuse").Set(float64(ms.HeapInuse))
	c.reg.Gauge("runtime.mem.heap_objects").Set(float64(ms.HeapObjects))
	c.reg.Gauge("runtime.mem.stack_inuse").Set(float64(ms.StackInuse))
	c.reg.Gauge("runtime.gc.next").Set(float64(ms.NextGC))
	c.reg.Gauge("runtime.gc.cpu_fraction").Set(ms.GCCPUFraction)
	c.reg.Gauge("runtime.goroutines").Set(float64(runtime.NumGoroutine()))

	// PauseNs is a 256-entry ring; replay only the pauses that landed
	// since the previous sample.
	first := c.lastNumGC
	if ms.NumGC > first+256 {
		first = ms.NumGC - 256
	}
	h := c.reg.Histogram("runtime.gc.pause_ns")
	for i := first; i < ms.NumGC; i++ {
		h.Observe(float64(ms.PauseNs[i%256]))
	}
	c.lastNumGC = ms.NumGC

	c.reg.Counter("runtime.polls").Inc()
}

func (c *Collector) sampleHost() {
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		c.reg.Gauge("system.mem.total").Set(float64(vm.Total))
		c.reg.Gauge("system.mem.free").Set(float64(vm.Free))
		c.reg.Gauge("system.mem.used_percent").Set(vm.UsedPercent)
	}
	if pct, err := cpu.Percent(0, true); err == nil {
		for i, p := range pct {
			c.reg.Gauge("system.cpu.utilization", fmt.Sprintf("core:%d", i)).Set(p)
		}
	}
}
