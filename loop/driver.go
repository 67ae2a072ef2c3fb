// Package loop drives a tetris.Engine from an external tick source. A
// Driver runs registered systems once per frame, applies the commands they
// queued, and records per-system timings.
package loop

import (
	"context"
	"reflect"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// DriverStats provides statistics about frame execution.
type DriverStats struct {
	SystemCount int
	Frames      int64
	Systems     []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Driver owns the only reference through which an engine is mutated
// during play.
type Driver struct {
	engine      *tetris.Engine
	systems     []System
	systemStats []*systemStatsInternal
	frames      int64
}

func NewDriver(engine *tetris.Engine) *Driver {
	return &Driver{
		engine:  engine,
		systems: make([]System, 0),
	}
}

func (d *Driver) Engine() *tetris.Engine { return d.engine }

// Register appends a system. Systems run in registration order.
func (d *Driver) Register(system System) {
	d.systems = append(d.systems, system)
	d.systemStats = append(d.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if name := systemType.Name(); name != "" {
		return name
	}
	return systemType.String()
}

// Once runs every system with the given delta time and flushes the
// commands they queued.
func (d *Driver) Once(dt time.Duration) {
	frame := newFrame(dt, d.engine)

	for i, system := range d.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := d.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush(d.engine)
	d.frames++
}

// Run executes frames at the given interval until the context is cancelled.
// Cancelling is the only way to stop the tick source; no frame is ever left
// half-applied.
func (d *Driver) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			d.Once(dt)
		}
	}
}

// Stats returns statistics about system execution.
func (d *Driver) Stats() *DriverStats {
	stats := &DriverStats{
		SystemCount: len(d.systems),
		Frames:      d.frames,
		Systems:     make([]SystemStats, len(d.systemStats)),
	}

	for i, internal := range d.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}
