package telemetry

import "github.com/erematorg/brine/fluid"

// Collector accumulates per-tick solver stats within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Accumulated over the current window
	speeds      []float64
	reflections int
	zoneEjects  int
	clipPairs   int
	settled     int
	transitions int

	lastSurface int
	lastSettled bool
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		speeds:              make([]float64, 0, ticksPerWindow),
	}
}

// RecordTick folds one tick's solver counters into the current window.
func (c *Collector) RecordTick(st fluid.StepStats) {
	c.speeds = append(c.speeds, float64(st.MeanSpeed))
	c.reflections += st.Reflections
	c.zoneEjects += st.ZoneEjects
	c.clipPairs += st.ClipPairs
	c.lastSurface = st.SurfaceCount
	if st.Settled {
		c.settled++
	}
	if st.Settled != c.lastSettled {
		c.transitions++
		c.lastSettled = st.Settled
	}
}

// WindowComplete reports whether the window ending at tick is full.
func (c *Collector) WindowComplete(tick int32) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// FlushWindow produces the stats for the completed window and resets the
// accumulators for the next one.
func (c *Collector) FlushWindow(tick int32) WindowStats {
	mean, p10, p50, p90, max := ComputeSpeedStats(c.speeds)

	stats := WindowStats{
		WindowStartTick:   c.windowStartTick,
		WindowEndTick:     tick,
		SimTimeSec:        float64(tick) * float64(c.dt),
		SpeedMean:         mean,
		SpeedP10:          p10,
		SpeedP50:          p50,
		SpeedP90:          p90,
		SpeedMax:          max,
		Reflections:       c.reflections,
		ZoneEjects:        c.zoneEjects,
		ClipPairs:         c.clipPairs,
		SurfaceCount:      c.lastSurface,
		SettledTicks:      c.settled,
		SettleTransitions: c.transitions,
	}

	c.windowStartTick = tick
	c.speeds = c.speeds[:0]
	c.reflections = 0
	c.zoneEjects = 0
	c.clipPairs = 0
	c.settled = 0
	c.transitions = 0

	return stats
}
