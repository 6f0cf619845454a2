// Package telemetry collects per-window statistics and perf timings for
// the simulation.
package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated fluid statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Mean-speed distribution over the window's ticks
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Event counters during the window
	Reflections int `csv:"reflections"`
	ZoneEjects  int `csv:"zone_ejects"`
	ClipPairs   int `csv:"clip_pairs"`

	// Surface classification at window end
	SurfaceCount int `csv:"surface_count"`

	// Settled tracking
	SettledTicks      int `csv:"settled_ticks"`
	SettleTransitions int `csv:"settle_transitions"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, percentiles and max from speed samples.
func ComputeSpeedStats(values []float64) (mean, p10, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
		if v > max {
			max = v
		}
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Int("reflections", s.Reflections),
		slog.Int("zone_ejects", s.ZoneEjects),
		slog.Int("clip_pairs", s.ClipPairs),
		slog.Int("surface_count", s.SurfaceCount),
		slog.Int("settled_ticks", s.SettledTicks),
		slog.Int("settle_transitions", s.SettleTransitions),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"speed_mean", s.SpeedMean,
		"speed_p90", s.SpeedP90,
		"reflections", s.Reflections,
		"zone_ejects", s.ZoneEjects,
		"clip_pairs", s.ClipPairs,
		"surface_count", s.SurfaceCount,
		"settled_ticks", s.SettledTicks,
	)
}
