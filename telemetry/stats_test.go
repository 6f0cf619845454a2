package telemetry

import (
	"math"
	"testing"

	"github.com/erematorg/brine/fluid"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, p10, p50, p90, max := ComputeSpeedStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
	if max != 1.0 {
		t.Errorf("max = %v, want 1.0", max)
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	mean, p10, p50, p90, max := ComputeSpeedStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Error("empty input should yield zeros")
	}
}

func TestCollectorWindowing(t *testing.T) {
	dt := float32(1.0 / 60.0)
	c := NewCollector(1.0, dt) // 60-tick windows

	for tick := int32(0); tick < 60; tick++ {
		c.RecordTick(fluid.StepStats{
			MeanSpeed:   10,
			Reflections: 1,
			ClipPairs:   2,
			Settled:     false,
		})
		if tick < 59 && c.WindowComplete(tick+1) {
			t.Fatalf("window complete too early at tick %d", tick+1)
		}
	}

	if !c.WindowComplete(60) {
		t.Fatal("window should be complete at tick 60")
	}

	stats := c.FlushWindow(60)
	if stats.Reflections != 60 {
		t.Errorf("reflections = %d, want 60", stats.Reflections)
	}
	if stats.ClipPairs != 120 {
		t.Errorf("clip_pairs = %d, want 120", stats.ClipPairs)
	}
	if math.Abs(stats.SpeedMean-10) > 0.001 {
		t.Errorf("speed_mean = %v, want 10", stats.SpeedMean)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 0.001 {
		t.Errorf("sim_time = %v, want 1.0", stats.SimTimeSec)
	}

	// Accumulators reset for the next window.
	next := c.FlushWindow(120)
	if next.Reflections != 0 || len(c.speeds) != 0 {
		t.Error("flush did not reset accumulators")
	}
	if next.WindowStartTick != 60 {
		t.Errorf("next window starts at %d, want 60", next.WindowStartTick)
	}
}

func TestCollectorSettleTransitions(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	c.RecordTick(fluid.StepStats{Settled: false})
	c.RecordTick(fluid.StepStats{Settled: true})
	c.RecordTick(fluid.StepStats{Settled: true})
	c.RecordTick(fluid.StepStats{Settled: false})

	stats := c.FlushWindow(4)
	if stats.SettleTransitions != 2 {
		t.Errorf("settle_transitions = %d, want 2", stats.SettleTransitions)
	}
	if stats.SettledTicks != 2 {
		t.Errorf("settled_ticks = %d, want 2", stats.SettledTicks)
	}
}
