package game

import "log/slog"

// flushTelemetry emits the stats window when it completes.
func (g *Game) flushTelemetry() {
	tick := g.solver.Tick()
	if !g.collector.WindowComplete(tick) {
		return
	}

	stats := g.collector.FlushWindow(tick)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
