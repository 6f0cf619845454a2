package main

import (
	"math/rand"

	"github.com/erematorg/brine/config"
	"github.com/erematorg/brine/fluid"
	"github.com/erematorg/brine/geom"
)

// FitnessEvaluator runs headless solver runs and scores settle time.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	lastMeanSettle float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastMeanSettle returns the mean settle tick of the most recent evaluation.
func (fe *FitnessEvaluator) LastMeanSettle() float64 {
	return fe.lastMeanSettle
}

// Evaluate computes fitness for a parameter vector (lower = better).
// The score for one run is the tick at which the fluid settles, or
// maxTicks plus a residual-motion penalty if it never does.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	clamped := fe.params.Clamp(raw)

	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, clamped)

	var total float64
	for _, seed := range fe.seeds {
		total += fe.runOnce(&cfg, seed)
	}
	mean := total / float64(len(fe.seeds))
	fe.lastMeanSettle = mean
	return mean
}

// runOnce simulates a single seeded drop into an empty container.
func (fe *FitnessEvaluator) runOnce(cfg *config.Config, seed int64) float64 {
	boundary := geom.Polygon{
		{X: 0, Y: 0},
		{X: cfg.Derived.ScreenW32, Y: 0},
		{X: cfg.Derived.ScreenW32, Y: cfg.Derived.ScreenH32},
		{X: 0, Y: cfg.Derived.ScreenH32},
	}

	rng := rand.New(rand.NewSource(seed))
	solver := fluid.NewSolver(cfg, boundary, rng)

	for tick := int32(0); tick < fe.maxTicks; tick++ {
		solver.Step(nil)
		if solver.Settled() {
			return float64(tick)
		}
	}

	// Never settled. Penalize by how much motion is left so the search
	// still has a gradient past the tick cap.
	return float64(fe.maxTicks) + float64(solver.Stats().MeanSpeed)
}
