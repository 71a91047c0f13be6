package main

import (
	"maps"
	"math"
	"slices"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/habitat/config"
	"github.com/pthm-cable/habitat/sim"
	"github.com/pthm-cable/habitat/telemetry"
	"github.com/pthm-cable/habitat/world"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxSteps    int
	seeds       []int64
	baseConfig  *config.Config
	windowSteps int

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64 // quality from most recent Evaluate call
	lastSteps   float64 // mean survival from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxSteps int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	window := baseCfg.Telemetry.Window
	if window < 1 {
		window = 50
	}
	return &FitnessEvaluator{
		params:      params,
		maxSteps:    maxSteps,
		seeds:       seeds,
		baseConfig:  baseCfg,
		windowSteps: window,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastSurvival returns the mean survival in steps from the most recent
// evaluation.
func (fe *FitnessEvaluator) LastSurvival() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSteps
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalSteps int                     // steps before the run went non-viable, or maxSteps
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

type seedResult struct {
	fitness  float64
	quality  float64
	survival int
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival steps scaled by up to 20% for quality.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r := fe.runSimulation(cfg, s)
			results[idx] = seedResult{
				fitness:  computeFitness(r),
				quality:  computeQuality(r.windowStats),
				survival: r.survivalSteps,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality, totalSteps float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		totalSteps += float64(r.survival)
	}
	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastQuality = totalQuality / n
	fe.lastSteps = totalSteps / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run until it is no longer viable
// or maxSteps is reached. cfg is shared between seeds and only read.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{}

	opts := sim.OptionsFromConfig(cfg, seed)
	opts.Delay = 0
	opts.WindowSteps = fe.windowSteps
	opts.StatsCallback = func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
	}

	s := sim.New(opts)
	result.survivalSteps = s.Simulate(fe.maxSteps)
	return result
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Species = slices.Clone(fe.baseConfig.Species)
	cfg.Derived.Registry = slices.Clone(fe.baseConfig.Derived.Registry)
	cfg.Viewer.Colors = maps.Clone(fe.baseConfig.Viewer.Colors)
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalSteps × (1.0 + 0.2 × quality))
func computeFitness(r *runResult) float64 {
	survival := float64(r.survivalSteps)
	quality := computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightDiversity = 0.5
	qualityWeightStability = 0.3
	qualityWeightHealth    = 0.2

	qualityWarmupWindows = 1 // skip first N windows (warmup)
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats:
// species kept alive, steadiness of the total population and the share of
// healthy organisms.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var diversitySum, healthSum float64
	totals := make([]float64, 0, len(valid))
	for _, w := range valid {
		diversitySum += float64(w.SpeciesAlive()) / float64(len(world.AllSpecies()))
		healthSum += 1 - w.SickFraction()
		totals = append(totals, float64(w.Total))
	}
	n := float64(len(valid))

	stability := 0.0
	if len(totals) >= 2 {
		mean, std := stat.PopMeanStdDev(totals, nil)
		if mean > 0 {
			c := std / mean
			stability = math.Exp(-c * c)
		}
	}

	quality := qualityWeightDiversity*diversitySum/n +
		qualityWeightStability*stability +
		qualityWeightHealth*healthSum/n

	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
