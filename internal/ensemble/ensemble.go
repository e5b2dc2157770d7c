// Package ensemble runs many stochastic realizations of one plant in
// parallel. Each engine is strictly sequential; independence across
// engines is what makes the runs safe to parallelize.
package ensemble

import (
	"context"
	"math"
	"sync"

	"github.com/timokoch/CRootBox/internal/config"
	"github.com/timokoch/CRootBox/internal/rootbox"
)

// RunResult summarizes one realization.
type RunResult struct {
	Seed     int64
	Roots    int
	Nodes    int
	Segments int
	Length   float64
	Depth    float64 // deepest node, positive cm below the surface
}

type Ensemble struct {
	cfg       *config.Config
	geometry  rootbox.SignedDistance
	numRuns   int
	seedStart int64
}

func New(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

// SetGeometry confines every realization to the same container.
func (e *Ensemble) SetGeometry(g rootbox.SignedDistance) { e.geometry = g }

// Run grows numRuns root systems with consecutive seeds. The first error
// wins; a canceled context aborts runs that have not started.
func (e *Ensemble) Run(ctx context.Context) ([]RunResult, error) {
	results := make([]RunResult, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if ctx.Err() != nil {
				errs[idx] = ctx.Err()
				return
			}
			results[idx], errs[idx] = e.runOne(e.seedStart + int64(idx))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (e *Ensemble) runOne(seed int64) (RunResult, error) {
	cfg := *e.cfg
	cfg.Seed = seed

	rs := rootbox.New()
	if err := cfg.Apply(rs); err != nil {
		return RunResult{}, err
	}
	if e.geometry != nil {
		rs.SetGeometry(e.geometry)
	}
	if err := rs.Initialize(cfg.Plant.BasalRoots, cfg.Plant.ShootborneRoots); err != nil {
		return RunResult{}, err
	}
	if err := rs.Run(); err != nil {
		return RunResult{}, err
	}

	total := 0.0
	for _, l := range rs.Scalar(rootbox.ScalarLength) {
		total += l
	}
	depth := 0.0
	for _, p := range rs.Nodes() {
		depth = math.Max(depth, -p.Z)
	}
	return RunResult{
		Seed:     seed,
		Roots:    rs.NumberOfRoots(false),
		Nodes:    rs.NumberOfNodes(),
		Segments: rs.NumberOfSegments(),
		Length:   total,
		Depth:    depth,
	}, nil
}

// Stats is a mean and sample standard deviation over the ensemble.
type Stats struct {
	Mean, SD float64
}

// Summarize reduces the per-run results to ensemble statistics.
func Summarize(results []RunResult) (length, depth, roots Stats) {
	lengths := make([]float64, len(results))
	depths := make([]float64, len(results))
	counts := make([]float64, len(results))
	for i, r := range results {
		lengths[i] = r.Length
		depths[i] = r.Depth
		counts[i] = float64(r.Roots)
	}
	return stats(lengths), stats(depths), stats(counts)
}

func stats(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	if len(xs) < 2 {
		return Stats{Mean: mean}
	}
	varsum := 0.0
	for _, x := range xs {
		varsum += (x - mean) * (x - mean)
	}
	return Stats{Mean: mean, SD: math.Sqrt(varsum / float64(len(xs)-1))}
}
