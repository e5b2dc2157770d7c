package ensemble

import (
	"context"
	"math"
	"testing"

	"github.com/timokoch/CRootBox/internal/config"
)

func shortConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Plant.SimTime = 5
	return cfg
}

func TestRun(t *testing.T) {
	e := New(shortConfig(), 4, 10)
	results, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(10+i) {
			t.Errorf("run %d: expected seed %d, got %d", i, 10+i, r.Seed)
		}
		if r.Length <= 0 || r.Depth <= 0 {
			t.Errorf("run %d: expected growth, got %+v", i, r)
		}
	}
}

func TestRun_DeterministicPerSeed(t *testing.T) {
	a, err := New(shortConfig(), 3, 1).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(shortConfig(), 3, 1).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("run %d differs between ensembles: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(shortConfig(), 2, 1).Run(ctx); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestSummarize(t *testing.T) {
	results := []RunResult{
		{Length: 10, Depth: 4, Roots: 1},
		{Length: 14, Depth: 6, Roots: 3},
	}
	length, depth, roots := Summarize(results)
	if length.Mean != 12 {
		t.Errorf("expected mean length 12, got %f", length.Mean)
	}
	if math.Abs(length.SD-math.Sqrt(8)) > 1e-12 {
		t.Errorf("expected sd %f, got %f", math.Sqrt(8), length.SD)
	}
	if depth.Mean != 5 || roots.Mean != 2 {
		t.Errorf("unexpected stats: depth %+v roots %+v", depth, roots)
	}
}
