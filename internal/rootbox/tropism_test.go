package rootbox

import (
	"math"
	"testing"
)

// halfspace keeps everything below the plane z = Top.
type halfspace struct {
	Top float64
}

func (h halfspace) Distance(p Vector3) float64 { return p.Z - h.Top }

func TestGravitropism_PrefersDown(t *testing.T) {
	rng := NewRandomStream(3)
	g := NewGravitropism(20, 0.4, rng, nil)

	h := Vector3{1, 0, 0} // horizontal tip
	got := g.NextHeading(Vector3{}, h, 0.25, nil)
	if math.Abs(got.Length()-1) > 1e-9 {
		t.Fatalf("expected unit heading, got length %f", got.Length())
	}
	if got.Z >= 0 {
		t.Errorf("expected downward bias from 20 trials, got z=%f", got.Z)
	}
}

func TestPlagiotropism_PrefersHorizontal(t *testing.T) {
	rng := NewRandomStream(3)
	p := NewPlagiotropism(20, 0.4, rng, nil)

	h := Vector3{0, 0, -1} // vertical tip
	got := p.NextHeading(Vector3{}, h, 0.25, nil)
	if math.Abs(got.Z) >= 1 {
		t.Errorf("expected bend toward the horizontal, got z=%f", got.Z)
	}
}

func TestExotropism_FollowsDirection(t *testing.T) {
	rng := NewRandomStream(3)
	dir := Vector3{0, 1, 0}
	e := NewExotropism(dir, 20, 0.4, rng, nil)

	h := Vector3{1, 0, 0}
	got := e.NextHeading(Vector3{}, h, 0.25, nil)
	if got.Dot(dir) <= h.Dot(dir) {
		t.Errorf("expected progress toward the target direction, got dot %f", got.Dot(dir))
	}
}

func TestExotropism_DefaultsToInitialHeading(t *testing.T) {
	rng := NewRandomStream(3)
	e := NewExotropism(Vector3{}, 20, 0.4, rng, nil)

	r := &Root{InitialHeading: Vector3{1, 0, 0}}
	h := Vector3{0, 0, -1} // bent away from the insertion direction
	got := e.NextHeading(Vector3{}, h, 0.25, r)
	if got.X <= 0 {
		t.Errorf("expected bias back toward the initial heading, got x=%f", got.X)
	}
}

func TestHydrotropism_ClimbsField(t *testing.T) {
	rng := NewRandomStream(3)
	field := LinearField{Origin: Vector3{}, Dir: Vector3{1, 0, 0}, Slope: 1}
	hy := NewHydrotropism(field, 50, 0.6, rng, nil)

	h := Vector3{0, 1, 0}
	got := hy.NextHeading(Vector3{}, h, 0.25, nil)
	if got.X <= 0 {
		t.Errorf("expected bend toward ascending field values, got x=%f", got.X)
	}
}

func TestHydrotropism_NoFieldFallsBackToGravi(t *testing.T) {
	rng := NewRandomStream(3)
	hy := NewHydrotropism(nil, 20, 0.4, rng, nil)

	got := hy.NextHeading(Vector3{}, Vector3{1, 0, 0}, 0.25, nil)
	if got.Z >= 0 {
		t.Errorf("expected downward bias without a field, got z=%f", got.Z)
	}
}

func TestTropism_RespectsGeometry(t *testing.T) {
	rng := NewRandomStream(11)
	geo := halfspace{Top: 0}
	g := NewGravitropism(2, 0.5, rng, geo)

	pos := Vector3{0, 0, -0.01} // just below the boundary
	h := Vector3{0, 0, 1}       // heading straight out
	for i := 0; i < 50; i++ {
		got := g.NextHeading(pos, h, 0.25, nil)
		if !inside(geo, pos.Add(got.Scale(0.25))) {
			t.Fatalf("trial %d: heading %v leaves the geometry", i, got)
		}
	}
}

func TestTropism_CloneSharesStream(t *testing.T) {
	rng := NewRandomStream(3)
	g := NewGravitropism(5, 0.3, rng, nil)
	c, ok := g.Clone().(*Gravitropism)
	if !ok {
		t.Fatal("clone changed type")
	}
	if c.rng != g.rng {
		t.Error("clone must keep drawing from the shared stream")
	}
	if c.score == nil {
		t.Error("clone lost its objective")
	}
}

func TestNewTrialTropism_CeilsTrials(t *testing.T) {
	tt := newTrialTropism(1.5, 0.2, NewRandomStream(0), nil)
	if tt.n != 2 {
		t.Errorf("expected 2 trials for n=1.5, got %d", tt.n)
	}
	tt = newTrialTropism(0, 0.2, NewRandomStream(0), nil)
	if tt.n != 1 {
		t.Errorf("expected at least 1 trial, got %d", tt.n)
	}
}
