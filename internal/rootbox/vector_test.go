package rootbox

import (
	"math"
	"testing"
)

func TestVectorOps(t *testing.T) {
	a := Vector3{1, 2, 3}
	b := Vector3{4, -5, 6}

	if got := a.Add(b); got != (Vector3{5, -3, 9}) {
		t.Errorf("expected (5,-3,9), got %v", got)
	}
	if got := a.Sub(b); got != (Vector3{-3, 7, -3}) {
		t.Errorf("expected (-3,7,-3), got %v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("expected dot 12, got %f", got)
	}
	if got := a.Cross(b); got != (Vector3{27, 6, -13}) {
		t.Errorf("expected (27,6,-13), got %v", got)
	}
	if got := (Vector3{3, 4, 0}).Length(); got != 5 {
		t.Errorf("expected length 5, got %f", got)
	}
}

func TestNormalized(t *testing.T) {
	v := Vector3{0, 3, -4}.Normalized()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("expected unit length, got %f", v.Length())
	}
	zero := Vector3{}
	if got := zero.Normalized(); got != zero {
		t.Errorf("expected zero vector unchanged, got %v", got)
	}
}

func TestRotateHeading_ZeroBeta(t *testing.T) {
	h := Vector3{0, 0, -1}
	if got := RotateHeading(h, 1.234, 0); got != h {
		t.Errorf("expected unchanged heading, got %v", got)
	}
}

func TestRotateHeading_BendAngle(t *testing.T) {
	s := 1 / math.Sqrt(3)
	headings := []Vector3{
		{0, 0, -1},
		{0, 0, 1},
		{1, 0, 0},
		{s, s, -s},
	}
	betas := []float64{0.1, 0.5, 1.2, math.Pi / 2}
	alphas := []float64{0, 1, 2.5, 6}

	for _, h := range headings {
		for _, beta := range betas {
			for _, alpha := range alphas {
				got := RotateHeading(h, alpha, beta)
				if math.Abs(got.Length()-1) > 1e-9 {
					t.Fatalf("heading %v alpha %g beta %g: not unit length (%f)",
						h, alpha, beta, got.Length())
				}
				angle := math.Acos(math.Max(-1, math.Min(1, got.Dot(h))))
				if math.Abs(angle-beta) > 1e-9 {
					t.Fatalf("heading %v alpha %g beta %g: bent by %g",
						h, alpha, beta, angle)
				}
			}
		}
	}
}

func TestOrthogonalTo(t *testing.T) {
	for _, h := range []Vector3{
		{0, 0, -1},
		{1, 0, 0},
		{0, 1, 0},
		{0.6, 0, -0.8},
	} {
		u := orthogonalTo(h)
		if math.Abs(u.Length()-1) > 1e-12 {
			t.Errorf("%v: expected unit vector, got length %f", h, u.Length())
		}
		if math.Abs(u.Dot(h)) > 1e-12 {
			t.Errorf("%v: expected perpendicular, dot %g", h, u.Dot(h))
		}
	}
}
