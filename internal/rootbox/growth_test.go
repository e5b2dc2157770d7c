package rootbox

import (
	"math"
	"testing"
)

func TestNegExpGrowth(t *testing.T) {
	p := &RootParameter{LA: 10, R: 2}
	g := NegExpGrowth{}

	if got := g.Length(0, p); got != 0 {
		t.Errorf("expected length 0 at age 0, got %f", got)
	}
	prev := 0.0
	for age := 1.0; age <= 50; age++ {
		l := g.Length(age, p)
		if l <= prev-1e-12 {
			t.Fatalf("length not monotonic at age %g", age)
		}
		if l >= p.MaxLength() {
			t.Fatalf("length %f exceeds maximal length %f", l, p.MaxLength())
		}
		prev = l
	}
}

func TestNegExpGrowth_AgeInverse(t *testing.T) {
	p := &RootParameter{LB: 2, LA: 8, LN: []float64{1, 1}, R: 1.5}
	g := NegExpGrowth{}
	for _, age := range []float64{0.5, 1, 3, 10} {
		l := g.Length(age, p)
		if got := g.Age(l, p); math.Abs(got-age) > 1e-9 {
			t.Errorf("age %g: inverse gave %g", age, got)
		}
	}
	if got := g.Age(p.MaxLength(), p); !math.IsInf(got, 1) {
		t.Errorf("expected +Inf at maximal length, got %f", got)
	}
}

func TestLinearGrowth(t *testing.T) {
	p := &RootParameter{LA: 10, R: 1}
	g := LinearGrowth{}

	tests := []struct {
		age  float64
		want float64
	}{
		{0, 0},
		{2.5, 2.5},
		{10, 10},
		{25, 10}, // clamped at maximal length
	}
	for _, tt := range tests {
		if got := g.Length(tt.age, p); got != tt.want {
			t.Errorf("age %g: expected %g, got %g", tt.age, tt.want, got)
		}
	}
	if got := g.Age(5, p); got != 5 {
		t.Errorf("expected age 5 at length 5, got %f", got)
	}
}

func TestGrowth_Guards(t *testing.T) {
	dead := &RootParameter{LA: 10, R: 0}
	if got := (NegExpGrowth{}).Length(5, dead); got != 0 {
		t.Errorf("expected 0 for zero rate, got %f", got)
	}
	if got := (LinearGrowth{}).Length(5, dead); got != 0 {
		t.Errorf("expected 0 for zero rate, got %f", got)
	}
	if got := (NegExpGrowth{}).Age(-1, &RootParameter{LA: 10, R: 1}); got != 0 {
		t.Errorf("expected 0 for negative length, got %f", got)
	}
}
