package rootbox

import "testing"

func TestRandomStream_Deterministic(t *testing.T) {
	a := NewRandomStream(42)
	b := NewRandomStream(42)
	for i := 0; i < 100; i++ {
		if a.Uniform01() != b.Uniform01() {
			t.Fatalf("draw %d: streams with equal seeds diverged", i)
		}
	}
}

func TestRandomStream_SetSeed(t *testing.T) {
	s := NewRandomStream(1)
	first := []float64{s.Uniform01(), s.StandardNormal(), s.Uniform01()}
	s.SetSeed(1)
	second := []float64{s.Uniform01(), s.StandardNormal(), s.Uniform01()}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d: expected %g after reseed, got %g", i, first[i], second[i])
		}
	}
}

func TestRandomStream_StateRoundTrip(t *testing.T) {
	s := NewRandomStream(7)
	for i := 0; i < 13; i++ {
		s.Uniform01()
	}
	state := s.State()
	want := []float64{s.Uniform01(), s.StandardNormal(), s.Uniform01()}

	if err := s.RestoreState(state); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := []float64{s.Uniform01(), s.StandardNormal(), s.Uniform01()}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw %d after restore: expected %g, got %g", i, want[i], got[i])
		}
	}
}

func TestRandomStream_RestoreBadState(t *testing.T) {
	s := NewRandomStream(0)
	if err := s.RestoreState([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated state")
	}
}

func TestRandomStream_SeedsDiffer(t *testing.T) {
	a := NewRandomStream(1)
	b := NewRandomStream(2)
	same := 0
	for i := 0; i < 10; i++ {
		if a.Uniform01() == b.Uniform01() {
			same++
		}
	}
	if same == 10 {
		t.Error("streams with different seeds produced identical draws")
	}
}
