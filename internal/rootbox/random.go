package rootbox

import (
	"fmt"
	"math/rand/v2"
)

// RandomStream is the single source of randomness for a root system. Every
// stochastic decision (parameter realization, tropism trials, insertion
// angles) draws from it, so a fixed seed and a fixed traversal order fully
// determine a simulation.
type RandomStream struct {
	src *rand.PCG
	rng *rand.Rand
}

func NewRandomStream(seed uint64) *RandomStream {
	src := rand.NewPCG(seed, 0)
	return &RandomStream{src: src, rng: rand.New(src)}
}

// SetSeed resets the stream; subsequent draws are a pure function of seed
// and call order.
func (s *RandomStream) SetSeed(seed uint64) {
	s.src.Seed(seed, 0)
}

// Uniform01 returns a uniformly distributed number in [0,1).
func (s *RandomStream) Uniform01() float64 {
	return s.rng.Float64()
}

// StandardNormal returns a normally distributed number with mean 0 and
// standard deviation 1.
func (s *RandomStream) StandardNormal() float64 {
	return s.rng.NormFloat64()
}

// State captures the full generator state so draws after RestoreState are
// bit-identical to draws after the capture.
func (s *RandomStream) State() []byte {
	b, err := s.src.MarshalBinary()
	if err != nil {
		// PCG marshalling cannot fail; keep the contract loud if it ever does.
		panic(fmt.Sprintf("rootbox: capture generator state: %v", err))
	}
	return b
}

func (s *RandomStream) RestoreState(b []byte) error {
	if err := s.src.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("restore generator state: %w", err)
	}
	return nil
}
