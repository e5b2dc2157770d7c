package rootbox

import (
	"fmt"
	"math"
)

// TypeParameter configures one root type. Scalar pairs (value, sd) are
// mean and standard deviation of a normal distribution; Realize draws one
// concrete RootParameter per root. Lengths are in cm, times in days,
// angles in radians.
type TypeParameter struct {
	Type int
	Name string

	LB, LBs       float64 // basal zone
	LA, LAs       float64 // apical zone
	LN, LNs       float64 // spacing between laterals
	Nob, Nobs     float64 // maximal number of laterals
	R, Rs         float64 // initial elongation rate
	A, As         float64 // radius
	Theta, Thetas float64 // insertion angle
	RLT, RLTs     float64 // root life time

	Dx float64 // axial resolution: target length of one segment

	TropismKind  int
	TropismN     float64 // number of candidate headings per segment
	TropismSigma float64 // bending strength

	GrowthKind int

	// Successors lists the lateral types this type can spawn, with
	// SuccessorP holding the matching probabilities (summing to <= 1;
	// a shortfall means "no lateral" for that branch point).
	Successors []int
	SuccessorP []float64

	// ScaleElongation optionally throttles elongation by the field value
	// at the tip, e.g. a ProportionalElongation for carbon-limited growth.
	ScaleElongation ScalarField
}

// DefaultTypeParameter mirrors the stock parameter set: a gravitropic,
// negative-exponentially growing type without laterals.
func DefaultTypeParameter(t int) *TypeParameter {
	return &TypeParameter{
		Type:         t,
		Name:         fmt.Sprintf("type%d", t),
		LA:           10,
		R:            1,
		A:            0.1,
		Theta:        1.22, // ~70 degrees
		RLT:          1e9,
		Dx:           0.25,
		TropismKind:  TropismGravi,
		TropismN:     1,
		TropismSigma: 0.2,
		GrowthKind:   GrowthNegExp,
	}
}

func (tp *TypeParameter) Validate() error {
	if tp.Type <= 0 {
		return fmt.Errorf("root type %d: type must be positive", tp.Type)
	}
	if tp.Dx <= 0 {
		return fmt.Errorf("root type %d: axial resolution dx must be positive", tp.Type)
	}
	if len(tp.Successors) != len(tp.SuccessorP) {
		return fmt.Errorf("root type %d: %d successors but %d probabilities",
			tp.Type, len(tp.Successors), len(tp.SuccessorP))
	}
	if tp.TropismN < 0 || tp.TropismSigma < 0 {
		return fmt.Errorf("root type %d: tropism parameters must be non-negative", tp.Type)
	}
	return nil
}

// Realize draws one concrete parameter set. The draw order is part of the
// determinism contract; every distribution is sampled even when its sd is
// zero so the stream consumption does not depend on parameter values.
func (tp *TypeParameter) Realize(rng *RandomStream) RootParameter {
	nob := int(math.Round(math.Max(tp.Nob+tp.Nobs*rng.StandardNormal(), 0)))
	lb := math.Max(tp.LB+tp.LBs*rng.StandardNormal(), 0)
	la := math.Max(tp.LA+tp.LAs*rng.StandardNormal(), 0)
	var ln []float64
	for i := 0; i < nob-1; i++ {
		ln = append(ln, math.Max(tp.LN+tp.LNs*rng.StandardNormal(), 1e-9))
	}
	r := math.Max(tp.R+tp.Rs*rng.StandardNormal(), 0)
	a := math.Max(tp.A+tp.As*rng.StandardNormal(), 0)
	theta := math.Max(tp.Theta+tp.Thetas*rng.StandardNormal(), 0)
	rlt := math.Max(tp.RLT+tp.RLTs*rng.StandardNormal(), 0)
	return RootParameter{
		Type:  tp.Type,
		LB:    lb,
		LA:    la,
		LN:    ln,
		Nob:   nob,
		R:     r,
		A:     a,
		Theta: theta,
		RLT:   rlt,
	}
}

// SuccessorType draws the type of the next lateral. The second return is
// false when the probabilities leave this branch point empty.
func (tp *TypeParameter) SuccessorType(rng *RandomStream) (int, bool) {
	if len(tp.Successors) == 0 {
		return 0, false
	}
	u := rng.Uniform01()
	acc := 0.0
	for i, p := range tp.SuccessorP {
		acc += p
		if u < acc {
			return tp.Successors[i], true
		}
	}
	return 0, false
}

// RootParameter is one realized draw of a TypeParameter, fixed for the
// lifetime of its root. LN spacings are consumed in order as branch points
// are passed.
type RootParameter struct {
	Type  int
	LB    float64
	LA    float64
	LN    []float64
	Nob   int
	R     float64
	A     float64
	Theta float64
	RLT   float64
}

// MaxLength is the length this root asymptotically grows to: basal zone,
// all inter-lateral spacings, and the apical zone.
func (p *RootParameter) MaxLength() float64 {
	k := p.LB + p.LA
	for _, l := range p.LN {
		k += l
	}
	return k
}

func (p *RootParameter) clone() RootParameter {
	c := *p
	c.LN = append([]float64(nil), p.LN...)
	return c
}

// PlantParameter is the plant-level configuration: where the seed sits and
// when basal and shoot-borne roots appear.
type PlantParameter struct {
	SeedPos Vector3

	// Basal root schedule: the i-th basal root emerges at FirstB+i*DelayB.
	FirstB float64
	DelayB float64

	// Shoot-borne roots come in crowns of NC roots, stacked NZ apart along
	// the stem. Crown i appears at FirstSB+i*DelayRC; within a crown the
	// j-th root is delayed by j*DelaySB.
	FirstSB float64
	DelaySB float64
	DelayRC float64
	NC      int
	NZ      float64

	SimTime float64 // total simulated duration for Run
	Dt      float64 // default step size for Run

	BasalType      int
	ShootborneType int
}

// DefaultPlantParameter plants the seed 3 cm deep with the conventional
// type assignment: tap=1, basal=4, shoot-borne=5.
func DefaultPlantParameter() PlantParameter {
	return PlantParameter{
		SeedPos:        Vector3{0, 0, -3},
		DelayB:         1,
		DelaySB:        1,
		DelayRC:        5,
		NC:             3,
		NZ:             1,
		SimTime:        30,
		Dt:             1,
		BasalType:      4,
		ShootborneType: 5,
	}
}
