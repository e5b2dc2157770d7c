package rootbox

import "math"

// Growth function selectors.
const (
	GrowthNegExp = 1
	GrowthLinear = 2
)

// GrowthFunction maps root age to target length. Implementations are pure
// functions of age and the realized parameter set; Age is the inverse of
// Length and is used to schedule lateral emergence.
type GrowthFunction interface {
	Length(age float64, p *RootParameter) float64
	Age(length float64, p *RootParameter) float64
	Clone() GrowthFunction
}

// NegExpGrowth elongates with diminishing returns toward the maximal length
// k: length(t) = k*(1-exp(-r*t/k)).
type NegExpGrowth struct{}

func (NegExpGrowth) Length(age float64, p *RootParameter) float64 {
	k := p.MaxLength()
	if k <= 0 || p.R <= 0 || age <= 0 {
		return 0
	}
	return k * (1 - math.Exp(-age*p.R/k))
}

func (NegExpGrowth) Age(length float64, p *RootParameter) float64 {
	k := p.MaxLength()
	if k <= 0 || p.R <= 0 || length <= 0 {
		return 0
	}
	if length >= k {
		return math.Inf(1)
	}
	return -k / p.R * math.Log(1-length/k)
}

func (g NegExpGrowth) Clone() GrowthFunction { return g }

// LinearGrowth elongates at constant rate r until the maximal length.
type LinearGrowth struct{}

func (LinearGrowth) Length(age float64, p *RootParameter) float64 {
	if p.R <= 0 || age <= 0 {
		return 0
	}
	return math.Min(p.R*age, p.MaxLength())
}

func (LinearGrowth) Age(length float64, p *RootParameter) float64 {
	if p.R <= 0 || length <= 0 {
		return 0
	}
	return length / p.R
}

func (g LinearGrowth) Clone() GrowthFunction { return g }
