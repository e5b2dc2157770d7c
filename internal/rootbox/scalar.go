package rootbox

import (
	"fmt"
	"math"
)

// ScalarKind selects a per-root scalar for RootSystem.Scalar.
type ScalarKind int

const (
	ScalarType ScalarKind = iota
	ScalarRadius
	ScalarOrder
	ScalarTime
	ScalarLength
	ScalarSurface
	ScalarVolume
	ScalarOne
	ScalarParentType
	ScalarLB
	ScalarLA
	ScalarNob
	ScalarGrowthRate
	ScalarTheta
	ScalarRLT
	ScalarMeanLN
	ScalarSdLN
)

var scalarKindNames = [...]string{
	"type",
	"radius",
	"order",
	"emergence_time",
	"length",
	"surface",
	"volume",
	"one",
	"parent_type",
	"basal_zone",
	"apical_zone",
	"number_of_laterals",
	"growth_rate",
	"insertion_angle",
	"root_life_time",
	"mean_lateral_spacing",
	"sd_lateral_spacing",
}

func (k ScalarKind) String() string {
	if k < 0 || int(k) >= len(scalarKindNames) {
		return fmt.Sprintf("scalar(%d)", int(k))
	}
	return scalarKindNames[k]
}

// ParseScalarKind resolves a scalar name as used on the command line.
func ParseScalarKind(name string) (ScalarKind, error) {
	for i, n := range scalarKindNames {
		if n == name {
			return ScalarKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scalar kind %q", name)
}

// Scalar copies one per-root scalar for every enumerable root, in the same
// order as Roots.
func (rs *RootSystem) Scalar(kind ScalarKind) []float64 {
	roots := rs.Roots()
	out := make([]float64, len(roots))
	for i, r := range roots {
		out[i] = rootScalar(r, kind)
	}
	return out
}

func rootScalar(r *Root, kind ScalarKind) float64 {
	p := &r.Param
	switch kind {
	case ScalarType:
		return float64(p.Type)
	case ScalarRadius:
		return p.A
	case ScalarOrder:
		return float64(r.Order())
	case ScalarTime:
		return r.Etime
	case ScalarLength:
		return r.Length
	case ScalarSurface:
		return 2 * math.Pi * p.A * r.Length
	case ScalarVolume:
		return math.Pi * p.A * p.A * r.Length
	case ScalarOne:
		return 1
	case ScalarParentType:
		if r.Parent < 0 {
			return 0
		}
		return float64(r.sys.arena[r.Parent].Param.Type)
	case ScalarLB:
		return p.LB
	case ScalarLA:
		return p.LA
	case ScalarNob:
		return float64(p.Nob)
	case ScalarGrowthRate:
		return p.R
	case ScalarTheta:
		return p.Theta
	case ScalarRLT:
		return p.RLT
	case ScalarMeanLN:
		return meanOf(p.LN)
	case ScalarSdLN:
		return sdOf(p.LN)
	}
	return math.NaN()
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func sdOf(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := meanOf(xs)
	sum := 0.0
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}
