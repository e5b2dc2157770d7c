package rootbox

// ScalarField looks up an external spatial signal, e.g. soil moisture.
// Fields are read-only from the engine's perspective and must be safe to
// query repeatedly. A nil field means "no signal"; hydrotropism then
// degrades to gravitropism.
type ScalarField interface {
	Value(p Vector3) float64
}

// ConstantField returns the same value everywhere.
type ConstantField float64

func (c ConstantField) Value(Vector3) float64 { return float64(c) }

// LinearField increases linearly along Dir away from Origin. Handy as a
// moisture gradient for hydrotropism.
type LinearField struct {
	Origin Vector3
	Dir    Vector3
	Slope  float64
	Offset float64
}

func (f LinearField) Value(p Vector3) float64 {
	return f.Offset + f.Slope*p.Sub(f.Origin).Dot(f.Dir)
}

// ProportionalElongation scales elongation uniformly. Assign it to the
// ScaleElongation of the root types it should throttle; SimulateScaled
// adjusts its scale to cap the total length increment per step.
type ProportionalElongation struct {
	scale float64
}

func NewProportionalElongation() *ProportionalElongation {
	return &ProportionalElongation{scale: 1}
}

func (p *ProportionalElongation) SetScale(s float64)    { p.scale = s }
func (p *ProportionalElongation) Scale() float64        { return p.scale }
func (p *ProportionalElongation) Value(Vector3) float64 { return p.scale }
