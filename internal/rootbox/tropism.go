package rootbox

import "math"

// Tropism selectors.
const (
	TropismPlagio = 0
	TropismGravi  = 1
	TropismExo    = 2
	TropismHydro  = 3
)

// Tropism biases the heading of a growing tip. NextHeading returns the
// heading for the next segment of length dx starting at pos with current
// heading h; implementations draw candidate headings from the shared
// random stream and must honor the confining geometry.
type Tropism interface {
	NextHeading(pos, h Vector3, dx float64, r *Root) Vector3
	Clone() Tropism
}

// objective scores a candidate heading; lower is better.
type objective func(pos, candidate Vector3, dx float64, r *Root) float64

// extra candidate rounds after all regular trials were rejected by the
// geometry, before falling back to the boundary-clamped heading.
const geometryRetries = 20

// trialTropism is the shared candidate-trial machinery: draw N perturbed
// headings, discard the ones leaving the confining geometry, keep the best
// scoring one.
type trialTropism struct {
	n        int
	sigma    float64
	rng      *RandomStream
	geometry SignedDistance
	score    objective
}

func newTrialTropism(n, sigma float64, rng *RandomStream, geometry SignedDistance) trialTropism {
	trials := int(math.Ceil(n))
	if trials < 1 {
		trials = 1
	}
	return trialTropism{n: trials, sigma: sigma, rng: rng, geometry: geometry}
}

func (t *trialTropism) NextHeading(pos, h Vector3, dx float64, r *Root) Vector3 {
	best := h
	bestScore := math.Inf(1)
	found := false
	for i := 0; i < t.n; i++ {
		cand := t.perturb(h, dx)
		if !inside(t.geometry, pos.Add(cand.Scale(dx))) {
			continue
		}
		if s := t.score(pos, cand, dx, r); s < bestScore {
			best, bestScore = cand, s
			found = true
		}
	}
	if found {
		return best
	}
	// Every trial left the geometry (or n==0 candidates were all outside):
	// retry a bounded number of times with the full bending range, then
	// give up and head along the boundary.
	for i := 0; i < geometryRetries; i++ {
		alpha := 2 * math.Pi * t.rng.Uniform01()
		beta := math.Pi * t.rng.Uniform01()
		cand := RotateHeading(h, alpha, beta)
		if inside(t.geometry, pos.Add(cand.Scale(dx))) {
			return cand
		}
	}
	return t.clampedHeading(pos, h)
}

func (t *trialTropism) perturb(h Vector3, dx float64) Vector3 {
	alpha := 2 * math.Pi * t.rng.Uniform01()
	beta := t.sigma * math.Abs(t.rng.StandardNormal()) * math.Sqrt(dx)
	return RotateHeading(h, alpha, beta)
}

// clampedHeading projects the heading onto the boundary: remove the
// component along the outward normal so growth slides along the surface.
func (t *trialTropism) clampedHeading(pos, h Vector3) Vector3 {
	if t.geometry == nil {
		return h
	}
	n := distanceGradient(t.geometry, pos).Normalized()
	if n.Length() == 0 {
		return h
	}
	proj := h.Sub(n.Scale(h.Dot(n)))
	if proj.Length() < 1e-9 {
		proj = n.Scale(-1)
	}
	return proj.Normalized()
}

// Gravitropism biases growth toward the downward vector.
type Gravitropism struct {
	trialTropism
}

func NewGravitropism(n, sigma float64, rng *RandomStream, geometry SignedDistance) *Gravitropism {
	g := &Gravitropism{newTrialTropism(n, sigma, rng, geometry)}
	g.score = graviObjective
	return g
}

func graviObjective(_, cand Vector3, _ float64, _ *Root) float64 {
	return cand.Z // most negative z wins
}

func (g *Gravitropism) Clone() Tropism {
	c := *g
	c.score = graviObjective
	return &c
}

// Plagiotropism biases growth toward the horizontal plane.
type Plagiotropism struct {
	trialTropism
}

func NewPlagiotropism(n, sigma float64, rng *RandomStream, geometry SignedDistance) *Plagiotropism {
	p := &Plagiotropism{newTrialTropism(n, sigma, rng, geometry)}
	p.score = plagioObjective
	return p
}

func plagioObjective(_, cand Vector3, _ float64, _ *Root) float64 {
	return math.Abs(cand.Z)
}

func (p *Plagiotropism) Clone() Tropism {
	c := *p
	c.score = plagioObjective
	return &c
}

// Exotropism biases growth toward a fixed externally supplied direction,
// or along the root's own initial heading when no direction is given.
type Exotropism struct {
	trialTropism
	Dir Vector3 // zero means "follow the root's initial heading"
}

func NewExotropism(dir Vector3, n, sigma float64, rng *RandomStream, geometry SignedDistance) *Exotropism {
	e := &Exotropism{trialTropism: newTrialTropism(n, sigma, rng, geometry), Dir: dir.Normalized()}
	e.score = e.exoObjective
	return e
}

func (e *Exotropism) exoObjective(_, cand Vector3, _ float64, r *Root) float64 {
	dir := e.Dir
	if dir.Length() == 0 && r != nil {
		dir = r.InitialHeading
	}
	return 1 - cand.Dot(dir)
}

func (e *Exotropism) Clone() Tropism {
	c := *e
	c.score = c.exoObjective
	return &c
}

// Hydrotropism biases growth toward ascending values of a scalar field.
// Without a field it behaves like gravitropism.
type Hydrotropism struct {
	trialTropism
	field ScalarField
}

func NewHydrotropism(field ScalarField, n, sigma float64, rng *RandomStream, geometry SignedDistance) *Hydrotropism {
	h := &Hydrotropism{trialTropism: newTrialTropism(n, sigma, rng, geometry), field: field}
	h.score = h.hydroObjective
	return h
}

func (h *Hydrotropism) hydroObjective(pos, cand Vector3, dx float64, r *Root) float64 {
	if h.field == nil {
		return graviObjective(pos, cand, dx, r)
	}
	return -h.field.Value(pos.Add(cand.Scale(dx)))
}

func (h *Hydrotropism) Clone() Tropism {
	c := *h
	c.score = c.hydroObjective
	return &c
}
