package rootbox

// SignedDistance is the confining geometry oracle. Distance reports how far
// a point lies from the boundary; negative means inside. A nil geometry
// means unconfined.
type SignedDistance interface {
	Distance(p Vector3) float64
}

// Unconfined reports every point as inside. It is the default geometry.
type Unconfined struct{}

func (Unconfined) Distance(Vector3) float64 { return -1e100 }

func inside(g SignedDistance, p Vector3) bool {
	if g == nil {
		return true
	}
	return g.Distance(p) <= 0
}

// distanceGradient estimates the outward normal of the boundary by central
// differences. Used for the boundary-clamped fallback heading.
func distanceGradient(g SignedDistance, p Vector3) Vector3 {
	const h = 1e-4
	dx := g.Distance(Vector3{p.X + h, p.Y, p.Z}) - g.Distance(Vector3{p.X - h, p.Y, p.Z})
	dy := g.Distance(Vector3{p.X, p.Y + h, p.Z}) - g.Distance(Vector3{p.X, p.Y - h, p.Z})
	dz := g.Distance(Vector3{p.X, p.Y, p.Z + h}) - g.Distance(Vector3{p.X, p.Y, p.Z - h})
	return Vector3{dx, dy, dz}
}
