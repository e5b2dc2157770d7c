package rootbox

import (
	"fmt"
	"math"
)

// Vector3 is a point or direction in 3d space. The z axis points up,
// so roots grow toward negative z.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) Add(w Vector3) Vector3   { return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }
func (v Vector3) Sub(w Vector3) Vector3   { return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }
func (v Vector3) Scale(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3) Dot(w Vector3) float64   { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vector3) Normalized() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Segment is a pair of node ids forming one polyline edge.
type Segment struct {
	From, To int
}

// RotateHeading bends the unit heading h by the angle beta away from its
// axis, with azimuth alpha choosing the bending plane.
func RotateHeading(h Vector3, alpha, beta float64) Vector3 {
	if beta == 0 {
		return h
	}
	u := orthogonalTo(h)
	w := h.Cross(u).Normalized()
	sb, cb := math.Sincos(beta)
	sa, ca := math.Sincos(alpha)
	lateral := u.Scale(ca).Add(w.Scale(sa))
	return h.Scale(cb).Add(lateral.Scale(sb)).Normalized()
}

// orthogonalTo returns a unit vector perpendicular to h, picked against the
// axis h is least aligned with so the cross product stays well conditioned.
func orthogonalTo(h Vector3) Vector3 {
	ax := Vector3{1, 0, 0}
	if math.Abs(h.Y) < math.Abs(h.X) {
		ax = Vector3{0, 1, 0}
	}
	if math.Abs(h.Z) < math.Abs(h.X) && math.Abs(h.Z) < math.Abs(h.Y) {
		ax = Vector3{0, 0, 1}
	}
	return h.Cross(ax).Normalized()
}
