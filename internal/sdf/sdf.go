// Package sdf provides signed distance functions for confining geometries
// such as plant containers. Negative distances are inside.
package sdf

import (
	"math"

	"github.com/timokoch/CRootBox/internal/rootbox"
)

// Box is an axis-aligned box between Min and Max.
type Box struct {
	Min, Max rootbox.Vector3
}

func (b Box) Distance(p rootbox.Vector3) float64 {
	dx := math.Max(b.Min.X-p.X, p.X-b.Max.X)
	dy := math.Max(b.Min.Y-p.Y, p.Y-b.Max.Y)
	dz := math.Max(b.Min.Z-p.Z, p.Z-b.Max.Z)
	inner := math.Max(dx, math.Max(dy, dz))
	if inner <= 0 {
		return inner
	}
	ox := math.Max(dx, 0)
	oy := math.Max(dy, 0)
	oz := math.Max(dz, 0)
	return math.Sqrt(ox*ox + oy*oy + oz*oz)
}

// Container is a cylindrical plant pot with its open top at z=0, extending
// down to z=-Depth.
type Container struct {
	Radius float64
	Depth  float64
}

func (c Container) Distance(p rootbox.Vector3) float64 {
	radial := math.Sqrt(p.X*p.X+p.Y*p.Y) - c.Radius
	vertical := math.Max(p.Z, -p.Z-c.Depth)
	inner := math.Max(radial, vertical)
	if inner <= 0 {
		return inner
	}
	or := math.Max(radial, 0)
	ov := math.Max(vertical, 0)
	return math.Sqrt(or*or + ov*ov)
}

// Intersection confines to the overlap of all members.
type Intersection []rootbox.SignedDistance

func (s Intersection) Distance(p rootbox.Vector3) float64 {
	d := math.Inf(-1)
	for _, g := range s {
		d = math.Max(d, g.Distance(p))
	}
	return d
}

// Union confines to the combined volume of all members.
type Union []rootbox.SignedDistance

func (s Union) Distance(p rootbox.Vector3) float64 {
	d := math.Inf(1)
	for _, g := range s {
		d = math.Min(d, g.Distance(p))
	}
	return d
}

// Translate shifts a geometry by an offset.
type Translate struct {
	Geometry rootbox.SignedDistance
	Offset   rootbox.Vector3
}

func (t Translate) Distance(p rootbox.Vector3) float64 {
	return t.Geometry.Distance(p.Sub(t.Offset))
}
