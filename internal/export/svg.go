// Package export writes root systems to interchange formats: VTK polydata
// for ParaView, RSML for root phenotyping tools, and SVG for quick looks.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/timokoch/CRootBox/internal/rootbox"
)

// SVG renders the root system projected onto the x/z plane. Stroke width
// follows the root radius, stroke color the root order.
func SVG(rs *rootbox.RootSystem, width, height int) string {
	polylines := rs.Polylines()
	if len(polylines) == 0 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, line := range polylines {
		for _, p := range line {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minZ = math.Min(minZ, p.Z)
			maxZ = math.Max(maxZ, p.Z)
		}
	}
	spanX := maxX - minX
	spanZ := maxZ - minZ
	if spanX < 1e-9 {
		spanX = 1
	}
	if spanZ < 1e-9 {
		spanZ = 1
	}
	margin := 20.0
	scale := math.Min((float64(width)-2*margin)/spanX, (float64(height)-2*margin)/spanZ)

	toX := func(x float64) float64 { return margin + (x-minX)*scale }
	toY := func(z float64) float64 { return margin + (maxZ-z)*scale }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	roots := rs.Roots()
	for i, line := range polylines {
		r := roots[i]
		sw := math.Max(r.Param.A*scale*2, 0.5)
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="%.2f" points="`,
			orderColor(r.Order()), sw))
		for j, p := range line {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.2f,%.2f", toX(p.X), toY(p.Z)))
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func orderColor(order int) string {
	colors := []string{"#8b4513", "#d2691e", "#daa520", "#9acd32", "#20b2aa"}
	if order < 0 {
		order = 0
	}
	if order >= len(colors) {
		order = len(colors) - 1
	}
	return colors[order]
}
