package export

import (
	"fmt"
	"io"

	"github.com/timokoch/CRootBox/internal/rootbox"
	"github.com/timokoch/CRootBox/internal/sdf"
)

// WriteGeometryScript writes a ParaView python snippet that draws the
// confining geometry next to an exported root system. Composite and
// translated geometries recurse; unknown geometries produce a comment so
// the script still runs.
func WriteGeometryScript(w io.Writer, g rootbox.SignedDistance) error {
	if _, err := fmt.Fprintf(w, "# confining geometry, paste into the ParaView python shell\n"+
		"from paraview.simple import *\n"); err != nil {
		return err
	}
	writeGeometry(w, g, rootbox.Vector3{})
	_, err := fmt.Fprintf(w, "Render()\n")
	return err
}

func writeGeometry(w io.Writer, g rootbox.SignedDistance, off rootbox.Vector3) {
	switch v := g.(type) {
	case sdf.Box:
		fmt.Fprintf(w, "obj = Box(XLength=%g, YLength=%g, ZLength=%g, Center=[%g, %g, %g])\n",
			v.Max.X-v.Min.X, v.Max.Y-v.Min.Y, v.Max.Z-v.Min.Z,
			off.X+(v.Min.X+v.Max.X)/2, off.Y+(v.Min.Y+v.Max.Y)/2, off.Z+(v.Min.Z+v.Max.Z)/2)
		showWireframe(w)
	case sdf.Container:
		fmt.Fprintf(w, "obj = Cylinder(Radius=%g, Height=%g, Center=[%g, %g, %g])\n",
			v.Radius, v.Depth, off.X, off.Y, off.Z-v.Depth/2)
		fmt.Fprintf(w, "obj.Rotation = [90, 0, 0]\n")
		showWireframe(w)
	case sdf.Translate:
		writeGeometry(w, v.Geometry, off.Add(v.Offset))
	case sdf.Intersection:
		for _, m := range v {
			writeGeometry(w, m, off)
		}
	case sdf.Union:
		for _, m := range v {
			writeGeometry(w, m, off)
		}
	case nil, rootbox.Unconfined:
		fmt.Fprintf(w, "# unconfined\n")
	default:
		fmt.Fprintf(w, "# geometry %T has no ParaView representation\n", g)
	}
}

func showWireframe(w io.Writer) {
	fmt.Fprintf(w, "disp = Show(obj)\ndisp.Representation = 'Wireframe'\ndisp.Opacity = 0.3\n")
}
