package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/timokoch/CRootBox/internal/rootbox"
)

// WriteRSML writes the root system in the Root System Markup Language:
// one <root> element per axis, laterals nested inside their parent, with
// the polyline geometry and node creation times as a polyline function.
func WriteRSML(w io.Writer, rs *rootbox.RootSystem) error {
	if _, err := fmt.Fprintf(w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
		"<rsml>\n"+
		"<metadata>\n"+
		"<version>1</version>\n"+
		"<unit>cm</unit>\n"+
		"<software>crootbox</software>\n"+
		"</metadata>\n"+
		"<scene>\n"+
		"<plant>\n"); err != nil {
		return err
	}
	for _, r := range rs.BaseRoots() {
		if !r.HasSegments() {
			continue
		}
		writeRSMLRoot(w, rs, r, 1)
	}
	_, err := fmt.Fprintf(w, "</plant>\n</scene>\n</rsml>\n")
	return err
}

func writeRSMLRoot(w io.Writer, rs *rootbox.RootSystem, r *rootbox.Root, depth int) {
	pad := strings.Repeat("\t", depth)
	fmt.Fprintf(w, "%s<root ID=\"%d\">\n", pad, r.ID)
	fmt.Fprintf(w, "%s\t<properties>\n", pad)
	fmt.Fprintf(w, "%s\t\t<property name=\"type\" value=\"%d\"/>\n", pad, r.Param.Type)
	fmt.Fprintf(w, "%s\t\t<property name=\"radius\" value=\"%g\"/>\n", pad, r.Param.A)
	fmt.Fprintf(w, "%s\t\t<property name=\"emergence_time\" value=\"%g\"/>\n", pad, r.Etime)
	fmt.Fprintf(w, "%s\t</properties>\n", pad)

	fmt.Fprintf(w, "%s\t<geometry>\n%s\t\t<polyline>\n", pad, pad)
	for _, n := range r.Nodes {
		fmt.Fprintf(w, "%s\t\t\t<point x=\"%g\" y=\"%g\" z=\"%g\"/>\n", pad, n.Pos.X, n.Pos.Y, n.Pos.Z)
	}
	fmt.Fprintf(w, "%s\t\t</polyline>\n%s\t</geometry>\n", pad, pad)

	fmt.Fprintf(w, "%s\t<functions>\n%s\t\t<function name=\"node_creation_time\" domain=\"polyline\">\n", pad, pad)
	for _, n := range r.Nodes {
		fmt.Fprintf(w, "%s\t\t\t<sample>%g</sample>\n", pad, n.Time)
	}
	fmt.Fprintf(w, "%s\t\t</function>\n%s\t</functions>\n", pad, pad)

	for _, id := range r.Children {
		child, ok := rs.RootByID(id)
		if !ok || !child.HasSegments() {
			continue
		}
		writeRSMLRoot(w, rs, child, depth+1)
	}
	fmt.Fprintf(w, "%s</root>\n", pad)
}
