package export

import (
	"strconv"
	"strings"
	"testing"

	"github.com/timokoch/CRootBox/internal/rootbox"
	"github.com/timokoch/CRootBox/internal/sdf"
)

func grownSystem(t *testing.T) *rootbox.RootSystem {
	t.Helper()
	rs := rootbox.New()
	tp := rootbox.DefaultTypeParameter(1)
	tp.LB, tp.LN, tp.Nob = 1, 1, 4
	tp.Successors = []int{2}
	tp.SuccessorP = []float64{1}
	if err := rs.SetTypeParameter(tp); err != nil {
		t.Fatal(err)
	}
	lat := rootbox.DefaultTypeParameter(2)
	lat.LA = 3
	if err := rs.SetTypeParameter(lat); err != nil {
		t.Fatal(err)
	}
	rs.SetSeed(7)
	if err := rs.Initialize(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := rs.Simulate(10); err != nil {
		t.Fatal(err)
	}
	return rs
}

func TestWriteVTP(t *testing.T) {
	rs := grownSystem(t)
	var sb strings.Builder
	if err := WriteVTP(&sb, rs); err != nil {
		t.Fatalf("write vtp: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"<VTKFile type=\"PolyData\"",
		"node_creation_time",
		"connectivity",
		"offsets",
		"</VTKFile>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("vtp output missing %q", want)
		}
	}
	if !strings.Contains(out, `NumberOfLines="`+strconv.Itoa(len(rs.Polylines()))+`"`) {
		t.Errorf("expected %d lines in vtp header", len(rs.Polylines()))
	}
}

func TestWriteRSML(t *testing.T) {
	rs := grownSystem(t)
	var sb strings.Builder
	if err := WriteRSML(&sb, rs); err != nil {
		t.Fatalf("write rsml: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "<rsml>") || !strings.Contains(out, "</rsml>") {
		t.Fatal("missing rsml envelope")
	}
	if got, want := strings.Count(out, "<root ID="), len(rs.Roots()); got != want {
		t.Errorf("expected %d root elements, got %d", want, got)
	}
	if strings.Count(out, "<root ") != strings.Count(out, "</root>") {
		t.Error("unbalanced root elements")
	}
}

func TestSVG(t *testing.T) {
	rs := grownSystem(t)
	out := SVG(rs, 400, 600)
	if !strings.HasPrefix(out, "<?xml") {
		t.Error("svg should start with an xml declaration")
	}
	if got, want := strings.Count(out, "<polyline"), len(rs.Polylines()); got != want {
		t.Errorf("expected %d polylines, got %d", want, got)
	}
}

func TestSVG_Empty(t *testing.T) {
	rs := rootbox.New()
	if out := SVG(rs, 400, 600); out != "" {
		t.Error("expected empty output for an empty system")
	}
}

func TestWriteGeometryScript(t *testing.T) {
	g := sdf.Intersection{
		sdf.Container{Radius: 5, Depth: 40},
		sdf.Translate{
			Geometry: sdf.Box{Min: rootbox.Vector3{X: -10, Y: -10, Z: -20}, Max: rootbox.Vector3{X: 10, Y: 10, Z: 0}},
			Offset:   rootbox.Vector3{Z: -5},
		},
	}
	var sb strings.Builder
	if err := WriteGeometryScript(&sb, g); err != nil {
		t.Fatalf("write geometry: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "Cylinder(") {
		t.Error("expected a cylinder for the container")
	}
	if !strings.Contains(out, "Box(") {
		t.Error("expected a box")
	}
}
