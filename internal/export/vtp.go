package export

import (
	"fmt"
	"io"

	"github.com/timokoch/CRootBox/internal/rootbox"
)

// vtpScalars are the per-root cell data arrays written to VTK files.
var vtpScalars = []rootbox.ScalarKind{
	rootbox.ScalarType,
	rootbox.ScalarOrder,
	rootbox.ScalarRadius,
	rootbox.ScalarTime,
	rootbox.ScalarLength,
}

// WriteVTP writes the root system as VTK polydata: one polyline cell per
// root, node creation times as point data and per-root scalars as cell
// data. The output opens directly in ParaView.
func WriteVTP(w io.Writer, rs *rootbox.RootSystem) error {
	polylines := rs.Polylines()
	times := rs.PolylinesNET()

	points := 0
	for _, line := range polylines {
		points += len(line)
	}

	if _, err := fmt.Fprintf(w, "<?xml version=\"1.0\"?>\n"+
		"<VTKFile type=\"PolyData\" version=\"0.1\" byte_order=\"LittleEndian\">\n"+
		"<PolyData>\n"+
		"<Piece NumberOfPoints=\"%d\" NumberOfLines=\"%d\">\n", points, len(polylines)); err != nil {
		return err
	}

	fmt.Fprintf(w, "<PointData Scalars=\"node_creation_time\">\n"+
		"<DataArray type=\"Float64\" Name=\"node_creation_time\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, line := range times {
		for _, t := range line {
			fmt.Fprintf(w, "%g ", t)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "</DataArray>\n</PointData>\n")

	fmt.Fprintf(w, "<CellData>\n")
	for _, kind := range vtpScalars {
		fmt.Fprintf(w, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"1\" format=\"ascii\">\n", kind)
		for _, v := range rs.Scalar(kind) {
			fmt.Fprintf(w, "%g ", v)
		}
		fmt.Fprintf(w, "\n</DataArray>\n")
	}
	fmt.Fprintf(w, "</CellData>\n")

	fmt.Fprintf(w, "<Points>\n"+
		"<DataArray type=\"Float64\" Name=\"points\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, line := range polylines {
		for _, p := range line {
			fmt.Fprintf(w, "%g %g %g ", p.X, p.Y, p.Z)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "</DataArray>\n</Points>\n")

	fmt.Fprintf(w, "<Lines>\n"+
		"<DataArray type=\"Int64\" Name=\"connectivity\" format=\"ascii\">\n")
	idx := 0
	for _, line := range polylines {
		for range line {
			fmt.Fprintf(w, "%d ", idx)
			idx++
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "</DataArray>\n"+
		"<DataArray type=\"Int64\" Name=\"offsets\" format=\"ascii\">\n")
	offset := 0
	for _, line := range polylines {
		offset += len(line)
		fmt.Fprintf(w, "%d ", offset)
	}
	if _, err := fmt.Fprintf(w, "\n</DataArray>\n</Lines>\n"+
		"</Piece>\n</PolyData>\n</VTKFile>\n"); err != nil {
		return err
	}
	return nil
}
