// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package wkt

// GeometryType identifies the kind of a Path.
type GeometryType uint8

// Path geometry types.
const (
	Unknown GeometryType = iota
	Point
	LineString
	Polygon
)

func (t GeometryType) String() string {
	switch t {
	case Point:
		return "Point"
	case LineString:
		return "LineString"
	case Polygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// Command tells a renderer what to do with a vertex.
type Command uint8

// Vertex commands.
const (
	MoveTo Command = iota + 1
	LineTo
	Close
)

// Vertex is a single 2D position within a Path.
type Vertex struct {
	X, Y float64
	Cmd  Command
}

// Path is a sequence of vertices of a single geometry type. Multi-part
// geometries become several paths; a polygon is one path holding one closed
// sub-path per ring.
type Path struct {
	Type     GeometryType
	Vertices []Vertex
}

// MoveTo starts a new sub-path at x, y.
func (p *Path) MoveTo(x, y float64) {
	p.Vertices = append(p.Vertices, Vertex{X: x, Y: y, Cmd: MoveTo})
}

// LineTo extends the current sub-path to x, y.
func (p *Path) LineTo(x, y float64) {
	p.Vertices = append(p.Vertices, Vertex{X: x, Y: y, Cmd: LineTo})
}

// ClosePath closes the current sub-path.
func (p *Path) ClosePath() {
	p.Vertices = append(p.Vertices, Vertex{Cmd: Close})
}

// Paths is the output container filled by the parser.
type Paths []*Path

func (ps *Paths) push(t GeometryType) *Path {
	p := &Path{Type: t}
	*ps = append(*ps, p)
	return p
}
