// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package wkt implements a grammar-based Well-Known Text parser that fills a
// flat container of render paths.
package wkt

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Parser holds a compiled WKT grammar. Compiling the grammar costs far more
// than parsing a typical geometry, so a Parser should be reused across many
// strings. A Parser must not be used from more than one goroutine at a time.
type Parser struct {
	grammar *participle.Parser[geometryText]
}

// NewParser compiles the grammar and returns a ready Parser.
func NewParser() (*Parser, error) {
	g, err := buildGrammar()
	if err != nil {
		return nil, fmt.Errorf("wkt: build grammar: %w", err)
	}
	return &Parser{grammar: g}, nil
}

// Parse parses text and appends the resulting paths to out. Nothing is
// appended when an error is returned.
func (p *Parser) Parse(text string, out *Paths) error {
	ast, err := p.grammar.ParseString("", text)
	if err != nil {
		return fmt.Errorf("wkt: %w", err)
	}
	var paths Paths
	if err := ast.build(&paths); err != nil {
		return fmt.Errorf("wkt: %w", err)
	}
	*out = append(*out, paths...)
	return nil
}

// Parse compiles a fresh grammar and parses text with it.
func Parse(text string, out *Paths) error {
	p, err := NewParser()
	if err != nil {
		return err
	}
	return p.Parse(text, out)
}

func ordinates(dim string) int {
	switch strings.ToUpper(dim) {
	case "Z", "M":
		return 3
	case "ZM":
		return 4
	default:
		return 0
	}
}

func (c *coord) check(dim string) error {
	if n := ordinates(dim); n != 0 && len(c.Ordinates) != n {
		return fmt.Errorf("expected %d ordinates for %s geometry, got %d", n, strings.ToUpper(dim), len(c.Ordinates))
	}
	return nil
}

func (c *coord) xy() (float64, float64) {
	return c.Ordinates[0], c.Ordinates[1]
}

func (g *geometryText) build(out *Paths) error {
	switch {
	case g.Point != nil:
		return g.Point.Text.build(g.Point.Dim, out)
	case g.LineString != nil:
		return g.LineString.Text.build(g.LineString.Dim, out)
	case g.Polygon != nil:
		return g.Polygon.Text.build(g.Polygon.Dim, out)
	case g.MultiPoint != nil:
		return g.MultiPoint.Text.build(g.MultiPoint.Dim, out)
	case g.MultiLineString != nil:
		dim := g.MultiLineString.Dim
		for _, l := range g.MultiLineString.Text.Lines {
			if err := l.build(dim, out); err != nil {
				return err
			}
		}
		return nil
	case g.MultiPolygon != nil:
		dim := g.MultiPolygon.Dim
		for _, p := range g.MultiPolygon.Text.Polygons {
			if err := p.build(dim, out); err != nil {
				return err
			}
		}
		return nil
	case g.GeometryCollection != nil:
		for _, child := range g.GeometryCollection.Text.Geometries {
			if err := child.build(out); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("empty geometry")
}

func (t *pointText) build(dim string, out *Paths) error {
	if t.Empty {
		return nil
	}
	if err := t.Coord.check(dim); err != nil {
		return err
	}
	out.push(Point).MoveTo(t.Coord.xy())
	return nil
}

func (t *lineStringText) build(dim string, out *Paths) error {
	if t.Empty {
		return nil
	}
	if len(t.Coords) < 2 {
		return fmt.Errorf("linestring needs at least 2 points, got %d", len(t.Coords))
	}
	p := out.push(LineString)
	for i, c := range t.Coords {
		if err := c.check(dim); err != nil {
			return err
		}
		if i == 0 {
			p.MoveTo(c.xy())
		} else {
			p.LineTo(c.xy())
		}
	}
	return nil
}

func (t *polygonText) build(dim string, out *Paths) error {
	if t.Empty {
		return nil
	}
	p := out.push(Polygon)
	for _, ring := range t.Rings {
		if ring.Empty {
			continue
		}
		for i, c := range ring.Coords {
			if err := c.check(dim); err != nil {
				return err
			}
			if i == 0 {
				p.MoveTo(c.xy())
			} else {
				p.LineTo(c.xy())
			}
		}
		p.ClosePath()
	}
	return nil
}

func (t *multiPointText) build(dim string, out *Paths) error {
	if t.Empty {
		return nil
	}
	for _, m := range t.Members {
		if m.Wrapped != nil {
			if err := m.Wrapped.build(dim, out); err != nil {
				return err
			}
			continue
		}
		if err := m.Bare.check(dim); err != nil {
			return err
		}
		out.push(Point).MoveTo(m.Bare.xy())
	}
	return nil
}
