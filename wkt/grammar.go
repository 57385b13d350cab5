// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package wkt

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var wktLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `[a-zA-Z]+`},
	{Name: "Number", Pattern: `[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// buildGrammar compiles the WKT grammar. This is the expensive part of
// parsing and the result is reused for every string a Parser handles.
func buildGrammar() (*participle.Parser[geometryText], error) {
	return participle.Build[geometryText](
		participle.Lexer(wktLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Keyword"),
	)
}

type geometryText struct {
	Point              *taggedPoint           `parser:"  \"POINT\" @@"`
	LineString         *taggedLineString      `parser:"| \"LINESTRING\" @@"`
	Polygon            *taggedPolygon         `parser:"| \"POLYGON\" @@"`
	MultiPoint         *taggedMultiPoint      `parser:"| \"MULTIPOINT\" @@"`
	MultiLineString    *taggedMultiLineString `parser:"| \"MULTILINESTRING\" @@"`
	MultiPolygon       *taggedMultiPolygon    `parser:"| \"MULTIPOLYGON\" @@"`
	GeometryCollection *taggedCollection      `parser:"| \"GEOMETRYCOLLECTION\" @@"`
}

type taggedPoint struct {
	Dim  string     `parser:"@(\"ZM\" | \"Z\" | \"M\")?"`
	Text *pointText `parser:"@@"`
}

type taggedLineString struct {
	Dim  string          `parser:"@(\"ZM\" | \"Z\" | \"M\")?"`
	Text *lineStringText `parser:"@@"`
}

type taggedPolygon struct {
	Dim  string       `parser:"@(\"ZM\" | \"Z\" | \"M\")?"`
	Text *polygonText `parser:"@@"`
}

type taggedMultiPoint struct {
	Dim  string          `parser:"@(\"ZM\" | \"Z\" | \"M\")?"`
	Text *multiPointText `parser:"@@"`
}

type taggedMultiLineString struct {
	Dim  string               `parser:"@(\"ZM\" | \"Z\" | \"M\")?"`
	Text *multiLineStringText `parser:"@@"`
}

type taggedMultiPolygon struct {
	Dim  string            `parser:"@(\"ZM\" | \"Z\" | \"M\")?"`
	Text *multiPolygonText `parser:"@@"`
}

type taggedCollection struct {
	Dim  string          `parser:"@(\"ZM\" | \"Z\" | \"M\")?"`
	Text *collectionText `parser:"@@"`
}

type coord struct {
	Ordinates []float64 `parser:"@Number @Number @Number? @Number?"`
}

type pointText struct {
	Empty bool   `parser:"  @\"EMPTY\""`
	Coord *coord `parser:"| \"(\" @@ \")\""`
}

type lineStringText struct {
	Empty  bool     `parser:"  @\"EMPTY\""`
	Coords []*coord `parser:"| \"(\" @@ ( \",\" @@ )* \")\""`
}

type polygonText struct {
	Empty bool              `parser:"  @\"EMPTY\""`
	Rings []*lineStringText `parser:"| \"(\" @@ ( \",\" @@ )* \")\""`
}

// multiPointMember accepts both "MULTIPOINT (1 2, 3 4)" and
// "MULTIPOINT ((1 2), (3 4))".
type multiPointMember struct {
	Wrapped *pointText `parser:"  @@"`
	Bare    *coord     `parser:"| @@"`
}

type multiPointText struct {
	Empty   bool                `parser:"  @\"EMPTY\""`
	Members []*multiPointMember `parser:"| \"(\" @@ ( \",\" @@ )* \")\""`
}

type multiLineStringText struct {
	Empty bool              `parser:"  @\"EMPTY\""`
	Lines []*lineStringText `parser:"| \"(\" @@ ( \",\" @@ )* \")\""`
}

type multiPolygonText struct {
	Empty    bool           `parser:"  @\"EMPTY\""`
	Polygons []*polygonText `parser:"| \"(\" @@ ( \",\" @@ )* \")\""`
}

type collectionText struct {
	Empty      bool            `parser:"  @\"EMPTY\""`
	Geometries []*geometryText `parser:"| \"(\" @@ ( \",\" @@ )* \")\""`
}
