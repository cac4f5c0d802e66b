// Package geometry provides the polygon primitives used to describe where
// recognized content sits on a page.
//
// OCR engines report word positions as bounding polygons, usually a clockwise
// quadrilateral. This package offers two typed constructors for polygons
// depending on the shape of the source data (point pairs or a flat coordinate
// list), flattening back to the wire format, and computation of the minimal
// axis-aligned rectangle enclosing a set of polygons. Malformed input degrades
// to an empty polygon with a warning rather than an error, so one bad word
// never aborts processing of a whole document.
package geometry

import (
	"log/slog"
	"math"
)

// Point is a single 2D coordinate on a page.
type Point struct {
	X float64
	Y float64
}

// Polygon is an ordered sequence of points outlining a region,
// typically four corners in clockwise order starting top-left.
type Polygon []Point

// FromPoints builds a polygon from an ordered point sequence.
func FromPoints(points []Point) Polygon {
	if len(points) == 0 {
		return nil
	}
	poly := make(Polygon, len(points))
	copy(poly, points)
	return poly
}

// FromFlatCoords builds a polygon from a flat [x1, y1, x2, y2, ...] sequence.
// An odd-length sequence is malformed and yields an empty polygon.
func FromFlatCoords(coords []float64) Polygon {
	if len(coords) == 0 {
		return nil
	}
	if len(coords)%2 != 0 {
		slog.Warn("discarding malformed flat coordinate sequence", "len", len(coords))
		return nil
	}
	poly := make(Polygon, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		poly = append(poly, Point{X: coords[i], Y: coords[i+1]})
	}
	return poly
}

// Flatten converts the polygon to a flat [x1, y1, x2, y2, ...] sequence.
// An empty polygon flattens to an empty sequence.
func (p Polygon) Flatten() []float64 {
	if len(p) == 0 {
		return nil
	}
	flat := make([]float64, 0, len(p)*2)
	for _, pt := range p {
		flat = append(flat, pt.X, pt.Y)
	}
	return flat
}

// BoundingBox computes the minimal axis-aligned rectangle enclosing all
// points of all given polygons. The rectangle is returned as four corners in
// clockwise order starting top-left. The second return value is false when
// the input contains no valid points at all; individual empty polygons are
// skipped with a warning.
func BoundingBox(polygons ...Polygon) (Polygon, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false

	for i, poly := range polygons {
		if len(poly) == 0 {
			slog.Warn("skipping empty polygon in bounding box computation", "index", i)
			continue
		}
		for _, pt := range poly {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
		found = true
	}

	// Guard against propagating infinities from an all-empty input set.
	if !found {
		return nil, false
	}

	return Polygon{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}, true
}
