// Package model defines the geometry and content primitives shared by the
// extraction, layout, and emission stages: glyph spans, logical lines,
// page content items, classifications, and formatting directives.
//
// All coordinates are in PDF points with a top-left origin: Y grows
// downward, so an item's vertical position is the Y coordinate of its top
// edge. The extractor converts from the PDF's bottom-left origin once;
// everything downstream assumes top-origin.
package model

import "math"

// BBox is an axis-aligned bounding box given by its corners.
// (X0, Y0) is the top-left corner, (X1, Y1) the bottom-right.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// NewBBox builds a normalized bounding box from two corner points.
func NewBBox(x0, y0, x1, y1 float64) BBox {
	return BBox{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// CenterX returns the horizontal center of the box.
func (b BBox) CenterX() float64 {
	return (b.X0 + b.X1) / 2
}

// CenterY returns the vertical center of the box.
func (b BBox) CenterY() float64 {
	return (b.Y0 + b.Y1) / 2
}

// Union returns the smallest box containing both b and other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// IsZero reports whether the box is the zero value.
func (b BBox) IsZero() bool {
	return b.X0 == 0 && b.Y0 == 0 && b.X1 == 0 && b.Y1 == 0
}
