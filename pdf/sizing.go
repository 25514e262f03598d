package pdf

import "github.com/tsawler/docmorph/model"

// SizeBounds constrains the display footprint of a placed image, in
// points.
type SizeBounds struct {
	MaxWidth  float64
	MaxHeight float64
	MinWidth  float64
	MinHeight float64
}

// DefaultSizeBounds returns the standard display envelope for placed
// images.
func DefaultSizeBounds() SizeBounds {
	return SizeBounds{
		MaxWidth:  300,
		MaxHeight: 200,
		MinWidth:  50,
		MinHeight: 30,
	}
}

// Scale returns bounds multiplied by f, for quality tiers that widen or
// narrow the envelope.
func (b SizeBounds) Scale(f float64) SizeBounds {
	return SizeBounds{
		MaxWidth:  b.MaxWidth * f,
		MaxHeight: b.MaxHeight * f,
		MinWidth:  b.MinWidth * f,
		MinHeight: b.MinHeight * f,
	}
}

// footprintFactor shrinks a placement box so the image sits inside its
// original footprint with breathing room.
const footprintFactor = 0.8

// DisplaySize fills in the display dimensions of an image reference.
//
// With a resolved placement box the display size is 80% of the box,
// clamped to the maximum bounds along the dominant axis with aspect
// ratio preserved, then raised to the minimum bounds. Without a box the
// size falls back to a fixed default split by the orientation of the
// bounds envelope.
func DisplaySize(ref *model.ImageRef, b SizeBounds) {
	if !ref.HasBBox || ref.BBox.Width() <= 0 || ref.BBox.Height() <= 0 {
		ref.DisplayWidth, ref.DisplayHeight = defaultFootprint(b)
		return
	}

	bw := ref.BBox.Width() * footprintFactor
	bh := ref.BBox.Height() * footprintFactor
	aspect := bw / bh

	w, h := bw, bh
	if w > b.MaxWidth {
		w = b.MaxWidth
		h = w / aspect
	}
	if h > b.MaxHeight {
		h = b.MaxHeight
		w = h * aspect
	}
	if w < b.MinWidth {
		w = b.MinWidth
	}
	if h < b.MinHeight {
		h = b.MinHeight
	}
	ref.DisplayWidth, ref.DisplayHeight = w, h
}

// defaultFootprint picks landscape or portrait default dimensions from
// the shape of the bounds envelope.
func defaultFootprint(b SizeBounds) (w, h float64) {
	if b.MaxWidth >= b.MaxHeight {
		w = min(b.MaxWidth, 300)
		h = min(b.MaxHeight, 200)
	} else {
		w = min(b.MaxWidth, 200)
		h = min(b.MaxHeight, 250)
	}
	if w < b.MinWidth {
		w = b.MinWidth
	}
	if h < b.MinHeight {
		h = b.MinHeight
	}
	return w, h
}
