// Package layout holds the geometry shared by the on-screen renderer and the
// exporter: the card alignment guide, the resting fit rectangle and the mapping
// from viewport space back into source image pixels.
package layout

import (
	"image"
	"math"
)

const (
	// CardAspect is the width/height ratio of a trading card.
	CardAspect = 5.0 / 7.0
	// GuideFill is the share of the limiting viewport dimension the guide covers.
	GuideFill = 0.6
	// FitFill is the share of the limiting surface dimension the resting image covers.
	FitFill = 0.9
)

// Size is a width and height in pixels.
type Size struct {
	W, H float64
}

// Sz builds a Size from integer dimensions.
func Sz(w, h int) Size { return Size{W: float64(w), H: float64(h)} }

// Empty reports whether either dimension is non-positive or not finite.
func (s Size) Empty() bool {
	return !(s.W > 0 && s.H > 0) || math.IsInf(s.W, 0) || math.IsInf(s.H, 0)
}

// Center returns the midpoint of a surface of this size.
func (s Size) Center() (float64, float64) { return s.W / 2, s.H / 2 }

// Rect is an axis-aligned rectangle in floating point pixels.
type Rect struct {
	X, Y, W, H float64
}

// FromImageRect converts an integer rectangle.
func FromImageRect(r image.Rectangle) Rect {
	return Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return !(r.W > 0 && r.H > 0) }

// Max returns the bottom-right corner.
func (r Rect) Max() (float64, float64) { return r.X + r.W, r.Y + r.H }

// Inset shrinks the rectangle by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Image rounds every edge to the nearest pixel.
func (r Rect) Image() image.Rectangle {
	x1, y1 := r.Max()
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(x1)), int(math.Round(y1)),
	)
}

// Guide returns the card alignment guide for a viewport. The guide keeps a 5:7
// aspect ratio, covers 60% of the limiting dimension and is centered.
func Guide(viewport Size) Rect {
	if viewport.Empty() {
		return Rect{}
	}
	var w, h float64
	if viewport.W/viewport.H > CardAspect {
		h = GuideFill * viewport.H
		w = h * CardAspect
	} else {
		w = GuideFill * viewport.W
		h = w / CardAspect
	}
	return Rect{
		X: (viewport.W - w) / 2,
		Y: (viewport.H - h) / 2,
		W: w,
		H: h,
	}
}

// Fit returns the resting destination rectangle of the crop area on a surface.
// It ignores any live pan or zoom.
func Fit(surface Size, crop Rect) Rect {
	if surface.Empty() || crop.Empty() {
		return Rect{}
	}
	imageAspect := crop.W / crop.H
	surfaceAspect := surface.W / surface.H
	var w, h float64
	if imageAspect > surfaceAspect {
		w = FitFill * surface.W
		h = w / imageAspect
	} else {
		h = FitFill * surface.H
		w = h * imageAspect
	}
	return Rect{
		X: (surface.W - w) / 2,
		Y: (surface.H - h) / 2,
		W: w,
		H: h,
	}
}

// FitScale is the source-to-surface ratio of the fit rectangle.
func FitScale(surface Size, crop Rect) float64 {
	if surface.Empty() || crop.Empty() {
		return 0
	}
	return math.Min(surface.W/crop.W, surface.H/crop.H) * FitFill
}
