package layout

// View is the live pan and zoom applied on top of the fit rectangle.
type View struct {
	Scale float64
	X, Y  float64
}

// Mapping ties the viewport to the source image for one transform.
type Mapping struct {
	// Fit is the resting rectangle used by the renderer and the crop mask.
	Fit Rect
	// Display is Fit after the live zoom about the surface center and the pan.
	Display Rect
	// Source is the padded overlay expressed in source pixels, clamped to the
	// image bounds edge by edge.
	Source Rect
	// ScaleX and ScaleY are source pixels per displayed pixel.
	ScaleX, ScaleY float64
}

// Map resolves the padded overlay rectangle into source pixel space. The
// renderer and the exporter both derive their rectangles from this function so
// they cannot disagree on the fit formula.
func Map(viewport Size, crop Rect, view View, overlay Rect, padding float64, bounds Size) Mapping {
	m := Mapping{Fit: Fit(viewport, crop)}
	fitScale := FitScale(viewport, crop)
	if fitScale == 0 || !(view.Scale > 0) {
		return m
	}

	dw := crop.W * fitScale * view.Scale
	dh := crop.H * fitScale * view.Scale
	m.Display = Rect{
		X: (viewport.W-dw)/2 + view.X,
		Y: (viewport.H-dh)/2 + view.Y,
		W: dw,
		H: dh,
	}
	m.ScaleX = crop.W / dw
	m.ScaleY = crop.H / dh

	padded := overlay.Inset(-padding)
	px1, py1 := padded.Max()
	x0 := clamp(crop.X+(padded.X-m.Display.X)*m.ScaleX, 0, bounds.W)
	y0 := clamp(crop.Y+(padded.Y-m.Display.Y)*m.ScaleY, 0, bounds.H)
	x1 := clamp(crop.X+(px1-m.Display.X)*m.ScaleX, 0, bounds.W)
	y1 := clamp(crop.Y+(py1-m.Display.Y)*m.ScaleY, 0, bounds.H)
	m.Source = Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	return m
}

func clamp(v, lo, hi float64) float64 {
	if v != v {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
