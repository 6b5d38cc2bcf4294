// Package transform holds the live scale, rotation, pan and color record edited
// by gestures and toolbar actions.
package transform

import (
	"math"

	"github.com/example/cardalign/internal/layout"
)

const (
	MinScale = 0.5
	MaxScale = 3.0
	// InitialScale is the zoom an editor opens with.
	InitialScale = 0.6
	// ResetScale is the zoom restored by Reset.
	ResetScale = 0.75

	MinPercent     = 50.0
	MaxPercent     = 150.0
	NeutralPercent = 100.0
)

// Transform is a snapshot of the editable view state.
type Transform struct {
	Scale         float64
	RotationDeg   float64
	X, Y          float64
	BrightnessPct float64
	ContrastPct   float64
}

// Initial returns the transform an editor starts with.
func Initial() Transform {
	t := Defaults()
	t.Scale = InitialScale
	return t
}

// Defaults returns the values restored by Reset.
func Defaults() Transform {
	return Transform{
		Scale:         ResetScale,
		BrightnessPct: NeutralPercent,
		ContrastPct:   NeutralPercent,
	}
}

// View extracts the pan and zoom part used for coordinate mapping.
func (t Transform) View() layout.View {
	return layout.View{Scale: t.Scale, X: t.X, Y: t.Y}
}

// Radians returns the rotation in radians.
func (t Transform) Radians() float64 { return t.RotationDeg * math.Pi / 180 }

// ClampScale limits s to the supported zoom range.
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// ClampPercent limits a brightness or contrast value to the range offered by the
// slider controls.
func ClampPercent(p float64) float64 {
	if math.IsNaN(p) {
		return NeutralPercent
	}
	if p < MinPercent {
		return MinPercent
	}
	if p > MaxPercent {
		return MaxPercent
	}
	return p
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -0 and values that round up to 360 after the addition above.
	if deg >= 360 || deg == 0 {
		return 0
	}
	return deg
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
