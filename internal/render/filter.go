package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Filter is a percentage based brightness and contrast adjustment where 100
// leaves a channel unchanged. Brightness is applied before contrast and every
// step clamps to the channel range, matching the CSS filter functions of the
// same name.
type Filter struct {
	BrightnessPct float64
	ContrastPct   float64
}

// Identity reports whether the filter leaves pixels unchanged.
func (f Filter) Identity() bool {
	return f.BrightnessPct == 100 && f.ContrastPct == 100
}

// LUT returns the per-channel lookup table of the filter.
func (f Filter) LUT() [256]uint8 {
	var lut [256]uint8
	b := f.BrightnessPct / 100
	c := f.ContrastPct / 100
	for i := range lut {
		v := unit(float64(i) / 255 * b)
		v = unit((v-0.5)*c + 0.5)
		lut[i] = uint8(math.Round(v * 255))
	}
	return lut
}

// Apply returns a filtered copy of img. Alpha is preserved and img is never
// modified.
func (f Filter) Apply(img image.Image) *image.NRGBA {
	if f.Identity() {
		return imaging.Clone(img)
	}
	lut := f.LUT()
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
	})
}

func unit(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
