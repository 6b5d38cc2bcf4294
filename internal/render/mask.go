package render

import (
	"image"
	"image/color"
	"image/draw"
)

// MaskOptions configures the crop mode overlay.
type MaskOptions struct {
	// Color is the mask fill. Its alpha is replaced by Opacity when Opacity is
	// positive.
	Color   color.RGBA
	Opacity float64
	// HandleSize is the side length of the corner handles in pixels.
	HandleSize int
	// BorderWidth is the stroke width of the crop rectangle outline.
	BorderWidth float64
}

// DefaultMaskOptions returns a half-opaque black mask with 10px handles.
func DefaultMaskOptions() MaskOptions {
	return MaskOptions{
		Color:       color.RGBA{0, 0, 0, 128},
		Opacity:     0.5,
		HandleSize:  10,
		BorderWidth: 2,
	}
}

func (o MaskOptions) fill() color.RGBA {
	c := o.Color
	if o.Opacity > 0 {
		op := o.Opacity
		if op > 1 {
			op = 1
		}
		c.A = uint8(op*255 + 0.5)
	}
	// color.RGBA is alpha-premultiplied.
	c.R = uint8(uint16(c.R) * uint16(c.A) / 255)
	c.G = uint8(uint16(c.G) * uint16(c.A) / 255)
	c.B = uint8(uint16(c.B) * uint16(c.A) / 255)
	return c
}

// CropMask returns a layer of the given size filled with the mask color and
// with hole punched fully transparent. The result always has a zero origin.
func CropMask(size image.Point, hole image.Rectangle, opts MaskOptions) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	if size.X <= 0 || size.Y <= 0 {
		return dst
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(opts.fill()), image.Point{}, draw.Src)
	hole = hole.Intersect(dst.Bounds())
	if !hole.Empty() {
		draw.Draw(dst, hole, image.Transparent, image.Point{}, draw.Src)
	}
	return dst
}

// HandleRects returns the four corner handles of rect, top-left first and
// clockwise.
func HandleRects(rect image.Rectangle, size int) []image.Rectangle {
	hs := size / 2
	return []image.Rectangle{
		image.Rect(rect.Min.X-hs, rect.Min.Y-hs, rect.Min.X-hs+size, rect.Min.Y-hs+size), // tl
		image.Rect(rect.Max.X-hs, rect.Min.Y-hs, rect.Max.X-hs+size, rect.Min.Y-hs+size), // tr
		image.Rect(rect.Max.X-hs, rect.Max.Y-hs, rect.Max.X-hs+size, rect.Max.Y-hs+size), // br
		image.Rect(rect.Min.X-hs, rect.Max.Y-hs, rect.Min.X-hs+size, rect.Max.Y-hs+size), // bl
	}
}
