// Package export resolves the card overlay back into source pixels and encodes
// a fixed size, padded image of that region.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/example/cardalign/internal/layout"
	"github.com/example/cardalign/internal/render"
	"github.com/example/cardalign/internal/transform"
)

const (
	// Padding is the bleed margin added on every side of the card overlay.
	Padding = 30
	// DefaultQuality is the JPEG quality used when a request leaves it unset.
	DefaultQuality = 90
)

var (
	ErrEmptyOverlay  = errors.New("export: empty overlay")
	ErrNoSource      = errors.New("export: no source image")
	ErrUnknownFormat = errors.New("export: unknown format")
)

// Format is an output encoding.
type Format int

const (
	JPEG Format = iota
	PNG
	WebP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case WebP:
		return "webp"
	default:
		return "jpeg"
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + f.String()
}

// ParseFormat accepts jpeg, jpg, png and webp in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "jpg", "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	}
	return JPEG, fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// Request carries everything an export reads. None of it is modified.
type Request struct {
	Source    image.Image
	Transform transform.Transform
	// Crop is the source region the editor shows; empty means the whole image.
	Crop     image.Rectangle
	Overlay  layout.Rect
	Viewport layout.Size
	// Padding is added around Overlay. Negative values count as zero.
	Padding float64
	Format  Format
	// Quality is the JPEG quality from 1 to 100; zero selects DefaultQuality.
	Quality int
}

// Result is an encoded export.
type Result struct {
	Payload    []byte
	Format     Format
	Size       image.Point
	SourceRect layout.Rect
}

// OutputSize returns the pixel size of the image produced for overlay.
func OutputSize(overlay layout.Rect, padding float64) image.Point {
	if padding < 0 {
		padding = 0
	}
	p := int(math.Round(padding))
	return image.Pt(int(math.Round(overlay.W))+2*p, int(math.Round(overlay.H))+2*p)
}

// Export draws the source region under the padded overlay onto a fresh surface
// of OutputSize. Pan and zoom are already absorbed by the region selection so
// only the rotation and the color filter are applied again.
func Export(ctx context.Context, req Request) (Result, error) {
	if req.Source == nil {
		return Result{}, ErrNoSource
	}
	if req.Overlay.Empty() {
		return Result{}, ErrEmptyOverlay
	}
	padding := math.Max(req.Padding, 0)
	size := OutputSize(req.Overlay, padding)
	if size.X <= 0 || size.Y <= 0 {
		return Result{}, ErrEmptyOverlay
	}

	b := req.Source.Bounds()
	crop := req.Crop
	if crop.Empty() {
		crop = b
	}
	m := layout.Map(
		req.Viewport,
		layout.FromImageRect(crop.Sub(b.Min)),
		req.Transform.View(),
		req.Overlay,
		math.Round(padding),
		layout.Sz(b.Dx(), b.Dy()),
	)

	dc := gg.NewContext(size.X, size.Y)
	dc.RotateAbout(req.Transform.Radians(), float64(size.X)/2, float64(size.Y)/2)
	render.DrawRegion(dc, req.Source, m.Source.Image().Add(b.Min), layout.Rect{W: float64(size.X), H: float64(size.Y)})

	out := dc.Image()
	f := render.Filter{BrightnessPct: req.Transform.BrightnessPct, ContrastPct: req.Transform.ContrastPct}
	if !f.Identity() {
		out = f.Apply(out)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	payload, err := Encode(out, req.Format, req.Quality)
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: payload, Format: req.Format, Size: size, SourceRect: m.Source}, nil
}

// Encode serializes img in the given format.
func Encode(img image.Image, format Format, quality int) ([]byte, error) {
	if quality <= 0 {
		quality = DefaultQuality
	}
	if quality > 100 {
		quality = 100
	}
	var buf bytes.Buffer
	var err error
	switch format {
	case PNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case WebP:
		err = nativewebp.Encode(&buf, img, nil)
	default:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	}
	if err != nil {
		return nil, fmt.Errorf("export: encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
