// Package render composites the source photo, the alignment guide and the
// crop overlay onto a drawing surface.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/example/cardalign/internal/layout"
	"github.com/example/cardalign/internal/theme"
	"github.com/example/cardalign/internal/transform"
)

var (
	ErrEmptySurface = errors.New("render: empty surface")
	ErrNoImage      = errors.New("render: no source image")
)

// Options configures colors and overlay geometry.
type Options struct {
	Background color.Color
	Foreground color.Color
	Guide      color.Color
	Border     color.Color
	Handle     color.Color
	Mask       MaskOptions
	// ShowGuide draws the card outline on every frame.
	ShowGuide bool
	// TitleSize is the caption point size; zero disables the caption.
	TitleSize float64
}

// DefaultOptions uses the default theme.
func DefaultOptions() Options { return FromTheme(theme.Default()) }

// FromTheme derives renderer options from a color theme.
func FromTheme(t *theme.Theme) Options {
	mask := DefaultMaskOptions()
	mask.Color = t.Mask
	// A fully transparent mask color would hide crop mode; keep the default.
	if t.Mask.A > 0 {
		mask.Opacity = float64(t.Mask.A) / 255
	}
	return Options{
		Background: t.Background,
		Foreground: t.Foreground,
		Guide:      t.Guide,
		Border:     t.Border,
		Handle:     t.Handle,
		Mask:       mask,
		ShowGuide:  true,
		TitleSize:  18,
	}
}

// Input is everything that determines one frame.
type Input struct {
	Surface   layout.Size
	Transform transform.Transform
	// Crop is the source region shown, in source pixels. An empty value means
	// the whole image.
	Crop     image.Rectangle
	CropMode bool
	Guide    layout.Rect
	Title    string
}

// Renderer draws frames. It holds no per-frame state apart from a cached font
// face.
type Renderer struct {
	opts      Options
	titleFace font.Face
}

// New returns a renderer using opts.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Options returns the renderer configuration.
func (r *Renderer) Options() Options { return r.opts }

// Frame clears a surface and draws src under the transform pipeline
// translate(center), rotate, scale, translate(-center + pan), into the resting
// fit rectangle. The brightness and contrast filter only touches the photo
// layer.
func (r *Renderer) Frame(src image.Image, in Input) (*image.RGBA, error) {
	w := int(math.Round(in.Surface.W))
	h := int(math.Round(in.Surface.H))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptySurface
	}
	if src == nil {
		return nil, ErrNoImage
	}
	crop := in.Crop
	if crop.Empty() {
		crop = src.Bounds()
	}
	surface := layout.Sz(w, h)
	fit := layout.Fit(surface, layout.FromImageRect(crop))

	dc := gg.NewContext(w, h)
	if r.opts.Background != nil {
		dc.SetColor(r.opts.Background)
		dc.Clear()
	}

	photo := gg.NewContext(w, h)
	t := in.Transform
	cx, cy := surface.Center()
	photo.Translate(cx, cy)
	photo.Rotate(t.Radians())
	photo.Scale(t.Scale, t.Scale)
	photo.Translate(-cx+t.X, -cy+t.Y)
	DrawRegion(photo, src, crop, fit)

	layer := photo.Image()
	f := Filter{BrightnessPct: t.BrightnessPct, ContrastPct: t.ContrastPct}
	if f.Identity() {
		dc.DrawImage(layer, 0, 0)
	} else {
		dc.DrawImage(f.Apply(layer), 0, 0)
	}

	if r.opts.ShowGuide && !in.Guide.Empty() {
		r.drawGuide(dc, in.Guide)
	}
	if in.CropMode {
		r.drawCropOverlay(dc, fit.Image())
	}
	if in.Title != "" && r.opts.TitleSize > 0 {
		r.drawTitle(dc, in.Title, float64(w))
	}
	return toRGBA(dc.Image()), nil
}

// DrawRegion draws region of src stretched onto dst in the current coordinate
// system of dc.
func DrawRegion(dc *gg.Context, src image.Image, region image.Rectangle, dst layout.Rect) {
	region = region.Intersect(src.Bounds())
	if region.Empty() || dst.Empty() {
		return
	}
	if si, ok := src.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		src = si.SubImage(region)
	}
	dc.Push()
	defer dc.Pop()
	dc.Translate(dst.X, dst.Y)
	dc.Scale(dst.W/float64(region.Dx()), dst.H/float64(region.Dy()))
	dc.DrawImage(src, -region.Min.X, -region.Min.Y)
}

func (r *Renderer) drawGuide(dc *gg.Context, g layout.Rect) {
	dc.Push()
	defer dc.Pop()
	dc.SetColor(r.opts.Guide)
	dc.SetLineWidth(2)
	dc.SetDash(10, 6)
	dc.DrawRoundedRectangle(g.X, g.Y, g.W, g.H, g.W*0.045)
	dc.Stroke()
}

func (r *Renderer) drawCropOverlay(dc *gg.Context, rect image.Rectangle) {
	b := dc.Image().Bounds()
	dc.DrawImage(CropMask(b.Size(), rect, r.opts.Mask), 0, 0)

	dc.Push()
	defer dc.Pop()
	dc.SetColor(r.opts.Border)
	dc.SetLineWidth(r.opts.Mask.BorderWidth)
	dc.DrawRectangle(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))
	dc.Stroke()

	dc.SetColor(r.opts.Handle)
	for _, hr := range HandleRects(rect, r.opts.Mask.HandleSize) {
		dc.DrawRectangle(float64(hr.Min.X), float64(hr.Min.Y), float64(hr.Dx()), float64(hr.Dy()))
	}
	dc.Fill()
}

func (r *Renderer) drawTitle(dc *gg.Context, title string, width float64) {
	if r.titleFace == nil {
		face, err := TitleFace(r.opts.TitleSize)
		if err != nil {
			log.Printf("render: title font: %v", err)
			return
		}
		r.titleFace = face
	}
	dc.Push()
	defer dc.Pop()
	dc.SetFontFace(r.titleFace)
	dc.SetColor(r.opts.Foreground)
	dc.DrawStringAnchored(title, width/2, r.opts.TitleSize, 0.5, 0.5)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
