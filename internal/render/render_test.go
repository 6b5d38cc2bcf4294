package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/example/cardalign/internal/layout"
	"github.com/example/cardalign/internal/theme"
	"github.com/example/cardalign/internal/transform"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func halves(w, h int, left, right color.Color) *image.RGBA {
	img := solid(w, h, left)
	draw.Draw(img, image.Rect(w/2, 0, w, h), image.NewUniform(right), image.Point{}, draw.Src)
	return img
}

func neutral() transform.Transform {
	return transform.Transform{Scale: 1, BrightnessPct: 100, ContrastPct: 100}
}

func quietOptions() Options {
	opts := DefaultOptions()
	opts.ShowGuide = false
	opts.TitleSize = 0
	return opts
}

func closeTo(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func TestFrameDrawsPhotoInFitRect(t *testing.T) {
	red := color.RGBA{200, 20, 20, 255}
	r := New(quietOptions())
	out, err := r.Frame(solid(100, 140, red), Input{Surface: layout.Size{W: 200, H: 280}, Transform: neutral()})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !out.Bounds().Eq(image.Rect(0, 0, 200, 280)) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if got := out.RGBAAt(100, 140); !closeTo(got.R, red.R) || !closeTo(got.G, red.G) {
		t.Fatalf("center pixel %+v, want %+v", got, red)
	}
	bg := quietOptions().Background.(color.RGBA)
	if got := out.RGBAAt(2, 2); got != bg {
		t.Fatalf("corner pixel %+v, want background %+v", got, bg)
	}
}

func TestFrameRotatesAboutCenter(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	r := New(quietOptions())
	tr := neutral()
	tr.RotationDeg = 180
	out, err := r.Frame(halves(100, 140, red, blue), Input{Surface: layout.Size{W: 200, H: 280}, Transform: tr})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if got := out.RGBAAt(60, 140); got.B < 200 || got.R > 50 {
		t.Fatalf("left of center after 180 degrees should be blue, got %+v", got)
	}
	if got := out.RGBAAt(140, 140); got.R < 200 || got.B > 50 {
		t.Fatalf("right of center after 180 degrees should be red, got %+v", got)
	}
}

func TestFramePanMovesPhotoAway(t *testing.T) {
	r := New(quietOptions())
	tr := neutral()
	tr.X = 1000
	out, err := r.Frame(solid(100, 140, color.White), Input{Surface: layout.Size{W: 200, H: 280}, Transform: tr})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	bg := quietOptions().Background.(color.RGBA)
	if got := out.RGBAAt(100, 140); got != bg {
		t.Fatalf("center pixel %+v, want background %+v", got, bg)
	}
}

func TestFrameAppliesFilterToPhotoOnly(t *testing.T) {
	src := solid(100, 140, color.RGBA{200, 100, 50, 255})
	r := New(quietOptions())
	tr := neutral()
	tr.BrightnessPct = 50
	out, err := r.Frame(src, Input{Surface: layout.Size{W: 200, H: 280}, Transform: tr})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if got := out.RGBAAt(100, 140); !closeTo(got.R, 100) || !closeTo(got.G, 50) || !closeTo(got.B, 25) {
		t.Fatalf("center pixel %+v, want half brightness", got)
	}
	bg := quietOptions().Background.(color.RGBA)
	if got := out.RGBAAt(2, 2); got != bg {
		t.Fatalf("filter leaked onto background: %+v", got)
	}
	if src.RGBAAt(0, 0) != (color.RGBA{200, 100, 50, 255}) {
		t.Fatalf("source image was modified")
	}
}

func TestFrameCropModeMasksOutsideFit(t *testing.T) {
	src := solid(100, 140, color.White)
	r := New(quietOptions())
	in := Input{Surface: layout.Size{W: 200, H: 280}, Transform: neutral()}
	plain, err := r.Frame(src, in)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	in.CropMode = true
	masked, err := r.Frame(src, in)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if a, b := plain.RGBAAt(2, 2), masked.RGBAAt(2, 2); b.R >= a.R && a.R > 0 {
		t.Fatalf("mask should darken outside the fit rect: %+v vs %+v", a, b)
	}
	if a, b := plain.RGBAAt(100, 140), masked.RGBAAt(100, 140); a != b {
		t.Fatalf("mask should not touch the fit rect: %+v vs %+v", a, b)
	}
	// Fit rect of a 5:7 crop on a 5:7 surface starts at (10,14); the top-left
	// handle is centered there.
	if got := masked.RGBAAt(10, 14); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("expected handle color at corner, got %+v", got)
	}
}

func TestFrameErrors(t *testing.T) {
	r := New(DefaultOptions())
	if _, err := r.Frame(solid(1, 1, color.White), Input{}); !errors.Is(err, ErrEmptySurface) {
		t.Fatalf("expected ErrEmptySurface, got %v", err)
	}
	if _, err := r.Frame(nil, Input{Surface: layout.Size{W: 10, H: 10}}); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
}

func TestFrameWithGuideAndTitle(t *testing.T) {
	r := New(DefaultOptions())
	vp := layout.Size{W: 200, H: 280}
	out, err := r.Frame(solid(100, 140, color.Black), Input{
		Surface:   vp,
		Transform: neutral(),
		Guide:     layout.Guide(vp),
		Title:     "Front",
	})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if out.Bounds().Dx() != 200 {
		t.Fatalf("unexpected width %d", out.Bounds().Dx())
	}
}

func TestFromThemeKeepsMaskVisible(t *testing.T) {
	th := theme.Default()
	th.Mask = color.RGBA{10, 20, 30, 0}
	opts := FromTheme(th)
	if opts.Mask.Opacity != DefaultMaskOptions().Opacity {
		t.Fatalf("opacity %v, want default", opts.Mask.Opacity)
	}
	if a := opts.Mask.fill().A; a != 128 {
		t.Fatalf("mask alpha %d", a)
	}

	th.Mask.A = 204
	if got := FromTheme(th).Mask.Opacity; got != 0.8 {
		t.Fatalf("opacity %v, want 0.8", got)
	}
}
