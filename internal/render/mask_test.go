package render

import (
	"image"
	"image/color"
	"testing"
)

func TestCropMaskPunchesHole(t *testing.T) {
	opts := DefaultMaskOptions()
	mask := CropMask(image.Pt(20, 20), image.Rect(5, 5, 15, 15), opts)
	if !mask.Bounds().Eq(image.Rect(0, 0, 20, 20)) {
		t.Fatalf("unexpected bounds %v", mask.Bounds())
	}
	if got := mask.RGBAAt(0, 0); got.A != 128 {
		t.Fatalf("expected mask alpha 128 outside the hole, got %+v", got)
	}
	if got := mask.RGBAAt(10, 10); got != (color.RGBA{}) {
		t.Fatalf("expected transparent hole, got %+v", got)
	}
	if got := mask.RGBAAt(15, 15); got.A == 0 {
		t.Fatalf("hole should be half-open, got %+v", got)
	}
}

func TestCropMaskOpacityOverridesColorAlpha(t *testing.T) {
	opts := MaskOptions{Color: color.RGBA{255, 255, 255, 255}, Opacity: 0.25}
	mask := CropMask(image.Pt(4, 4), image.Rectangle{}, opts)
	got := mask.RGBAAt(1, 1)
	if got.A != 64 || got.R != 64 {
		t.Fatalf("expected premultiplied quarter white, got %+v", got)
	}
}

func TestCropMaskHoleOutsideSurface(t *testing.T) {
	mask := CropMask(image.Pt(4, 4), image.Rect(100, 100, 200, 200), DefaultMaskOptions())
	if got := mask.RGBAAt(3, 3); got.A == 0 {
		t.Fatalf("mask should stay filled, got %+v", got)
	}
}

func TestHandleRectsAreCenteredOnCorners(t *testing.T) {
	rect := image.Rect(10, 20, 110, 160)
	hs := HandleRects(rect, 10)
	if len(hs) != 4 {
		t.Fatalf("expected four handles, got %d", len(hs))
	}
	corners := []image.Point{rect.Min, {rect.Max.X, rect.Min.Y}, rect.Max, {rect.Min.X, rect.Max.Y}}
	for i, h := range hs {
		if h.Dx() != 10 || h.Dy() != 10 {
			t.Fatalf("handle %d has size %v", i, h.Size())
		}
		c := image.Pt((h.Min.X+h.Max.X)/2, (h.Min.Y+h.Max.Y)/2)
		if c != corners[i] {
			t.Fatalf("handle %d centered at %v, want %v", i, c, corners[i])
		}
	}
}
