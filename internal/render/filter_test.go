package render

import (
	"image"
	"image/color"
	"testing"
)

func TestFilterIdentityLUT(t *testing.T) {
	lut := Filter{BrightnessPct: 100, ContrastPct: 100}.LUT()
	for i, v := range lut {
		if int(v) != i {
			t.Fatalf("lut[%d] = %d", i, v)
		}
	}
}

func TestFilterBrightnessScales(t *testing.T) {
	lut := Filter{BrightnessPct: 50, ContrastPct: 100}.LUT()
	if lut[200] != 100 || lut[0] != 0 {
		t.Fatalf("unexpected values %d %d", lut[200], lut[0])
	}
	lut = Filter{BrightnessPct: 150, ContrastPct: 100}.LUT()
	if lut[200] != 255 {
		t.Fatalf("brightness should clamp, got %d", lut[200])
	}
}

func TestFilterContrastPivotsOnMidGray(t *testing.T) {
	low := Filter{BrightnessPct: 100, ContrastPct: 50}.LUT()
	high := Filter{BrightnessPct: 100, ContrastPct: 150}.LUT()
	if low[255] >= 255 || low[0] <= 0 {
		t.Fatalf("low contrast should pull extremes in: %d %d", low[0], low[255])
	}
	if high[64] >= 64 || high[192] <= 192 {
		t.Fatalf("high contrast should push values out: %d %d", high[64], high[192])
	}
}

func TestFilterApplyPreservesAlphaAndSource(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{200, 100, 40, 128})
	src.SetNRGBA(1, 0, color.NRGBA{10, 20, 30, 0})
	out := Filter{BrightnessPct: 50, ContrastPct: 100}.Apply(src)
	if got := out.NRGBAAt(0, 0); got.A != 128 || got.R != 100 || got.G != 50 || got.B != 20 {
		t.Fatalf("unexpected pixel %+v", got)
	}
	if src.NRGBAAt(0, 0).R != 200 {
		t.Fatal("source modified")
	}
}
