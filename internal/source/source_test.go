package source

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	path := filepath.Join(t.TempDir(), "card.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestResolverDecodesFile(t *testing.T) {
	path := writePNG(t, 12, 7)
	img, err := Resolver{}.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 7 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestResolverMissingFile(t *testing.T) {
	_, err := Resolver{}.Load(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist, got %v", err)
	}
}

func TestResolverEmptyRef(t *testing.T) {
	if _, err := (Resolver{}).Load(context.Background(), "  "); !errors.Is(err, ErrEmptyRef) {
		t.Fatalf("expected ErrEmptyRef, got %v", err)
	}
}

func TestResolverClipboard(t *testing.T) {
	want := image.NewRGBA(image.Rect(0, 0, 3, 3))
	r := Resolver{Clipboard: func() (image.Image, error) { return want, nil }}
	got, err := r.Load(context.Background(), "clipboard:")
	if err != nil || got != want {
		t.Fatalf("Load = %v, %v", got, err)
	}
	if _, err := r.Load(context.Background(), "clipboard:primary"); !errors.Is(err, ErrUnsupportedRef) {
		t.Fatalf("expected ErrUnsupportedRef, got %v", err)
	}
	boom := errors.New("boom")
	r.Clipboard = func() (image.Image, error) { return nil, boom }
	if _, err := r.Load(context.Background(), "clipboard:"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestResolverX11(t *testing.T) {
	var gotID uint32
	var gotRoot bool
	r := Resolver{X11: func(_ context.Context, id uint32, root bool) (image.Image, error) {
		gotID, gotRoot = id, root
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}}
	if _, err := r.Load(context.Background(), "x11:0x2a"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotID != 42 || gotRoot {
		t.Fatalf("got id %d root %v", gotID, gotRoot)
	}
	if _, err := r.Load(context.Background(), "x11:root"); err != nil || !gotRoot {
		t.Fatalf("root capture: %v %v", err, gotRoot)
	}
	if _, err := r.Load(context.Background(), "x11:window"); !errors.Is(err, ErrUnsupportedRef) {
		t.Fatalf("expected ErrUnsupportedRef, got %v", err)
	}
}

func TestResolverHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Resolver{}).Load(ctx, "card.jpg"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestZPixmapToRGBA(t *testing.T) {
	// Two BGRX pixels per row with two bytes of row padding.
	data := []byte{
		1, 2, 3, 0, 4, 5, 6, 0, 9, 9,
		7, 8, 9, 0, 10, 11, 12, 0, 9, 9,
	}
	img, err := zPixmapToRGBA(data, 2, 2, 32)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{12, 11, 10, 255}) {
		t.Fatalf("unexpected pixel %+v", got)
	}
	if _, err := zPixmapToRGBA(data, 2, 2, 16); err == nil {
		t.Fatal("expected error for 16 bpp")
	}
	if _, err := zPixmapToRGBA(data[:7], 2, 2, 32); err == nil {
		t.Fatal("expected stride error")
	}
}

func TestResolverPortal(t *testing.T) {
	var modes []bool
	r := Resolver{Portal: func(_ context.Context, interactive bool) (image.Image, error) {
		modes = append(modes, interactive)
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}}
	for _, ref := range []string{"portal:", "portal:interactive"} {
		if _, err := r.Load(context.Background(), ref); err != nil {
			t.Fatalf("%s: %v", ref, err)
		}
	}
	if len(modes) != 2 || modes[0] || !modes[1] {
		t.Fatalf("modes %v", modes)
	}
	if _, err := r.Load(context.Background(), "portal:window"); !errors.Is(err, ErrUnsupportedRef) {
		t.Fatalf("expected ErrUnsupportedRef, got %v", err)
	}
}

func TestResolverDecodesPNGAndJPEG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 9, 5))
	for x := 0; x < 9; x++ {
		img.SetNRGBA(x, 2, color.NRGBA{200, 40, 40, 255})
	}
	dir := t.TempDir()
	encoders := map[string]func(f *os.File) error{
		"card.png": func(f *os.File) error { return png.Encode(f, img) },
		"card.jpg": func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: 90}) },
	}
	for name, encode := range encoders {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if err := encode(f); err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
		f.Close()

		got, err := Resolver{}.Load(context.Background(), path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got.Bounds().Size() != image.Pt(9, 5) {
			t.Fatalf("%s: bounds %v", name, got.Bounds())
		}
	}
}
