package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
Name: custom
Guide: #00FF00
mask: #00000099
Unknown: #123456
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "custom" {
		t.Errorf("expected name custom, got %q", th.Name)
	}
	if th.Guide != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("unexpected guide color %+v", th.Guide)
	}
	if th.Mask != (color.RGBA{0, 0, 0, 0x99}) {
		t.Errorf("unexpected mask color %+v", th.Mask)
	}
	if th.Border != Default().Border {
		t.Errorf("border should keep its default, got %+v", th.Border)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Guide: green")); err == nil {
		t.Fatal("expected error for color without #")
	}
	if _, err := Parse(strings.NewReader("Guide: #12345")); err == nil {
		t.Fatal("expected error for bad hex length")
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{{1, 2, 3, 255}, {250, 128, 0, 17}} {
		got, err := ParseColor(FormatColor(c))
		if err != nil {
			t.Fatalf("ParseColor: %v", err)
		}
		if got != c {
			t.Fatalf("round trip %+v -> %+v", c, got)
		}
	}
}

func TestLoaderFindsBuiltinsAndFiles(t *testing.T) {
	dir := t.TempDir()
	l := &Loader{ConfigDir: dir}

	th, err := l.Load("dark")
	if err != nil || th.Name != "Dark" {
		t.Fatalf("expected dark builtin, got %v %v", th, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: mine\nHandle: #FF0000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err = l.Load("mine")
	if err != nil {
		t.Fatalf("Load mine: %v", err)
	}
	if th.Handle != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("unexpected handle color %+v", th.Handle)
	}

	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for missing theme")
	}
}

func TestFieldsListsColors(t *testing.T) {
	fields := Fields(Default())
	if len(fields) != 10 {
		t.Fatalf("expected 10 color fields, got %d", len(fields))
	}
	if fields[0].Name != "Background" {
		t.Fatalf("unexpected first field %q", fields[0].Name)
	}
}
