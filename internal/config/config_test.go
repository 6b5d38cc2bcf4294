package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
title = Front
output = /tmp/card.jpg
format = PNG
quality = 80
padding = 24
theme = my_custom_theme

[window]
width = 500
height = 700
mask_opacity = 0.4
handle_size = 12
guide = false

[notify]
export = true
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
Guide: #00FF0080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Title != "Front" || cfg.Output != "/tmp/card.jpg" || cfg.Format != "png" {
		t.Errorf("unexpected root values %+v", cfg)
	}
	if cfg.Quality != 80 || cfg.Padding != 24 || cfg.Theme != "my_custom_theme" {
		t.Errorf("unexpected root numbers %+v", cfg)
	}
	want := Window{Width: 500, Height: 700, MaskOpacity: 0.4, HandleSize: 12, Guide: false}
	if cfg.Window != want {
		t.Errorf("window %+v, want %+v", cfg.Window, want)
	}
	if !cfg.Notify.Export || cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("unexpected notify %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Guide.A != 0x80 {
		t.Errorf("unexpected theme colors %+v %+v", th.Background, th.Guide)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"quality range":  "quality = 0",
		"quality number": "quality = high",
		"padding":        "padding = -1",
		"window int":     "[window]\nwidth = wide",
		"notify bool":    "[notify]\nexport = maybe",
		"theme color":    "[theme.x]\nBackground = red",
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `title = Back
format = webp
quality = 75
padding = 30
theme = dark

[window]
width = 640
height = 900
mask_opacity = 0.6
handle_size = 8
guide = true

[notify]
export = true
save = true
copy = false

[theme.custom]
Name: custom
Background: #000000
Mask: #00000080
`
	cfg1, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse 1 failed: %v", err)
	}
	output := cfg1.String()
	cfg2, err := Parse(strings.NewReader(output))
	if err != nil {
		t.Fatalf("Parse 2 failed: %v\n%s", err, output)
	}
	if cfg2.String() != output {
		t.Fatalf("round trip mismatch:\n%s\n---\n%s", output, cfg2.String())
	}
	if cfg2.Window != cfg1.Window || cfg2.Notify != cfg1.Notify || cfg2.Format != "webp" {
		t.Fatalf("values lost in round trip: %+v", cfg2)
	}
	if *cfg2.Themes["custom"] != *cfg1.Themes["custom"] {
		t.Fatalf("theme lost in round trip")
	}
}

func TestLoaderPrefersOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	l := NewLoader("v1", "")
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	if cfg.Quality != 90 || cfg.Window.Width != 600 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	saved := New()
	saved.Title = "Saved"
	if err := Save(saved, DefaultPath()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if cfg, err = l.Load(); err != nil || cfg.Title != "Saved" {
		t.Fatalf("Load saved = %+v, %v", cfg, err)
	}

	override := filepath.Join(dir, "override.rc")
	if err := os.WriteFile(override, []byte("title = Override\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l.OverridePath = override
	if cfg, err = l.Load(); err != nil || cfg.Title != "Override" {
		t.Fatalf("Load override = %+v, %v", cfg, err)
	}
}

func TestLookupThemePrefersConfig(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[theme.dark]\nGuide = #010203\n"))
	if err != nil {
		t.Fatal(err)
	}
	th, err := cfg.LookupTheme("dark", nil)
	if err != nil || th.Guide.R != 1 {
		t.Fatalf("LookupTheme = %+v, %v", th, err)
	}
	th, err = cfg.LookupTheme("high_contrast", nil)
	if err != nil || th.Name != "HighContrast" {
		t.Fatalf("builtin lookup = %+v, %v", th, err)
	}
}
