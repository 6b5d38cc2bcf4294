package theme

import (
	"image/color"
	"sort"
	"strings"
)

// Theme defines the colors used by the editor window and the frame overlays.
type Theme struct {
	Name string

	// Window chrome
	Background        color.RGBA // Surface behind the photo
	Foreground        color.RGBA // Title and status text
	ToolbarBackground color.RGBA
	ButtonBackground  color.RGBA
	ButtonActive      color.RGBA // Toggled buttons such as crop mode
	ButtonText        color.RGBA

	// Overlays
	Mask   color.RGBA // Crop mode mask, alpha is the default opacity
	Border color.RGBA // Crop rectangle outline
	Handle color.RGBA // Crop corner handles
	Guide  color.RGBA // Card alignment guide
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{32, 32, 36, 255},
		Foreground:        color.RGBA{240, 240, 240, 255},
		ToolbarBackground: color.RGBA{220, 220, 220, 255},
		ButtonBackground:  color.RGBA{200, 200, 200, 255},
		ButtonActive:      color.RGBA{150, 150, 150, 255},
		ButtonText:        color.RGBA{0, 0, 0, 255},
		Mask:              color.RGBA{0, 0, 0, 128},
		Border:            color.RGBA{255, 255, 255, 255},
		Handle:            color.RGBA{255, 255, 255, 255},
		Guide:             color.RGBA{255, 215, 0, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	t := Default()
	t.Name = "Dark"
	t.Background = color.RGBA{0, 0, 0, 255}
	t.ToolbarBackground = color.RGBA{40, 40, 40, 255}
	t.ButtonBackground = color.RGBA{60, 60, 60, 255}
	t.ButtonActive = color.RGBA{90, 90, 90, 255}
	t.ButtonText = color.RGBA{230, 230, 230, 255}
	t.Mask = color.RGBA{0, 0, 0, 160}
	return t
}

// HighContrast returns the built-in high contrast theme.
func HighContrast() *Theme {
	t := Default()
	t.Name = "HighContrast"
	t.Background = color.RGBA{0, 0, 0, 255}
	t.Foreground = color.RGBA{255, 255, 0, 255}
	t.ToolbarBackground = color.RGBA{0, 0, 0, 255}
	t.ButtonBackground = color.RGBA{0, 0, 0, 255}
	t.ButtonActive = color.RGBA{255, 255, 0, 255}
	t.ButtonText = color.RGBA{255, 255, 255, 255}
	t.Border = color.RGBA{255, 255, 0, 255}
	t.Handle = color.RGBA{255, 255, 0, 255}
	t.Guide = color.RGBA{0, 255, 255, 255}
	return t
}

var builtins = map[string]func() *Theme{
	"default":       Default,
	"dark":          Dark,
	"high_contrast": HighContrast,
}

// Builtin returns a copy of the named built-in theme.
func Builtin(name string) (*Theme, bool) {
	fn, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lists the built-in theme names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
