package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/cardalign/internal/theme"
)

// Window holds editor window settings.
type Window struct {
	Width       int
	Height      int
	MaskOpacity float64
	HandleSize  int
	Guide       bool
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Save   bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Title   string
	Output  string
	Format  string
	Quality int
	Padding float64
	Theme   string
	Window  Window
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Format:  "jpeg",
		Quality: 90,
		Padding: 30,
		Window: Window{
			Width:       600,
			Height:      840,
			MaskOpacity: 0.5,
			HandleSize:  10,
			Guide:       true,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// LookupTheme returns the named theme, preferring definitions from the config file.
func (c *Config) LookupTheme(name string, loader *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[name]; ok {
		cp := *t
		return &cp, nil
	}
	if loader == nil {
		loader = theme.NewLoader()
	}
	return loader.Load(name)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Title != "" {
		fmt.Fprintf(&sb, "title = %s\n", c.Title)
	}
	if c.Output != "" {
		fmt.Fprintf(&sb, "output = %s\n", c.Output)
	}
	fmt.Fprintf(&sb, "format = %s\n", c.Format)
	fmt.Fprintf(&sb, "quality = %d\n", c.Quality)
	fmt.Fprintf(&sb, "padding = %g\n", c.Padding)
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[window]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Window.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Window.Height)
	fmt.Fprintf(&sb, "mask_opacity = %g\n", c.Window.MaskOpacity)
	fmt.Fprintf(&sb, "handle_size = %d\n", c.Window.HandleSize)
	fmt.Fprintf(&sb, "guide = %v\n", c.Window.Guide)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sorted for deterministic output
	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.FormatColor(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
