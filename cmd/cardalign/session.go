package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/example/cardalign/internal/clipboard"
	"github.com/example/cardalign/internal/editor"
	"github.com/example/cardalign/internal/export"
	"github.com/example/cardalign/internal/layout"
	"github.com/example/cardalign/internal/render"
	"github.com/example/cardalign/internal/source"
)

var (
	newLoader   = func() source.Loader { return source.Resolver{} }
	copyImageFn = clipboard.WriteImage
)

// sessionFlags are shared by every command that opens an editor.
type sessionFlags struct {
	file    string
	title   string
	output  string
	format  string
	quality int
	padding float64
	width   int
	height  int
	copyOut bool
}

func (s *sessionFlags) register(fs *flag.FlagSet, r *root) {
	cfg := r.config
	fs.StringVar(&s.file, "file", "", "image to align: a path, clipboard:, portal: or x11:root / x11:<window id>")
	fs.StringVar(&s.title, "title", cfg.Title, "caption shown above the photo")
	fs.StringVar(&s.output, "output", cfg.Output, "where to write the card image, - for stdout")
	fs.StringVar(&s.format, "format", cfg.Format, "output format: jpeg, png or webp")
	fs.IntVar(&s.quality, "quality", cfg.Quality, "JPEG quality 1-100")
	fs.Float64Var(&s.padding, "padding", cfg.Padding, "bleed margin around the card in pixels")
	fs.IntVar(&s.width, "width", cfg.Window.Width, "viewport width in pixels")
	fs.IntVar(&s.height, "height", cfg.Window.Height, "viewport height in pixels")
	fs.BoolVar(&s.copyOut, "copy", false, "copy the card image to the clipboard")
}

// newEditor builds an editor configured from flags, config and theme. The
// image is not loaded yet.
func (r *root) newEditor(s *sessionFlags, opts ...editor.Option) (*editor.Editor, error) {
	format, err := export.ParseFormat(s.format)
	if err != nil {
		return nil, err
	}
	if s.width <= 0 || s.height <= 0 {
		return nil, fmt.Errorf("viewport %dx%d must be positive", s.width, s.height)
	}
	if s.padding < 0 {
		return nil, fmt.Errorf("padding must not be negative")
	}

	ropts := render.DefaultOptions()
	if r.activeTheme != nil {
		ropts = render.FromTheme(r.activeTheme)
	}
	if r.config != nil {
		if r.config.Window.MaskOpacity > 0 {
			ropts.Mask.Opacity = r.config.Window.MaskOpacity
		}
		if r.config.Window.HandleSize > 0 {
			ropts.Mask.HandleSize = r.config.Window.HandleSize
		}
		ropts.ShowGuide = r.config.Window.Guide
	}

	base := []editor.Option{
		editor.WithTitle(s.title),
		editor.WithViewport(layout.Sz(s.width, s.height)),
		editor.WithLoader(newLoader()),
		editor.WithRenderer(render.New(ropts)),
		editor.WithExportOptions(editor.ExportOptions{Format: format, Quality: s.quality, Padding: s.padding}),
	}
	return editor.New(append(base, opts...)...), nil
}

// outputPath picks where a payload goes when -output is not given.
func (s *sessionFlags) outputPath(format export.Format) string {
	if s.output != "" {
		return s.output
	}
	ref := s.file
	if ref == "" {
		return "card" + format.Ext()
	}
	for _, scheme := range []string{"clipboard:", "portal:", "x11:"} {
		if strings.HasPrefix(ref, scheme) {
			return "card" + format.Ext()
		}
	}
	base := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	return filepath.Join(filepath.Dir(ref), base+"-card"+format.Ext())
}

// deliver writes, copies and announces an exported card.
func (r *root) deliver(s *sessionFlags, res export.Result, stdout io.Writer) error {
	var preview image.Image
	if s.copyOut || r.exportAlerts {
		img, err := imaging.Decode(bytes.NewReader(res.Payload))
		if err != nil {
			return fmt.Errorf("decode exported card: %w", err)
		}
		preview = img
	}
	r.notifyExport(fmt.Sprintf("%dx%d %s", res.Size.X, res.Size.Y, res.Format), preview)

	if s.copyOut {
		if err := copyImageFn(preview); err != nil {
			return fmt.Errorf("copy card to clipboard: %w", err)
		}
		r.notifyCopy("card image")
		if s.output == "" {
			return nil
		}
	}

	path := s.outputPath(res.Format)
	if path == "-" {
		_, err := stdout.Write(res.Payload)
		return err
	}
	if err := os.WriteFile(path, res.Payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	r.notifySave(path)
	fmt.Fprintf(os.Stderr, "saved %s (%dx%d)\n", path, res.Size.X, res.Size.Y)
	return nil
}
