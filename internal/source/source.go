// Package source resolves image references into decoded images. A reference
// is a file path, "clipboard:", "portal:" (or "portal:interactive") for the
// desktop screenshot portal, or an X11 drawable written "x11:root" or
// "x11:<window id>".
package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/cardalign/internal/clipboard"
)

var (
	ErrEmptyRef       = errors.New("source: empty reference")
	ErrUnsupportedRef = errors.New("source: unsupported reference")
)

const (
	clipboardScheme = "clipboard:"
	x11Scheme       = "x11:"
	portalScheme    = "portal:"
)

// Loader decodes the image behind a reference.
type Loader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, ref string) (image.Image, error)

func (f LoaderFunc) Load(ctx context.Context, ref string) (image.Image, error) { return f(ctx, ref) }

// Resolver is the default Loader. Nil fields fall back to the built-in
// backends.
type Resolver struct {
	Clipboard func() (image.Image, error)
	X11       func(ctx context.Context, drawable uint32, root bool) (image.Image, error)
	Portal    func(ctx context.Context, interactive bool) (image.Image, error)
	Open      func(path string) (image.Image, error)
}

// Load implements Loader.
func (r Resolver) Load(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrEmptyRef
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case ref == clipboardScheme:
		read := r.Clipboard
		if read == nil {
			read = clipboard.ReadImage
		}
		img, err := read()
		if err != nil {
			return nil, fmt.Errorf("source: clipboard: %w", err)
		}
		return img, nil
	case strings.HasPrefix(ref, clipboardScheme):
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRef, ref)
	case strings.HasPrefix(ref, portalScheme):
		var interactive bool
		switch mode := strings.TrimPrefix(ref, portalScheme); mode {
		case "":
		case "interactive":
			interactive = true
		default:
			return nil, fmt.Errorf("%w: portal mode %q", ErrUnsupportedRef, mode)
		}
		grab := r.Portal
		if grab == nil {
			grab = capturePortal
		}
		img, err := grab(ctx, interactive)
		if err != nil {
			return nil, fmt.Errorf("source: portal: %w", err)
		}
		return img, nil
	case strings.HasPrefix(ref, x11Scheme):
		id, root, err := ParseDrawable(strings.TrimPrefix(ref, x11Scheme))
		if err != nil {
			return nil, err
		}
		grab := r.X11
		if grab == nil {
			grab = captureX11
		}
		img, err := grab(ctx, id, root)
		if err != nil {
			return nil, fmt.Errorf("source: x11: %w", err)
		}
		return img, nil
	}
	open := r.Open
	if open == nil {
		open = DecodeFile
	}
	return open(ref)
}

// ParseDrawable accepts "root" or a decimal or 0x prefixed window id.
func ParseDrawable(s string) (id uint32, root bool, err error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "root") {
		return 0, true, nil
	}
	v, perr := strconv.ParseUint(s, 0, 32)
	if perr != nil || v == 0 {
		return 0, false, fmt.Errorf("%w: x11 drawable %q", ErrUnsupportedRef, s)
	}
	return uint32(v), false, nil
}

// DecodeFile decodes an image file honoring its EXIF orientation.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer f.Close()
	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", path, err)
	}
	return img, nil
}
