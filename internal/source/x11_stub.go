//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package source

import (
	"context"
	"errors"
	"image"
)

func captureX11(context.Context, uint32, bool) (image.Image, error) {
	return nil, errors.New("X11 capture is not supported on this platform")
}
