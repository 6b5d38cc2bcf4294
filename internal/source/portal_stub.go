//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package source

import (
	"context"
	"errors"
	"image"
)

func capturePortal(context.Context, bool) (image.Image, error) {
	return nil, errors.New("screenshot portal is not supported on this platform")
}
