//go:build linux || freebsd || openbsd || netbsd || dragonfly

package source

import (
	"context"
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func captureX11(ctx context.Context, id uint32, root bool) (image.Image, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	drawable := xproto.Drawable(id)
	if root {
		screen := setup.DefaultScreen(conn)
		if screen == nil {
			return nil, fmt.Errorf("xproto screen unavailable")
		}
		drawable = xproto.Drawable(screen.Root)
	}

	geom, err := xproto.GetGeometry(conn, drawable).Reply()
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, drawable, 0, 0, geom.Width, geom.Height, ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("pixels: %w", err)
	}

	bits := 0
	for _, f := range setup.PixmapFormats {
		if f.Depth == reply.Depth {
			bits = int(f.BitsPerPixel)
			break
		}
	}
	if bits == 0 {
		return nil, fmt.Errorf("unsupported depth %d", reply.Depth)
	}
	return zPixmapToRGBA(reply.Data, int(geom.Width), int(geom.Height), bits)
}
