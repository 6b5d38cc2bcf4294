package source

import (
	"fmt"
	"image"
)

// zPixmapToRGBA converts BGR(X) ZPixmap rows as returned by GetImage.
func zPixmapToRGBA(data []byte, width, height, bitsPerPixel int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("empty geometry %dx%d", width, height)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	bpp := bitsPerPixel / 8
	if bpp < 3 {
		return nil, fmt.Errorf("unsupported pixel format %d bpp", bitsPerPixel)
	}
	stride := len(data) / height
	if stride*height != len(data) || stride < width*bpp {
		return nil, fmt.Errorf("unexpected stride for %d bytes", len(data))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			s := row[x*bpp:]
			d := dst[x*4:]
			d[0], d[1], d[2] = s[2], s[1], s[0]
			// Depth 24 visuals leave the pad byte undefined.
			d[3] = 0xff
		}
	}
	return img, nil
}
