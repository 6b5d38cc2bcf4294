package render

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	titleFontOnce sync.Once
	titleFont     *truetype.Font
	titleFontErr  error
)

// TitleFace returns a Go Regular face of the given point size.
func TitleFace(size float64) (font.Face, error) {
	titleFontOnce.Do(func() {
		titleFont, titleFontErr = truetype.Parse(goregular.TTF)
	})
	if titleFontErr != nil {
		return nil, titleFontErr
	}
	return truetype.NewFace(titleFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
