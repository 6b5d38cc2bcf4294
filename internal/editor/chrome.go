package editor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/cardalign/internal/theme"
)

const (
	toolbarHeight = 28
	statusHeight  = 22
	buttonPad     = 8
)

// buttonState describes the visual state of a toolbar button.
type buttonState int

const (
	stateDefault buttonState = iota
	stateHover
	statePressed
)

type button struct {
	label  string
	rect   image.Rectangle
	action func()
	// toggled reports whether the button shows as active, for example crop mode.
	toggled func() bool
	// enabled is nil for always-enabled buttons.
	enabled func() bool
}

func (b *button) isEnabled() bool { return b.enabled == nil || b.enabled() }

func (b *button) draw(dst *image.RGBA, th *theme.Theme, state buttonState) {
	bg := th.ButtonBackground
	if state != stateDefault || (b.toggled != nil && b.toggled()) {
		bg = th.ButtonActive
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, b.rect, th.ButtonText, 1)
	txt := color.Color(th.ButtonText)
	if !b.isEnabled() {
		txt = th.ButtonActive
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(txt), Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+buttonPad/2, b.rect.Min.Y+18)}
	d.DrawString(b.label)
}

// layoutButtons places buttons left to right, each as wide as its label.
func layoutButtons(buttons []*button) {
	d := &font.Drawer{Face: basicfont.Face7x13}
	x := 2
	for _, b := range buttons {
		w := d.MeasureString(b.label).Ceil() + buttonPad
		b.rect = image.Rect(x, 2, x+w, toolbarHeight-2)
		x += w + 2
	}
}

func hitButton(buttons []*button, p image.Point) int {
	for i, b := range buttons {
		if p.In(b.rect) {
			return i
		}
	}
	return -1
}

func drawToolbar(dst *image.RGBA, th *theme.Theme, buttons []*button, hover int, pressed bool) {
	r := image.Rect(0, 0, dst.Bounds().Dx(), toolbarHeight)
	draw.Draw(dst, r, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i, b := range buttons {
		state := stateDefault
		if i == hover {
			state = stateHover
			if pressed {
				state = statePressed
			}
		}
		b.draw(dst, th, state)
	}
}

func statusText(ed *Editor) string {
	t := ed.Transform()
	s := fmt.Sprintf("%s  zoom %.2f  rotate %.0f  pan %.0f,%.0f  brightness %.0f%%  contrast %.0f%%",
		ed.Phase(), t.Scale, t.RotationDeg, t.X, t.Y, t.BrightnessPct, t.ContrastPct)
	if ed.CropMode() {
		s += "  crop"
	}
	return s
}

func drawStatus(dst *image.RGBA, th *theme.Theme, text string) {
	b := dst.Bounds()
	r := image.Rect(0, b.Max.Y-statusHeight, b.Dx(), b.Max.Y)
	draw.Draw(dst, r, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(r.Min.X+6, r.Min.Y+15)}
	d.DrawString(text)
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}
