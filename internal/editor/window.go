package editor

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/cardalign/internal/gesture"
	"github.com/example/cardalign/internal/layout"
	"github.com/example/cardalign/internal/theme"
)

const (
	rotateStep = 90
	zoomStep   = 0.1
	colorStep  = 5
)

// closeEvent asks the window loop to exit once the editor has closed.
type closeEvent struct{}

// Window is the desktop front end of an Editor.
type Window struct {
	ed    *Editor
	theme *theme.Theme

	width, height int
	buttons       []*button
	hover         int
	pressed       bool

	// drag tracks the mouse button emulating a touch contact.
	drag   mouse.Button
	anchor gesture.Point

	// send repaints from other goroutines; nil until Main runs.
	send func(interface{})
}

// NewWindow returns a window driving ed. A nil theme selects the default.
func NewWindow(ed *Editor, th *theme.Theme) *Window {
	if th == nil {
		th = theme.Default()
	}
	vp := ed.Viewport()
	w := &Window{
		ed:     ed,
		theme:  th,
		width:  int(vp.W),
		height: int(vp.H) + toolbarHeight + statusHeight,
		hover:  -1,
	}
	w.buttons = []*button{
		{label: "Rotate L", action: func() { ed.Rotate(-rotateStep) }},
		{label: "Rotate R", action: func() { ed.Rotate(rotateStep) }},
		{label: "Zoom -", action: func() { ed.Zoom(-zoomStep) }},
		{label: "Zoom +", action: func() { ed.Zoom(zoomStep) }},
		{label: "Reset", action: func() { ed.Reset() }},
		{label: "Crop", action: func() { ed.ToggleCropMode() }, toggled: ed.CropMode},
		{label: "B-", action: func() { ed.AdjustBrightness(-colorStep) }},
		{label: "B+", action: func() { ed.AdjustBrightness(colorStep) }},
		{label: "C-", action: func() { ed.AdjustContrast(-colorStep) }},
		{label: "C+", action: func() { ed.AdjustContrast(colorStep) }},
		{label: "Cancel", action: w.cancel, enabled: w.canCancel},
		{label: "Confirm", action: w.confirm, enabled: w.canConfirm},
	}
	layoutButtons(w.buttons)
	return w
}

// Run executes the UI loop using shiny's driver.
func (w *Window) Run() { driver.Main(w.Main) }

func (w *Window) Main(s screen.Screen) {
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: w.width, Height: w.height, Title: w.ed.Title()})
	if err != nil {
		w.ed.logger.Printf("editor: new window: %v", err)
		_ = w.ed.Cancel()
		return
	}
	defer win.Release()

	out := newSender(win.Send)
	// stop runs before Release so nothing is sent to a released window.
	defer out.stop()
	w.send = out.Send
	go watchClose(w.ed.Done(), out)

	for {
		switch e := win.NextEvent().(type) {
		case closeEvent:
			return
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				w.closeEditor()
				return
			}
		case size.Event:
			w.resize(e.WidthPx, e.HeightPx)
			win.Send(paint.Event{})
		case paint.Event:
			w.paint(s, win)
		case mouse.Event:
			if w.handleMouse(e) {
				win.Send(paint.Event{})
			}
		case touch.Event:
			e.Y -= toolbarHeight
			if w.ed.HandleTouch(e) {
				win.Send(paint.Event{})
			}
		case key.Event:
			if w.handleKey(e) {
				win.Send(paint.Event{})
			}
		case error:
			w.ed.logger.Printf("editor: window: %v", e)
		}
	}
}

// sender forwards events to a window until stopped. Events sent after stop
// are dropped.
type sender struct {
	mu      sync.Mutex
	stopped bool
	quit    chan struct{}
	send    func(interface{})
}

func newSender(send func(interface{})) *sender {
	return &sender{send: send, quit: make(chan struct{})}
}

func (s *sender) Send(e interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.send(e)
	}
}

func (s *sender) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		close(s.quit)
	}
}

// watchClose sends closeEvent once done is closed, unless out stops first.
func watchClose(done <-chan struct{}, out *sender) {
	select {
	case <-done:
		out.Send(closeEvent{})
	case <-out.quit:
	}
}

func (w *Window) resize(width, height int) {
	w.width, w.height = width, height
	w.ed.Resize(viewportFor(width, height))
}

// viewportFor returns the photo area left between the toolbar and status bar.
func viewportFor(width, height int) layout.Size {
	h := height - toolbarHeight - statusHeight
	if h < 0 {
		h = 0
	}
	return layout.Sz(width, h)
}

func (w *Window) paint(s screen.Screen, win screen.Window) {
	if w.width <= 0 || w.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{w.width, w.height})
	if err != nil {
		w.ed.logger.Printf("editor: new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	draw.Draw(dst, dst.Bounds(), &image.Uniform{w.theme.Background}, image.Point{}, draw.Src)

	frame, err := w.ed.Frame()
	switch {
	case err == nil:
		draw.Draw(dst, frame.Bounds().Add(image.Pt(0, toolbarHeight)), frame, image.Point{}, draw.Src)
	case !errors.Is(err, ErrNotLoaded):
		w.ed.logger.Printf("editor: frame: %v", err)
	}
	drawToolbar(dst, w.theme, w.buttons, w.hover, w.pressed)
	drawStatus(dst, w.theme, statusText(w.ed))

	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}

// handleMouse maps the toolbar, a left drag to a one-contact pan, a right drag
// to a pinch against a fixed anchor at the viewport center and the wheel to
// zoom. It reports whether a repaint is needed.
func (w *Window) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	if p.Y < toolbarHeight && w.drag == mouse.ButtonNone {
		idx := hitButton(w.buttons, p)
		changed := idx != w.hover
		w.hover = idx
		switch e.Direction {
		case mouse.DirPress:
			w.pressed = true
			return true
		case mouse.DirRelease:
			w.pressed = false
			if idx >= 0 && e.Button == mouse.ButtonLeft && w.buttons[idx].isEnabled() {
				w.buttons[idx].action()
			}
			return true
		}
		return changed
	}
	if w.hover != -1 {
		w.hover = -1
		w.pressed = false
	}

	pt := gesture.Point{X: float64(e.X), Y: float64(e.Y) - toolbarHeight}
	switch {
	case e.Button.IsWheel():
		if e.Direction != mouse.DirStep {
			return false
		}
		switch e.Button {
		case mouse.ButtonWheelUp:
			return w.ed.Zoom(zoomStep)
		case mouse.ButtonWheelDown:
			return w.ed.Zoom(-zoomStep)
		}
		return false
	case e.Direction == mouse.DirPress && w.drag == mouse.ButtonNone:
		switch e.Button {
		case mouse.ButtonLeft:
			w.drag = e.Button
			return w.ed.TouchStart([]gesture.Point{pt})
		case mouse.ButtonRight:
			w.drag = e.Button
			vp := w.ed.Viewport()
			cx, cy := vp.Center()
			w.anchor = gesture.Point{X: cx, Y: cy}
			return w.ed.TouchStart([]gesture.Point{w.anchor, pt})
		}
	case e.Direction == mouse.DirRelease && e.Button == w.drag:
		w.drag = mouse.ButtonNone
		w.ed.TouchEnd()
		return true
	case e.Direction == mouse.DirNone && w.drag != mouse.ButtonNone:
		if w.drag == mouse.ButtonRight {
			return w.ed.TouchMove([]gesture.Point{w.anchor, pt})
		}
		return w.ed.TouchMove([]gesture.Point{pt})
	}
	return false
}

// handleKey applies keyboard shortcuts and reports whether a repaint is needed.
func (w *Window) handleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	switch e.Code {
	case key.CodeReturnEnter:
		w.confirm()
		return true
	case key.CodeEscape:
		w.cancel()
		return true
	}
	switch e.Rune {
	case 'r':
		return w.ed.Rotate(rotateStep)
	case 'R':
		return w.ed.Rotate(-rotateStep)
	case '+', '=':
		return w.ed.Zoom(zoomStep)
	case '-', '_':
		return w.ed.Zoom(-zoomStep)
	case '0':
		return w.ed.Reset()
	case 'c', 'C':
		return w.ed.ToggleCropMode()
	case '[':
		return w.ed.AdjustBrightness(-colorStep)
	case ']':
		return w.ed.AdjustBrightness(colorStep)
	case '{':
		return w.ed.AdjustContrast(-colorStep)
	case '}':
		return w.ed.AdjustContrast(colorStep)
	}
	return false
}

func (w *Window) canConfirm() bool { return w.ed.Phase() == Ready }

func (w *Window) canCancel() bool {
	p := w.ed.Phase()
	return p == Loading || p == Ready
}

// confirm starts the export on its own goroutine so the window keeps painting.
func (w *Window) confirm() {
	if !w.canConfirm() {
		return
	}
	go func() {
		// Failures are logged by the editor, which stays open for a retry.
		_, _ = w.ed.Confirm(context.Background())
		w.repaint()
	}()
}

func (w *Window) cancel() {
	if err := w.ed.Cancel(); err != nil {
		w.ed.logger.Printf("editor: cancel: %v", err)
	}
}

func (w *Window) repaint() {
	if w.send != nil {
		w.send(paint.Event{})
	}
}

// closeEditor cancels the editor when the window goes away, waiting out an
// export in flight.
func (w *Window) closeEditor() {
	for {
		if err := w.ed.Cancel(); !errors.Is(err, ErrBusy) {
			return
		}
		select {
		case <-w.ed.Done():
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
}
