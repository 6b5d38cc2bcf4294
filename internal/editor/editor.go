// Package editor owns one photo alignment session: the transform, the gesture
// tracker, the crop state and the Loading, Ready, Exporting, Closed lifecycle.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"golang.org/x/mobile/event/touch"

	"github.com/example/cardalign/internal/export"
	"github.com/example/cardalign/internal/gesture"
	"github.com/example/cardalign/internal/layout"
	"github.com/example/cardalign/internal/render"
	"github.com/example/cardalign/internal/source"
	"github.com/example/cardalign/internal/transform"
)

var (
	ErrNotLoaded = errors.New("editor: image not loaded")
	ErrBusy      = errors.New("editor: export in progress")
	ErrClosed    = errors.New("editor: closed")
)

// DefaultViewport is used until the first Resize.
var DefaultViewport = layout.Size{W: 600, H: 840}

// Editor is safe for concurrent use. The window loop, the export goroutine and
// scripted callers may share one instance.
type Editor struct {
	mu sync.Mutex

	title    string
	phase    Phase
	outcome  Outcome
	err      error
	history  []Phase
	done     chan struct{}
	src      image.Image
	crop     image.Rectangle
	cropMode bool
	viewport layout.Size
	overlay  layout.Rect

	state   *transform.State
	tracker *gesture.Tracker

	loader     source.Loader
	renderer   *render.Renderer
	exportOpts ExportOptions
	exportFn   func(context.Context, export.Request) (export.Result, error)

	onConfirm func(export.Result)
	onCancel  func()
	onPhase   func(Phase)
	logger    *log.Logger

	// pending holds transitions not yet delivered to onPhase; delivering is
	// set while one goroutine drains it.
	pending    []Phase
	delivering bool
}

// New returns an editor in the Loading phase.
func New(opts ...Option) *Editor {
	e := &Editor{
		phase:      Loading,
		history:    []Phase{Loading},
		done:       make(chan struct{}),
		viewport:   DefaultViewport,
		state:      transform.NewState(),
		loader:     source.Resolver{},
		exportOpts: DefaultExportOptions(),
		exportFn:   export.Export,
	}
	for _, o := range opts {
		o(e)
	}
	if e.renderer == nil {
		e.renderer = render.New(render.DefaultOptions())
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	e.tracker = gesture.NewTracker(e.state)
	e.overlay = layout.Guide(e.viewport)
	return e
}

// setPhase must be called with mu held. The returned func delivers pending
// transitions to the observer and must be called after unlocking.
func (e *Editor) setPhase(p Phase) func() {
	e.phase = p
	e.history = append(e.history, p)
	if p == Closed {
		close(e.done)
	}
	e.pending = append(e.pending, p)
	return e.deliver
}

// deliver hands queued transitions to onPhase in history order. Only one
// goroutine drains the queue at a time; transitions made by others meanwhile,
// including from inside the observer, are picked up by the same loop.
func (e *Editor) deliver() {
	e.mu.Lock()
	if e.delivering {
		e.mu.Unlock()
		return
	}
	e.delivering = true
	for len(e.pending) > 0 {
		p := e.pending[0]
		e.pending = e.pending[1:]
		fn := e.onPhase
		e.mu.Unlock()
		if fn != nil {
			fn(p)
		}
		e.mu.Lock()
	}
	e.delivering = false
	e.mu.Unlock()
}

// Load resolves ref through the configured loader and enters Ready. A decode
// failure leaves the editor in Loading with Err set.
func (e *Editor) Load(ctx context.Context, ref string) error {
	e.mu.Lock()
	if e.phase == Closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.phase != Loading {
		p := e.phase
		e.mu.Unlock()
		return fmt.Errorf("editor: load in phase %s", p)
	}
	loader := e.loader
	e.mu.Unlock()

	img, err := loader.Load(ctx, ref)
	if err != nil {
		e.mu.Lock()
		e.err = err
		e.mu.Unlock()
		e.logger.Printf("editor: load %s: %v", ref, err)
		return err
	}
	return e.SetImage(img)
}

// SetImage installs an already decoded image and enters Ready. The crop area
// becomes the full image extent.
func (e *Editor) SetImage(img image.Image) error {
	if img == nil {
		return ErrNotLoaded
	}
	e.mu.Lock()
	switch e.phase {
	case Closed:
		e.mu.Unlock()
		return ErrClosed
	case Loading:
	default:
		e.mu.Unlock()
		return fmt.Errorf("editor: image already loaded")
	}
	e.src = img
	e.crop = img.Bounds()
	e.err = nil
	notify := e.setPhase(Ready)
	e.mu.Unlock()
	notify()
	return nil
}

// ready runs fn under the lock when the editor is interactive.
func (e *Editor) ready(fn func()) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != Ready {
		return false
	}
	fn()
	return true
}

// Rotate adds delta degrees.
func (e *Editor) Rotate(delta float64) bool {
	return e.ready(func() { e.state.Rotate(delta) })
}

// Zoom adds delta to the scale.
func (e *Editor) Zoom(delta float64) bool {
	return e.ready(func() { e.state.Zoom(delta) })
}

// Pan moves the offset by dx and dy.
func (e *Editor) Pan(dx, dy float64) bool {
	return e.ready(func() {
		x, y := e.state.Offset()
		e.state.SetOffset(x+dx, y+dy)
	})
}

// Reset restores the default transform and leaves crop mode.
func (e *Editor) Reset() bool {
	return e.ready(func() {
		e.state.Reset()
		e.tracker.Reset()
		e.cropMode = false
	})
}

// SetBrightness sets the brightness percentage within the control range.
func (e *Editor) SetBrightness(pct float64) bool {
	return e.ready(func() { e.state.SetBrightness(transform.ClampPercent(pct)) })
}

// SetContrast sets the contrast percentage within the control range.
func (e *Editor) SetContrast(pct float64) bool {
	return e.ready(func() { e.state.SetContrast(transform.ClampPercent(pct)) })
}

// AdjustBrightness adds delta to the brightness percentage.
func (e *Editor) AdjustBrightness(delta float64) bool {
	return e.ready(func() {
		e.state.SetBrightness(transform.ClampPercent(e.state.Snapshot().BrightnessPct + delta))
	})
}

// AdjustContrast adds delta to the contrast percentage.
func (e *Editor) AdjustContrast(delta float64) bool {
	return e.ready(func() {
		e.state.SetContrast(transform.ClampPercent(e.state.Snapshot().ContrastPct + delta))
	})
}

// ToggleCropMode flips crop mode.
func (e *Editor) ToggleCropMode() bool {
	return e.ready(func() { e.cropMode = !e.cropMode })
}

// SetCropMode enters or leaves crop mode.
func (e *Editor) SetCropMode(on bool) bool {
	return e.ready(func() { e.cropMode = on })
}

// TouchStart opens a gesture session.
func (e *Editor) TouchStart(points []gesture.Point) bool {
	return e.ready(func() { e.tracker.Start(points) })
}

// TouchMove updates the open gesture session.
func (e *Editor) TouchMove(points []gesture.Point) bool {
	changed := false
	e.ready(func() { changed = e.tracker.Move(points) })
	return changed
}

// TouchEnd closes the gesture session. It is accepted in any phase.
func (e *Editor) TouchEnd() {
	e.mu.Lock()
	e.tracker.End()
	e.mu.Unlock()
}

// HandleTouch feeds a raw touch event to the gesture tracker. Touch ends are
// accepted in any phase so a contact lifted during an export is not left
// behind.
func (e *Editor) HandleTouch(ev touch.Event) bool {
	if ev.Type == touch.TypeEnd {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.tracker.HandleTouch(ev)
	}
	changed := false
	e.ready(func() { changed = e.tracker.HandleTouch(ev) })
	return changed
}

// Resize sets the viewport and recomputes the card overlay.
func (e *Editor) Resize(vp layout.Size) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewport = vp
	e.overlay = layout.Guide(vp)
}

// Frame renders the current state at the viewport size.
func (e *Editor) Frame() (*image.RGBA, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.src == nil {
		return nil, ErrNotLoaded
	}
	return e.renderer.Frame(e.src, render.Input{
		Surface:   e.viewport,
		Transform: e.state.Snapshot(),
		Crop:      e.crop,
		CropMode:  e.cropMode,
		Guide:     e.overlay,
		Title:     e.title,
	})
}

// Confirm exports the current state. On success the editor closes as
// confirmed and OnConfirm receives the payload. On failure it returns to Ready
// and OnConfirm is not called. A confirm while another is in flight returns
// ErrBusy.
func (e *Editor) Confirm(ctx context.Context) (export.Result, error) {
	e.mu.Lock()
	switch e.phase {
	case Exporting:
		e.mu.Unlock()
		return export.Result{}, ErrBusy
	case Loading:
		e.mu.Unlock()
		return export.Result{}, ErrNotLoaded
	case Closed:
		e.mu.Unlock()
		return export.Result{}, ErrClosed
	}
	req := export.Request{
		Source:    e.src,
		Transform: e.state.Snapshot(),
		Crop:      e.crop,
		Overlay:   e.overlay,
		Viewport:  e.viewport,
		Padding:   e.exportOpts.Padding,
		Format:    e.exportOpts.Format,
		Quality:   e.exportOpts.Quality,
	}
	e.tracker.Reset()
	notify := e.setPhase(Exporting)
	run := e.exportFn
	e.mu.Unlock()
	notify()

	res, err := run(ctx, req)

	e.mu.Lock()
	if err != nil {
		e.err = err
		notify = e.setPhase(Ready)
		e.mu.Unlock()
		e.logger.Printf("editor: export: %v", err)
		notify()
		return export.Result{}, err
	}
	e.outcome = Confirmed
	notify = e.setPhase(Closed)
	onConfirm := e.onConfirm
	e.mu.Unlock()
	notify()
	if onConfirm != nil {
		onConfirm(res)
	}
	return res, nil
}

// Cancel closes the editor without output. It fails with ErrBusy while an
// export is in flight and does nothing once closed.
func (e *Editor) Cancel() error {
	e.mu.Lock()
	switch e.phase {
	case Exporting:
		e.mu.Unlock()
		return ErrBusy
	case Closed:
		e.mu.Unlock()
		return nil
	}
	e.outcome = Cancelled
	e.tracker.Reset()
	notify := e.setPhase(Closed)
	onCancel := e.onCancel
	e.mu.Unlock()
	notify()
	if onCancel != nil {
		onCancel()
	}
	return nil
}

// Done is closed when the editor reaches Closed.
func (e *Editor) Done() <-chan struct{} { return e.done }

func (e *Editor) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

func (e *Editor) Outcome() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.outcome
}

// Err returns the last load or export failure.
func (e *Editor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Editor) Transform() transform.Transform {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}

// Overlay returns the card guide in viewport pixels.
func (e *Editor) Overlay() layout.Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.overlay
}

func (e *Editor) Viewport() layout.Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

// CropArea returns the exported source region.
func (e *Editor) CropArea() image.Rectangle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.crop
}

func (e *Editor) CropMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cropMode
}

// Gesture reports the kind of the open gesture session.
func (e *Editor) Gesture() gesture.Kind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Kind()
}

func (e *Editor) Title() string { return e.title }

// Transitions returns every phase entered so far, starting with Loading.
func (e *Editor) Transitions() []Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Phase(nil), e.history...)
}
