package clipboard

import "errors"

var (
	ErrNoDisplay   = errors.New("clipboard: requires DISPLAY or WAYLAND_DISPLAY")
	ErrNoImage     = errors.New("clipboard: no image data")
	ErrUnsupported = errors.New("clipboard: not supported in this build")
)
