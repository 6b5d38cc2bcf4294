package transform

// State is the mutable transform owned by one editor. It is not safe for
// concurrent use; the editor serializes access.
type State struct {
	t Transform
}

// NewState returns a state holding the initial transform.
func NewState() *State {
	return &State{t: Initial()}
}

// Snapshot returns a copy of the current transform.
func (s *State) Snapshot() Transform { return s.t }

// Rotate adds delta degrees, keeping the result in [0, 360).
func (s *State) Rotate(delta float64) {
	if !finite(delta) {
		return
	}
	s.t.RotationDeg = NormalizeDegrees(s.t.RotationDeg + delta)
}

// Zoom adds delta to the scale and clamps it to [MinScale, MaxScale].
func (s *State) Zoom(delta float64) {
	if !finite(delta) {
		return
	}
	s.t.Scale = ClampScale(s.t.Scale + delta)
}

// Reset restores the default transform.
func (s *State) Reset() { s.t = Defaults() }

// Scale returns the current zoom.
func (s *State) Scale() float64 { return s.t.Scale }

// SetScale sets the zoom, clamped to the supported range.
func (s *State) SetScale(v float64) {
	if !finite(v) {
		return
	}
	s.t.Scale = ClampScale(v)
}

// Offset returns the pan offset in viewport pixels.
func (s *State) Offset() (float64, float64) { return s.t.X, s.t.Y }

// SetOffset sets the pan offset. Offsets are unconstrained.
func (s *State) SetOffset(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	s.t.X, s.t.Y = x, y
}

// SetBrightness stores a brightness percentage as delivered by its control.
func (s *State) SetBrightness(pct float64) {
	if !finite(pct) {
		return
	}
	s.t.BrightnessPct = pct
}

// SetContrast stores a contrast percentage as delivered by its control.
func (s *State) SetContrast(pct float64) {
	if !finite(pct) {
		return
	}
	s.t.ContrastPct = pct
}
