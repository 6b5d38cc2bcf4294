// Package gesture turns multi-point touch input into pan and pinch updates of
// a transform.
package gesture

import (
	"math"

	"golang.org/x/mobile/event/touch"
)

// Point is a contact position in viewport pixels.
type Point struct {
	X, Y float64
}

// Target receives the semantic result of a gesture.
type Target interface {
	Scale() float64
	SetScale(float64)
	Offset() (float64, float64)
	SetOffset(x, y float64)
}

// Kind identifies the interaction a session is tracking.
type Kind int

const (
	KindNone Kind = iota
	KindPan
	KindPinch
)

func (k Kind) String() string {
	switch k {
	case KindPan:
		return "pan"
	case KindPinch:
		return "pinch"
	default:
		return "none"
	}
}

// Session lives from touch start to touch end of one continuous interaction.
type Session struct {
	Kind Kind
	// Origin is the pointer position a pan started from.
	Origin Point
	// StartX and StartY are the pan offset when the pan started.
	StartX, StartY float64
	// LastDist is the contact distance seen by the previous pinch event.
	LastDist float64
}

// Tracker owns the current gesture session, if any.
type Tracker struct {
	target  Target
	session *Session

	contacts map[touch.Sequence]Point
	order    []touch.Sequence
}

// NewTracker returns a tracker driving target.
func NewTracker(target Target) *Tracker {
	return &Tracker{target: target, contacts: map[touch.Sequence]Point{}}
}

// Active reports whether a session is open.
func (t *Tracker) Active() bool { return t.session != nil }

// Kind reports the kind of the open session.
func (t *Tracker) Kind() Kind {
	if t.session == nil {
		return KindNone
	}
	return t.session.Kind
}

// Session returns a copy of the open session.
func (t *Tracker) Session() (Session, bool) {
	if t.session == nil {
		return Session{}, false
	}
	return *t.session, true
}

// Start begins a session for the given contacts. One contact starts a pan, two
// start a pinch. A pan that gains a second contact becomes a pinch.
func (t *Tracker) Start(points []Point) {
	switch len(points) {
	case 1:
		x, y := t.target.Offset()
		t.session = &Session{Kind: KindPan, Origin: points[0], StartX: x, StartY: y}
	case 2:
		t.session = &Session{Kind: KindPinch, LastDist: distance(points[0], points[1])}
	default:
		t.session = nil
	}
}

// Move applies the contacts to the target. It returns true when the event was
// consumed and the host should not scroll or zoom natively.
func (t *Tracker) Move(points []Point) bool {
	s := t.session
	if s == nil {
		return false
	}
	switch s.Kind {
	case KindPinch:
		if len(points) < 2 {
			t.session = nil
			return false
		}
		if len(points) != 2 {
			return true
		}
		d := distance(points[0], points[1])
		if s.LastDist > 0 {
			t.target.SetScale(t.target.Scale() * d / s.LastDist)
		}
		s.LastDist = d
		return true
	case KindPan:
		if len(points) == 2 {
			t.Start(points)
			return true
		}
		if len(points) != 1 {
			return true
		}
		p := points[0]
		t.target.SetOffset(s.StartX+(p.X-s.Origin.X), s.StartY+(p.Y-s.Origin.Y))
		return true
	}
	return false
}

// End clears the session. It is safe to call without an open session.
func (t *Tracker) End() {
	t.session = nil
}

// Reset clears the session and forgets every contact still down.
func (t *Tracker) Reset() {
	t.session = nil
	t.contacts = map[touch.Sequence]Point{}
	t.order = nil
}

// HandleTouch feeds a raw touch event through Start, Move and End. Contacts are
// ordered by the order in which they went down.
func (t *Tracker) HandleTouch(e touch.Event) bool {
	p := Point{X: float64(e.X), Y: float64(e.Y)}
	switch e.Type {
	case touch.TypeBegin:
		if _, ok := t.contacts[e.Sequence]; !ok {
			t.order = append(t.order, e.Sequence)
		}
		t.contacts[e.Sequence] = p
		t.Start(t.points())
		return true
	case touch.TypeMove:
		if _, ok := t.contacts[e.Sequence]; !ok {
			return false
		}
		t.contacts[e.Sequence] = p
		return t.Move(t.points())
	case touch.TypeEnd:
		delete(t.contacts, e.Sequence)
		for i, seq := range t.order {
			if seq == e.Sequence {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
		t.End()
		return true
	}
	return false
}

// Contacts returns the number of contacts currently down.
func (t *Tracker) Contacts() int { return len(t.contacts) }

func (t *Tracker) points() []Point {
	pts := make([]Point, 0, len(t.order))
	for _, seq := range t.order {
		pts = append(pts, t.contacts[seq])
	}
	return pts
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
