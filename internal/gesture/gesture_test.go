package gesture

import (
	"math"
	"testing"

	"golang.org/x/mobile/event/touch"

	"github.com/example/cardalign/internal/transform"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPanIsAbsoluteFromSessionStart(t *testing.T) {
	st := transform.NewState()
	st.SetOffset(5, 7)
	tr := NewTracker(st)

	tr.Start([]Point{{X: 100, Y: 100}})
	if tr.Kind() != KindPan {
		t.Fatalf("expected pan session, got %v", tr.Kind())
	}
	for _, p := range []Point{{X: 110, Y: 90}, {X: 130, Y: 80}, {X: 120, Y: 85}} {
		if !tr.Move([]Point{p}) {
			t.Fatalf("pan move not consumed")
		}
	}
	x, y := st.Offset()
	if !near(x, 25) || !near(y, -8) {
		t.Fatalf("offset = (%v,%v), want (25,-8)", x, y)
	}
	tr.End()
	if tr.Active() {
		t.Fatalf("session should be cleared")
	}
}

func TestPinchRatioIsIncremental(t *testing.T) {
	st := transform.NewState()
	st.SetScale(1)
	tr := NewTracker(st)

	tr.Start([]Point{{X: 0, Y: 0}, {X: 100, Y: 0}})
	if tr.Kind() != KindPinch {
		t.Fatalf("expected pinch session, got %v", tr.Kind())
	}
	tr.Move([]Point{{X: 0, Y: 0}, {X: 120, Y: 0}})
	if !near(st.Scale(), 1.2) {
		t.Fatalf("after D1 scale = %v, want 1.2", st.Scale())
	}
	// D2/D1 relative to the previous event, not the session start distance.
	tr.Move([]Point{{X: 0, Y: 0}, {X: 180, Y: 0}})
	if !near(st.Scale(), 1.2*180/120) {
		t.Fatalf("after D2 scale = %v, want %v", st.Scale(), 1.2*180/120)
	}
	s, _ := tr.Session()
	if !near(s.LastDist, 180) {
		t.Fatalf("last distance = %v, want 180", s.LastDist)
	}
}

func TestPinchClampsScale(t *testing.T) {
	st := transform.NewState()
	st.SetScale(2.5)
	tr := NewTracker(st)
	tr.Start([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	tr.Move([]Point{{X: 0, Y: 0}, {X: 100, Y: 0}})
	if st.Scale() != transform.MaxScale {
		t.Fatalf("scale = %v, want %v", st.Scale(), transform.MaxScale)
	}
	tr.Move([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	if st.Scale() != transform.MinScale {
		t.Fatalf("scale = %v, want %v", st.Scale(), transform.MinScale)
	}
}

func TestPinchZeroDistanceDoesNotDivide(t *testing.T) {
	st := transform.NewState()
	st.SetScale(1)
	tr := NewTracker(st)
	tr.Start([]Point{{X: 5, Y: 5}, {X: 5, Y: 5}})
	tr.Move([]Point{{X: 0, Y: 0}, {X: 50, Y: 0}})
	if st.Scale() != 1 {
		t.Fatalf("scale changed from zero start distance: %v", st.Scale())
	}
	tr.Move([]Point{{X: 0, Y: 0}, {X: 100, Y: 0}})
	if !near(st.Scale(), 2) {
		t.Fatalf("scale = %v, want 2", st.Scale())
	}
}

func TestPinchDroppingToOneContactEndsSession(t *testing.T) {
	st := transform.NewState()
	tr := NewTracker(st)
	tr.Start([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	if tr.Move([]Point{{X: 3, Y: 3}}) {
		t.Fatalf("single contact should not be consumed by a pinch")
	}
	if tr.Active() {
		t.Fatalf("pinch session should end")
	}
	x, y := st.Offset()
	if x != 0 || y != 0 {
		t.Fatalf("offset changed: (%v,%v)", x, y)
	}
}

func TestPanGainingSecondContactBecomesPinch(t *testing.T) {
	st := transform.NewState()
	tr := NewTracker(st)
	tr.Start([]Point{{X: 0, Y: 0}})
	tr.Start([]Point{{X: 0, Y: 0}, {X: 40, Y: 30}})
	if tr.Kind() != KindPinch {
		t.Fatalf("expected pinch, got %v", tr.Kind())
	}
	s, _ := tr.Session()
	if !near(s.LastDist, 50) {
		t.Fatalf("last distance = %v, want 50", s.LastDist)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	tr := NewTracker(transform.NewState())
	tr.End()
	tr.End()
	if tr.Move([]Point{{X: 1, Y: 1}}) {
		t.Fatalf("move without a session should not be consumed")
	}
}

func TestHandleTouchSequence(t *testing.T) {
	st := transform.NewState()
	st.SetScale(1)
	tr := NewTracker(st)

	tr.HandleTouch(touch.Event{X: 10, Y: 10, Sequence: 1, Type: touch.TypeBegin})
	tr.HandleTouch(touch.Event{X: 30, Y: 25, Sequence: 1, Type: touch.TypeMove})
	if x, y := st.Offset(); !near(x, 20) || !near(y, 15) {
		t.Fatalf("offset = (%v,%v), want (20,15)", x, y)
	}

	tr.HandleTouch(touch.Event{X: 130, Y: 25, Sequence: 2, Type: touch.TypeBegin})
	if tr.Kind() != KindPinch || tr.Contacts() != 2 {
		t.Fatalf("expected pinch with two contacts, got %v/%d", tr.Kind(), tr.Contacts())
	}
	tr.HandleTouch(touch.Event{X: 230, Y: 25, Sequence: 2, Type: touch.TypeMove})
	if !near(st.Scale(), 2) {
		t.Fatalf("scale = %v, want 2", st.Scale())
	}

	tr.HandleTouch(touch.Event{X: 230, Y: 25, Sequence: 2, Type: touch.TypeEnd})
	if tr.Active() {
		t.Fatalf("touch end should clear the session")
	}
	// The remaining contact keeps moving without a session.
	if tr.HandleTouch(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeMove}) {
		t.Fatalf("move after end should not be consumed")
	}
	if x, y := st.Offset(); !near(x, 20) || !near(y, 15) {
		t.Fatalf("offset moved after end: (%v,%v)", x, y)
	}
	tr.HandleTouch(touch.Event{Sequence: 1, Type: touch.TypeEnd})
	if tr.Contacts() != 0 {
		t.Fatalf("expected no contacts, got %d", tr.Contacts())
	}
}

func TestHandleTouchUnknownMoveIgnored(t *testing.T) {
	tr := NewTracker(transform.NewState())
	if tr.HandleTouch(touch.Event{Sequence: 9, Type: touch.TypeMove}) {
		t.Fatalf("move of an unknown contact should be ignored")
	}
}

func TestPanGainingContactBecomesPinch(t *testing.T) {
	st := transform.NewState()
	st.SetScale(1)
	tr := NewTracker(st)

	tr.Start([]Point{{X: 0, Y: 0}})
	if !tr.Move([]Point{{X: 0, Y: 0}, {X: 50, Y: 0}}) {
		t.Fatal("move should be consumed")
	}
	if tr.Kind() != KindPinch {
		t.Fatalf("expected pinch, got %v", tr.Kind())
	}
	tr.Move([]Point{{X: 0, Y: 0}, {X: 100, Y: 0}})
	if !near(st.Scale(), 2) {
		t.Fatalf("scale %v, want 2", st.Scale())
	}
}

func TestResetForgetsContacts(t *testing.T) {
	st := transform.NewState()
	tr := NewTracker(st)
	tr.HandleTouch(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeBegin})
	tr.Reset()
	if tr.Active() || tr.Contacts() != 0 {
		t.Fatalf("active %v contacts %d", tr.Active(), tr.Contacts())
	}
	tr.HandleTouch(touch.Event{X: 5, Y: 5, Sequence: 2, Type: touch.TypeBegin})
	if tr.Kind() != KindPan || tr.Contacts() != 1 {
		t.Fatalf("kind %v contacts %d", tr.Kind(), tr.Contacts())
	}
	if tr.HandleTouch(touch.Event{Sequence: 1, Type: touch.TypeMove}) {
		t.Fatal("move of a forgotten contact should be ignored")
	}
}
