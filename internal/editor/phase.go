package editor

// Phase is the lifecycle stage of an editor.
type Phase int

const (
	Loading Phase = iota
	Ready
	Exporting
	Closed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Exporting:
		return "exporting"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Outcome records how a closed editor ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	Confirmed
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	}
	return "none"
}
