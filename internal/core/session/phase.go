package session

// Phase is the screen the session is on. Exactly one phase is current.
type Phase int

const (
	PhasePreSession Phase = iota
	PhaseActive
	PhaseSummary
)

func (p Phase) String() string {
	switch p {
	case PhasePreSession:
		return "pre-session"
	case PhaseActive:
		return "active"
	case PhaseSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// transitions lists the only allowed phase changes.
var transitions = map[Phase]Phase{
	PhasePreSession: PhaseActive,
	PhaseActive:     PhaseSummary,
	PhaseSummary:    PhaseActive,
}

// CanTransition reports whether moving from p to next is allowed.
func (p Phase) CanTransition(next Phase) bool {
	to, ok := transitions[p]
	return ok && to == next
}
