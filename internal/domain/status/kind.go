package status

// Kind is the closed enumeration driving rental lifecycle transitions.
// Statuses are labels/colors layered on top of a Kind; display customization
// never changes transition legality.
type Kind string

const (
	KindWaiting  Kind = "waiting"
	KindActive   Kind = "active"
	KindExpiring Kind = "expiring"
	KindClosed   Kind = "closed"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindWaiting, KindActive, KindExpiring, KindClosed:
		return true
	default:
		return false
	}
}

func (k Kind) IsTerminal() bool {
	return k == KindClosed
}

// CanTransitionTo validates the edge against
// waiting → active → expiring → closed, with closed reachable from any
// non-terminal state. Closed is terminal.
func (k Kind) CanTransitionTo(to Kind) bool {
	if !k.IsValid() || !to.IsValid() {
		return false
	}
	if k == KindClosed {
		return false
	}
	if to == KindClosed {
		return true
	}
	switch k {
	case KindWaiting:
		return to == KindActive
	case KindActive:
		return to == KindExpiring
	default:
		return false
	}
}

func Kinds() []Kind {
	return []Kind{KindWaiting, KindActive, KindExpiring, KindClosed}
}
