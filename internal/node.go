package internal

// Node is the minimal contract the engine needs from a reactive value:
// read, write with synchronous notification, and change subscription.
type Node interface {
	Get() any
	Set(v any)
	Watch(fn func()) (stop func())
}

// Direction selects which way a link propagates. Bidirectional is the
// zero value; AToB and BToA also name a single propagation step.
type Direction int

const (
	Bidirectional Direction = iota
	AToB
	BToA
)

// Phase marks the propagation currently writing, if any. It is the
// reentrancy guard: a single flag shared by both directions, never a
// counter or stack.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePushAB
	PhasePushBA
)

func isEqual(a, b any) bool {
	return a == b
}
