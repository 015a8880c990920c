package nfa

import "fmt"

// InvariantError reports a state referenced outside the automaton's numbering space.
// It is raised by a panic on construction; it never describes a runtime condition.
type InvariantError struct {
	Where  string // "starting", "finished", "delta key" or "delta target"
	State  State  // Offending state
	States int    // Size of the numbering space
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("nfa invariant violated: %s state %d outside [0, %d)", e.Where, e.State, e.States)
}
