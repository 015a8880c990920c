package nfa

import (
	"slices"
	"strconv"
	"strings"
)

// State identifies a node of an automaton. It is meaningful only inside the automaton
// that owns it and carries no payload.
type State int

// Renumber shifts s into a state space that starts at offset.
func Renumber(s State, offset int) State {
	return s + State(offset)
}

// stateSet is a scratch set used while building tables.
type stateSet map[State]struct{}

func newStateSet(states ...State) stateSet {
	set := make(stateSet, len(states))
	set.add(states...)
	return set
}

func (s stateSet) add(states ...State) {
	for _, st := range states {
		s[st] = struct{}{}
	}
}

// addShifted inserts every state of src renumbered by offset.
func (s stateSet) addShifted(src []State, offset int) {
	for _, st := range src {
		s[Renumber(st, offset)] = struct{}{}
	}
}

func (s stateSet) sorted() []State {
	out := make([]State, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	slices.Sort(out)
	return out
}

// intersects reports whether any state of states is a member of set.
// set must be sorted.
func intersects(states, set []State) bool {
	for _, st := range states {
		if _, ok := slices.BinarySearch(set, st); ok {
			return true
		}
	}
	return false
}

func shifted(states []State, offset int) []State {
	out := make([]State, len(states))
	for i, st := range states {
		out[i] = Renumber(st, offset)
	}
	return out
}

func formatStates(states []State) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, st := range states {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(st)))
	}
	sb.WriteByte('}')
	return sb.String()
}
