package nfa

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type key struct {
	from State
	sym  Symbol
}

// Transition is one entry of an automaton's transition table.
type Transition struct {
	From   State
	Symbol Symbol
	To     []State
}

// Automaton is an immutable NFA without silent transitions.
// The zero value has no states and accepts nothing.
type Automaton struct {
	states   int
	starting []State
	finished []State
	delta    map[key][]State
}

// States returns the size of the numbering space.
func (a *Automaton) States() int { return a.states }

// Starting returns a sorted copy of the starting set.
func (a *Automaton) Starting() []State { return slices.Clone(a.starting) }

// Finished returns a sorted copy of the finished (accepting) set.
func (a *Automaton) Finished() []State { return slices.Clone(a.finished) }

// Next returns a sorted copy of the states reached from s on sym.
// Wildcard edges are only returned for sym == Wildcard.
func (a *Automaton) Next(s State, sym Symbol) []State {
	return slices.Clone(a.delta[key{s, sym}])
}

// IsFinished reports whether s is an accepting state.
func (a *Automaton) IsFinished(s State) bool {
	_, ok := slices.BinarySearch(a.finished, s)
	return ok
}

// AcceptsEmpty reports whether some starting state is also finished.
func (a *Automaton) AcceptsEmpty() bool {
	return intersects(a.starting, a.finished)
}

// Transitions returns the transition table ordered by source state, then symbol.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, 0, len(a.delta))
	for k, to := range a.delta {
		out = append(out, Transition{From: k.from, Symbol: k.sym, To: slices.Clone(to)})
	}
	slices.SortFunc(out, func(x, y Transition) int {
		if c := cmp.Compare(x.From, y.From); c != 0 {
			return c
		}
		switch {
		case x.Symbol.less(y.Symbol):
			return -1
		case y.Symbol.less(x.Symbol):
			return 1
		}
		return 0
	})
	return out
}

// Validate checks that every referenced state lies inside the numbering space.
func (a *Automaton) Validate() error {
	check := func(where string, states []State) error {
		for _, s := range states {
			if s < 0 || int(s) >= a.states {
				return &InvariantError{Where: where, State: s, States: a.states}
			}
		}
		return nil
	}
	if err := check("starting", a.starting); err != nil {
		return err
	}
	if err := check("finished", a.finished); err != nil {
		return err
	}
	for k, to := range a.delta {
		if err := check("delta key", []State{k.from}); err != nil {
			return err
		}
		if err := check("delta target", to); err != nil {
			return err
		}
	}
	return nil
}

// String renders the automaton's tables in a stable order.
func (a *Automaton) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "NFA{states: %d, starting: %s, finished: %s, delta: {",
		a.states, formatStates(a.starting), formatStates(a.finished))
	for i, t := range a.Transitions() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "(%d, %s) -> %s", t.From, t.Symbol, formatStates(t.To))
	}
	sb.WriteString("}}")
	return sb.String()
}

// builder accumulates the tables of one new automaton. Only the combinators in this
// package write to a builder, and only before build returns.
type builder struct {
	states   int
	starting stateSet
	finished stateSet
	delta    map[key]stateSet
}

func newBuilder(states int) *builder {
	return &builder{
		states:   states,
		starting: newStateSet(),
		finished: newStateSet(),
		delta:    make(map[key]stateSet),
	}
}

func (b *builder) edge(from State, sym Symbol, to ...State) {
	if len(to) == 0 {
		return
	}
	k := key{from, sym}
	set, ok := b.delta[k]
	if !ok {
		set = newStateSet()
		b.delta[k] = set
	}
	set.add(to...)
}

// splice copies every edge of src renumbered by offset. An edge that can land on a
// finished state of src also targets next, which is already in b's numbering.
func (b *builder) splice(src *Automaton, offset int, next []State) {
	for k, to := range src.delta {
		from := Renumber(k.from, offset)
		b.edge(from, k.sym, shifted(to, offset)...)
		if len(next) > 0 && intersects(to, src.finished) {
			b.edge(from, k.sym, next...)
		}
	}
}

// build freezes the tables and panics if an invariant does not hold.
func (b *builder) build() *Automaton {
	a := &Automaton{
		states:   b.states,
		starting: b.starting.sorted(),
		finished: b.finished.sorted(),
		delta:    make(map[key][]State, len(b.delta)),
	}
	for k, set := range b.delta {
		a.delta[k] = set.sorted()
	}
	if err := a.Validate(); err != nil {
		panic(err)
	}
	return a
}
