package nfa

import (
	"fmt"
	"slices"
)

// Never returns the automaton with no states. It accepts nothing.
func Never() *Automaton {
	return newBuilder(0).build()
}

// Empty returns the automaton accepting exactly the empty sequence.
func Empty() *Automaton {
	b := newBuilder(1)
	b.starting.add(0)
	b.finished.add(0)
	return b.build()
}

// Literal returns the automaton accepting exactly one occurrence of sym.
// For Wildcard that is any single rune.
func Literal(sym Symbol) *Automaton {
	b := newBuilder(2)
	b.starting.add(0)
	b.finished.add(1)
	b.edge(0, sym, 1)
	return b.build()
}

// Union returns the disjoint union of a and b: it accepts what either accepts.
// The states of b follow those of a.
func Union(a, b *Automaton) *Automaton {
	offset := a.states
	out := newBuilder(a.states + b.states)

	out.starting.add(a.starting...)
	out.starting.addShifted(b.starting, offset)
	out.finished.add(a.finished...)
	out.finished.addShifted(b.finished, offset)

	out.splice(a, 0, nil)
	out.splice(b, offset, nil)
	return out.build()
}

// Concat returns the automaton accepting every word of a followed by a word of b.
//
// No silent transition hands a run over from a to b. Instead every edge of a that can
// land on a finished state of a also targets the starting states of b, and when a
// accepts the empty sequence the starting states of b are starting states too.
func Concat(a, b *Automaton) *Automaton {
	offset := a.states
	out := newBuilder(a.states + b.states)
	bStart := shifted(b.starting, offset)

	out.starting.add(a.starting...)
	if a.AcceptsEmpty() {
		out.starting.add(bStart...)
	}

	out.splice(a, 0, bStart)
	out.splice(b, offset, nil)

	out.finished.addShifted(b.finished, offset)
	return out.build()
}

// Star returns the Kleene closure of a: zero or more repetitions.
//
// Every edge of a that can land on a finished state also re-enters the starting states,
// so one repetition may follow another. When a does not accept the empty sequence, a
// fresh state numbered a.States() is added that is both starting and finished and has no
// edges. Marking the existing starting states finished instead would accept partial
// repetitions whenever a starting state is reachable mid-word.
func Star(a *Automaton) *Automaton {
	states := a.states
	if !a.AcceptsEmpty() {
		states++
	}
	out := newBuilder(states)

	out.starting.add(a.starting...)
	out.finished.add(a.finished...)
	if states > a.states {
		fresh := State(a.states)
		out.starting.add(fresh)
		out.finished.add(fresh)
	}

	out.splice(a, 0, a.starting)
	return out.build()
}

// Plus returns the automaton accepting one or more repetitions of a.
func Plus(a *Automaton) *Automaton {
	return Concat(a, Star(a))
}

// Optional returns the automaton accepting a word of a or the empty sequence.
func Optional(a *Automaton) *Automaton {
	return Union(a, Empty())
}

// ConcatAll concatenates its operands left to right. With no operands it is Empty;
// with one it is that operand. The result equals folding Concat over the operands,
// built in one pass.
func ConcatAll(as ...*Automaton) *Automaton {
	switch len(as) {
	case 0:
		return Empty()
	case 1:
		return as[0]
	}
	offsets, total := layout(as)
	out := newBuilder(total)

	// entry[i] holds the states a run may enter operand i at: its own starting
	// states, plus entry[i+1] when operand i accepts the empty sequence.
	entry := make([][]State, len(as)+1)
	for i := len(as) - 1; i >= 0; i-- {
		entry[i] = shifted(as[i].starting, offsets[i])
		if as[i].AcceptsEmpty() {
			entry[i] = append(entry[i], entry[i+1]...)
		}
	}

	out.starting.add(entry[0]...)
	for i, a := range as {
		out.splice(a, offsets[i], entry[i+1])
	}
	last := len(as) - 1
	out.finished.addShifted(as[last].finished, offsets[last])
	return out.build()
}

// UnionAll unions its operands left to right. With no operands it is Never;
// with one it is that operand.
func UnionAll(as ...*Automaton) *Automaton {
	switch len(as) {
	case 0:
		return Never()
	case 1:
		return as[0]
	}
	offsets, total := layout(as)
	out := newBuilder(total)
	for i, a := range as {
		out.starting.addShifted(a.starting, offsets[i])
		out.finished.addShifted(a.finished, offsets[i])
		out.splice(a, offsets[i], nil)
	}
	return out.build()
}

// layout places the state spaces of as one after another.
func layout(as []*Automaton) (offsets []int, total int) {
	offsets = make([]int, len(as))
	for i, a := range as {
		offsets[i] = total
		total += a.states
	}
	return offsets, total
}

// String returns the automaton accepting exactly s.
func String(s string) *Automaton {
	parts := make([]*Automaton, 0, len(s))
	for _, r := range s {
		parts = append(parts, Literal(Lit(r)))
	}
	return ConcatAll(parts...)
}

// Repeat returns the automaton accepting between lo and hi repetitions of a.
// A negative hi means no upper bound. It panics if lo is negative or hi is
// non-negative and below lo.
//
// The result holds one renumbered copy of a per repetition, hi copies when bounded
// and max(lo, 1) otherwise. Completing copy i hands over to copy i+1 only; the last
// copy of an unbounded repeat hands over to itself. The finished states of copy lo and
// every later copy are finished. When lo is 0 a fresh state after the copies accepts
// the empty sequence.
func Repeat(a *Automaton, lo, hi int) *Automaton {
	if lo < 0 || (hi >= 0 && hi < lo) {
		panic(fmt.Sprintf("nfa: invalid repeat bounds {%d,%d}", lo, hi))
	}
	switch {
	case hi == 0:
		return Empty()
	case lo == 1 && hi == 1:
		return a
	}
	if a.AcceptsEmpty() {
		// Any count up to hi is then reachable, so repeat the non-empty words from zero.
		a, lo = nonEmpty(a), 0
	}

	copies := hi
	if hi < 0 {
		copies = max(lo, 1)
	}
	n := a.states
	states := copies * n
	if lo == 0 {
		states++
	}
	out := newBuilder(states)

	out.starting.add(a.starting...)
	if lo == 0 {
		fresh := State(copies * n)
		out.starting.add(fresh)
		out.finished.add(fresh)
	}
	for i := range copies {
		offset := i * n
		var next []State
		switch {
		case i+1 < copies:
			next = shifted(a.starting, offset+n)
		case hi < 0:
			next = shifted(a.starting, offset)
		}
		out.splice(a, offset, next)
		if i+1 >= lo {
			out.finished.addShifted(a.finished, offset)
		}
	}
	return out.build()
}

// nonEmpty returns the automaton accepting the words of a except the empty sequence.
// A fresh state numbered a.States() becomes the only starting state and takes over the
// outgoing edges of every starting state of a.
func nonEmpty(a *Automaton) *Automaton {
	out := newBuilder(a.states + 1)
	fresh := State(a.states)
	out.starting.add(fresh)
	out.finished.add(a.finished...)
	out.splice(a, 0, nil)
	for k, to := range a.delta {
		if _, ok := slices.BinarySearch(a.starting, k.from); ok {
			out.edge(fresh, k.sym, to...)
		}
	}
	return out.build()
}
