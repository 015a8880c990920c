package nfa

import (
	"iter"
	"slices"
)

// simulation holds the active set of one run. It is never shared.
type simulation struct {
	a      *Automaton
	active []State
	next   []State
	// seen[s] == step marks s as already queued for the current step.
	seen []int
	step int
}

func (a *Automaton) simulate() *simulation {
	return &simulation{
		a:      a,
		active: slices.Clone(a.starting),
		next:   make([]State, 0, a.states),
		seen:   make([]int, a.states),
	}
}

func (s *simulation) advance(r rune) {
	s.step++
	s.next = s.next[:0]
	for _, from := range s.active {
		s.follow(s.a.delta[key{from, Lit(r)}])
		s.follow(s.a.delta[key{from, Wildcard}])
	}
	s.active, s.next = s.next, s.active
}

func (s *simulation) follow(targets []State) {
	for _, t := range targets {
		if s.seen[t] != s.step {
			s.seen[t] = s.step
			s.next = append(s.next, t)
		}
	}
}

func (s *simulation) accepting() bool {
	for _, st := range s.active {
		if s.a.IsFinished(st) {
			return true
		}
	}
	return false
}

// Match reports whether the automaton accepts the sequence produced by symbols.
//
// It tracks the set of every state reachable after each consumed rune, so no choice is
// ever backtracked. A rune with no outgoing edge simply empties the set. Match never
// modifies the automaton and is safe to call concurrently.
func (a *Automaton) Match(symbols iter.Seq[rune]) bool {
	sim := a.simulate()
	for r := range symbols {
		if len(sim.active) == 0 {
			break
		}
		sim.advance(r)
	}
	return sim.accepting()
}

// MatchString reports whether the automaton accepts the runes of s.
func (a *Automaton) MatchString(s string) bool {
	return a.Match(func(yield func(rune) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	})
}

// Trace replays symbols and yields each consumed rune with the sorted set of states
// active after it. Unlike Match it keeps consuming once the set is empty.
func (a *Automaton) Trace(symbols iter.Seq[rune]) iter.Seq2[rune, []State] {
	return func(yield func(rune, []State) bool) {
		sim := a.simulate()
		for r := range symbols {
			sim.advance(r)
			active := slices.Clone(sim.active)
			slices.Sort(active)
			if !yield(r, active) {
				return
			}
		}
	}
}
