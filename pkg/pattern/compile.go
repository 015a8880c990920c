package pattern

import (
	"fmt"

	"github.com/aretw0/regula/pkg/nfa"
)

const (
	// MaxStates bounds the automaton size Compile is willing to build.
	MaxStates = 100_000
	// MaxWork bounds the states and transition targets Build allocates, summed over
	// the final automaton and every intermediate one.
	MaxWork = 4_000_000
)

// Compile parses expr and builds its automaton.
func Compile(expr string) (*nfa.Automaton, error) {
	node, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	cost := Estimate(node)
	switch {
	case cost.States > MaxStates:
		return nil, &SyntaxError{Expr: expr, Err: ErrTooLarge, Detail: fmt.Sprintf("more than %d states", MaxStates)}
	case cost.Work > MaxWork:
		return nil, &SyntaxError{Expr: expr, Err: ErrTooLarge, Detail: fmt.Sprintf("more than %d units of construction work", MaxWork)}
	}
	return Build(node), nil
}

// Cost is an upper bound on what Build allocates for a node.
type Cost struct {
	// States of the resulting automaton.
	States int
	// Work counts the states and transition targets of the result and of every
	// intermediate automaton built on the way.
	Work int
}

// Estimate bounds the cost of Build(node) without building anything.
// Both figures saturate just above MaxWork.
func Estimate(node Node) Cost {
	f := measure(node)
	return Cost{States: f.states, Work: f.work}
}

// Size returns an upper bound on the number of states Build(node) allocates.
func Size(node Node) int {
	return Estimate(node).States
}

// footprint bounds the shape of the automaton Build returns for a node.
type footprint struct {
	states   int
	targets  int // transition targets
	starts   int
	handoffs int // transitions that can land on a finished state
	nullable bool
	work     int
}

const ceiling = MaxWork + 1

func sum(a, b int) int { return min(a+b, ceiling) }

func product(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > ceiling/b {
		return ceiling
	}
	return min(a*b, ceiling)
}

// built charges the work of producing f on top of its operands.
func (f footprint) built(operands int) footprint {
	f.work = sum(operands, sum(f.states, f.targets))
	return f
}

var emptyFootprint = footprint{states: 1, starts: 1, nullable: true, work: 1}

func measure(node Node) footprint {
	switch n := node.(type) {
	case *Empty:
		return emptyFootprint
	case *Literal, *Any:
		return footprint{states: 2, targets: 1, starts: 1, handoffs: 1}.built(0)
	case *Class:
		runes := 0
		for _, rr := range n.Ranges {
			runes = sum(runes, int(rr.Hi-rr.Lo+1))
		}
		// Each member literal is built before the union.
		return footprint{states: product(2, runes), targets: runes, starts: runes, handoffs: runes}.
			built(product(3, runes))
	case *Alternate:
		return measureUnion(n.Nodes)
	case *Concat:
		return measureConcat(n.Nodes)
	case *Repeat:
		return measureRepeat(n)
	}
	return footprint{}
}

func measureUnion(nodes []Node) footprint {
	if len(nodes) == 1 {
		return measure(nodes[0])
	}
	var f footprint
	operands := 0
	for _, child := range nodes {
		c := measure(child)
		f.states = sum(f.states, c.states)
		f.targets = sum(f.targets, c.targets)
		f.starts = sum(f.starts, c.starts)
		f.handoffs = sum(f.handoffs, c.handoffs)
		f.nullable = f.nullable || c.nullable
		operands = sum(operands, c.work)
	}
	return f.built(operands)
}

// measureConcat follows nfa.ConcatAll: operand i hands over to every entry state
// of operand i+1.
func measureConcat(nodes []Node) footprint {
	switch len(nodes) {
	case 0:
		return emptyFootprint
	case 1:
		return measure(nodes[0])
	}
	parts := make([]footprint, len(nodes))
	for i, child := range nodes {
		parts[i] = measure(child)
	}
	entry := make([]int, len(parts)+1)
	for i := len(parts) - 1; i >= 0; i-- {
		entry[i] = parts[i].starts
		if parts[i].nullable {
			entry[i] = sum(entry[i], entry[i+1])
		}
	}

	last := parts[len(parts)-1]
	f := footprint{starts: entry[0], handoffs: last.handoffs, nullable: true}
	operands := 0
	for i, p := range parts {
		f.states = sum(f.states, p.states)
		f.targets = sum(f.targets, sum(p.targets, product(p.handoffs, entry[i+1])))
		if last.nullable && i < len(parts)-1 {
			f.handoffs = sum(f.handoffs, p.handoffs)
		}
		f.nullable = f.nullable && p.nullable
		operands = sum(operands, p.work)
	}
	return f.built(operands)
}

// measureRepeat follows nfa.Repeat: one copy of the body per repetition, each
// handing over to the starting states of the next.
func measureRepeat(n *Repeat) footprint {
	switch {
	case n.Max == 0:
		return emptyFootprint
	case n.Min == 1 && n.Max == 1:
		return measure(n.Body)
	}
	body := measure(n.Body)
	operands := body.work
	lo := n.Min
	if body.nullable {
		body = footprint{
			states:   sum(body.states, 1),
			targets:  product(body.targets, 2),
			starts:   1,
			handoffs: product(body.handoffs, 2),
		}.built(operands)
		operands = body.work
		lo = 0
	}
	copies := n.Max
	if n.Max < 0 {
		copies = max(lo, 1)
	}
	f := footprint{
		states:   product(copies, body.states),
		targets:  product(copies, sum(body.targets, product(body.handoffs, body.starts))),
		starts:   body.starts,
		handoffs: product(copies, body.handoffs),
	}
	if lo == 0 {
		f.states = sum(f.states, 1)
		f.starts = sum(f.starts, 1)
		f.nullable = true
	}
	return f.built(operands)
}

// MustCompile is like Compile but panics if expr cannot be parsed.
func MustCompile(expr string) *nfa.Automaton {
	a, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return a
}

// Build translates an AST into an automaton using the nfa construction algebra.
func Build(node Node) *nfa.Automaton {
	switch n := node.(type) {
	case *Empty:
		return nfa.Empty()
	case *Literal:
		return nfa.Literal(nfa.Lit(n.Rune))
	case *Any:
		return nfa.Literal(nfa.Wildcard)
	case *Class:
		var members []*nfa.Automaton
		seen := make(map[rune]bool)
		for _, rr := range n.Ranges {
			for r := rr.Lo; r <= rr.Hi; r++ {
				if !seen[r] {
					seen[r] = true
					members = append(members, nfa.Literal(nfa.Lit(r)))
				}
			}
		}
		return nfa.UnionAll(members...)
	case *Concat:
		parts := make([]*nfa.Automaton, len(n.Nodes))
		for i, child := range n.Nodes {
			parts[i] = Build(child)
		}
		return nfa.ConcatAll(parts...)
	case *Alternate:
		parts := make([]*nfa.Automaton, len(n.Nodes))
		for i, child := range n.Nodes {
			parts[i] = Build(child)
		}
		return nfa.UnionAll(parts...)
	case *Repeat:
		return nfa.Repeat(Build(n.Body), n.Min, n.Max)
	}
	panic(fmt.Sprintf("pattern: unknown node %T", node))
}
