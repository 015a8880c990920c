package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/regula/pkg/nfa"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	// Active lists the states live after consuming an input.
	Active []nfa.State
	// Accepted colours the active states as a verdict instead of a position.
	Accepted bool
}

// GenerateMermaid produces a Mermaid flowchart of an automaton.
// It applies semantic styling:
// - Starting: ((Circle))
// - Finished: (((Double circle)))
// - Starting and finished: (((Double circle))) with an entry marker
// - Default: (Rounded)
// Edges sharing endpoints are merged into one comma-separated label.
func GenerateMermaid(a *nfa.Automaton, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	starting := make(map[nfa.State]bool)
	for _, s := range a.Starting() {
		starting[s] = true
	}

	for i := range a.States() {
		s := nfa.State(i)
		opener, closer := "(", ")"
		switch {
		case a.IsFinished(s):
			opener, closer = "(((", ")))"
		case starting[s]:
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%d\"%s\n", nodeID(s), opener, i, closer))
	}

	for _, s := range a.Starting() {
		sb.WriteString(fmt.Sprintf("    start%d[ ] --> %s\n", s, nodeID(s)))
		sb.WriteString(fmt.Sprintf("    style start%d fill:none,stroke:none\n", s))
	}

	type arc struct{ from, to nfa.State }
	var order []arc
	labels := make(map[arc][]string)
	for _, t := range a.Transitions() {
		for _, to := range t.To {
			e := arc{t.From, to}
			if _, ok := labels[e]; !ok {
				order = append(order, e)
			}
			labels[e] = append(labels[e], edgeLabel(t.Symbol))
		}
	}
	for _, e := range order {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", nodeID(e.from), strings.Join(labels[e], ", "), nodeID(e.to)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef accepted fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		class := "active"
		if overlay.Accepted {
			class = "accepted"
		}
		for _, s := range overlay.Active {
			if int(s) < 0 || int(s) >= a.States() {
				continue
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", nodeID(s), class))
		}
	}

	return sb.String()
}

func nodeID(s nfa.State) string {
	return fmt.Sprintf("s%d", s)
}

// edgeLabel renders a symbol for a Mermaid label. Double quotes would end the
// label early, so they are written as the #quot; entity.
func edgeLabel(sym nfa.Symbol) string {
	if sym.IsWildcard() {
		return "any"
	}
	return strings.ReplaceAll(string(sym.Rune()), "\"", "#quot;")
}
