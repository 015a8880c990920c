package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/regula/pkg/nfa"
	"github.com/aretw0/regula/pkg/stream"
)

// InspectReport describes an automaton as markdown: its tables and, when input is
// non-nil, the active set after every consumed rune.
func InspectReport(expr string, a *nfa.Automaton, input *string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Pattern `%s`\n\n", expr)
	fmt.Fprintf(&sb, "- **States:** %d\n", a.States())
	fmt.Fprintf(&sb, "- **Starting:** %s\n", joinStates(a.Starting()))
	fmt.Fprintf(&sb, "- **Finished:** %s\n", joinStates(a.Finished()))
	fmt.Fprintf(&sb, "- **Accepts empty input:** %t\n\n", a.AcceptsEmpty())

	sb.WriteString("## Transitions\n\n")
	transitions := a.Transitions()
	if len(transitions) == 0 {
		sb.WriteString("_none_\n")
	} else {
		sb.WriteString("| From | Symbol | To |\n|---|---|---|\n")
		for _, t := range transitions {
			fmt.Fprintf(&sb, "| %d | %s | %s |\n", t.From, cell(t.Symbol.String()), joinStates(t.To))
		}
	}

	if input == nil {
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n## Run on `%s`\n\n", *input)
	sb.WriteString("| Step | Rune | Active |\n|---|---|---|\n")
	fmt.Fprintf(&sb, "| 0 | | %s |\n", joinStates(a.Starting()))
	step := 0
	for r, active := range a.Trace(stream.String(*input)) {
		step++
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", step, cell(nfa.Lit(r).String()), joinStates(active))
	}

	verdict := "rejected"
	if a.MatchString(*input) {
		verdict = "accepted"
	}
	fmt.Fprintf(&sb, "\n**Verdict:** %s\n", verdict)
	return sb.String()
}

func joinStates(states []nfa.State) string {
	if len(states) == 0 {
		return "∅"
	}
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = fmt.Sprint(int(s))
	}
	return strings.Join(parts, ", ")
}

// cell escapes the table delimiter.
func cell(s string) string {
	return "`" + strings.ReplaceAll(s, "|", "\\|") + "`"
}
