package tui

import (
	"os"

	"github.com/aretw0/regula/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Styler colours match verdicts for a given color profile.
type Styler struct {
	profile termenv.Profile
}

// NewStyler creates a Styler. termenv.Ascii disables colour entirely.
func NewStyler(profile termenv.Profile) Styler {
	return Styler{profile: profile}
}

// Verdict renders a match result as a single line.
func (s Styler) Verdict(res domain.MatchResult) string {
	label := s.profile.String("no match").Foreground(s.profile.Color("#f87171"))
	if res.Matched {
		label = s.profile.String("match").Foreground(s.profile.Color("#34d399")).Bold()
	}
	name := res.Pattern
	if name == "" {
		name = "-"
	}
	return s.profile.String(name).Foreground(s.profile.Color("#818cf8")).String() + "\t" + label.String()
}
