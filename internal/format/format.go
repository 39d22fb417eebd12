package format

import (
	"strings"

	"github.com/derekprior/courtdraw/internal/strategy"
)

// Labels controls how matches are rendered as text.
type Labels struct {
	TeamSeparator string `yaml:"team_separator" json:"team_separator"`
	Versus        string `yaml:"versus" json:"versus"`
	Bye           string `yaml:"bye" json:"bye"`
	Empty         string `yaml:"empty" json:"empty"`
}

// DefaultLabels renders "A & B vs C & D", "A (BYE)" and "(empty)".
func DefaultLabels() Labels {
	return Labels{
		TeamSeparator: " & ",
		Versus:        " vs ",
		Bye:           " (BYE)",
		Empty:         "(empty)",
	}
}

// WithDefaults fills any unset label from DefaultLabels.
func (l Labels) WithDefaults() Labels {
	d := DefaultLabels()
	if l.TeamSeparator == "" {
		l.TeamSeparator = d.TeamSeparator
	}
	if l.Versus == "" {
		l.Versus = d.Versus
	}
	if l.Bye == "" {
		l.Bye = d.Bye
	}
	if l.Empty == "" {
		l.Empty = d.Empty
	}
	return l
}

// Match renders m. A nil match is an empty court.
func (l Labels) Match(m *strategy.Match) string {
	if m == nil {
		return l.Empty
	}
	a := l.Side(m.A)
	if m.B == nil {
		return a + l.Bye
	}
	return a + l.Versus + l.Side(*m.B)
}

// Side renders one side. Team members are joined with the team separator.
func (l Labels) Side(s strategy.Side) string {
	if s.Kind == strategy.TeamOf {
		return strings.Join(s.Players, l.TeamSeparator)
	}
	return strings.Join(s.Players, "")
}

// Parse reads a rendered match back into its sides, splitting team members
// when mode is doubles. ok is false for the empty marker or blank text.
// Names that themselves contain a separator cannot be recovered.
func (l Labels) Parse(text string, mode strategy.Mode) (m *strategy.Match, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || text == strings.TrimSpace(l.Empty) {
		return nil, false
	}

	bye := strings.TrimSpace(l.Bye)
	if bye != "" && strings.HasSuffix(text, bye) {
		side := l.parseSide(strings.TrimSpace(strings.TrimSuffix(text, bye)), mode)
		return &strategy.Match{A: side}, true
	}

	a, b, found := strings.Cut(text, l.Versus)
	if !found {
		return &strategy.Match{A: l.parseSide(text, mode)}, true
	}
	sideB := l.parseSide(b, mode)
	return &strategy.Match{A: l.parseSide(a, mode), B: &sideB}, true
}

func (l Labels) parseSide(text string, mode strategy.Mode) strategy.Side {
	if mode == strategy.Doubles {
		return strategy.Team(strings.Split(text, l.TeamSeparator)...)
	}
	return strategy.Single(text)
}
