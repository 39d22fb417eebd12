package strategy

import "fmt"

// Mode selects how players are grouped into sides.
type Mode string

const (
	Singles Mode = "singles"
	Doubles Mode = "doubles"
)

// ParseMode validates a mode name. An empty name means doubles.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case Singles:
		return Singles, nil
	case Doubles, "":
		return Doubles, nil
	default:
		return "", fmt.Errorf("unknown mode: %q (want singles or doubles)", name)
	}
}

// SideKind tags which variant a Side holds.
type SideKind int

const (
	SinglePlayer SideKind = iota
	TeamOf
)

// Side is one half of a match: a single player in singles mode, or a
// team of one or two players in doubles mode. The Kind is authoritative;
// a one-player team is still a team.
type Side struct {
	Kind    SideKind
	Players []string
}

// Single returns a singles side.
func Single(player string) Side {
	return Side{Kind: SinglePlayer, Players: []string{player}}
}

// Team returns a doubles side.
func Team(players ...string) Side {
	return Side{Kind: TeamOf, Players: players}
}

// Match pairs two sides. B is nil for a bye.
type Match struct {
	A Side
	B *Side
}

// Bye reports whether the match has only one side.
func (m Match) Bye() bool {
	return m.B == nil
}

// Players returns every player in the match, side A first.
func (m Match) Players() []string {
	players := append([]string(nil), m.A.Players...)
	if m.B != nil {
		players = append(players, m.B.Players...)
	}
	return players
}
