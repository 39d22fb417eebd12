package schedule

import "github.com/derekprior/courtdraw/internal/strategy"

// Status describes where a player ended up.
type Status string

const (
	Playing Status = "Playing"
	Bye     Status = "Bye"
	Waiting Status = "Waiting"
)

// Placement is one player's view of a draw.
type Placement struct {
	Player    string
	Court     string // empty when waiting
	Status    Status
	Partner   string // doubles only
	Opponents []string
}

func buildPlacements(r *Result) []Placement {
	var placements []Placement
	for _, a := range r.Assignments {
		if a.Match == nil {
			continue
		}
		placements = append(placements, matchPlacements(*a.Match, a.Court, false)...)
	}
	for _, m := range r.Waiting {
		placements = append(placements, matchPlacements(m, "", true)...)
	}
	return placements
}

func matchPlacements(m strategy.Match, court string, waiting bool) []Placement {
	var placements []Placement
	add := func(side strategy.Side, other *strategy.Side) {
		for i, p := range side.Players {
			pl := Placement{Player: p, Court: court, Status: Playing}
			switch {
			case waiting:
				pl.Status = Waiting
			case other == nil:
				pl.Status = Bye
			}
			if side.Kind == strategy.TeamOf && len(side.Players) == 2 {
				pl.Partner = side.Players[1-i]
			}
			if other != nil {
				pl.Opponents = append([]string(nil), other.Players...)
			}
			placements = append(placements, pl)
		}
	}
	add(m.A, m.B)
	if m.B != nil {
		add(*m.B, &m.A)
	}
	return placements
}
