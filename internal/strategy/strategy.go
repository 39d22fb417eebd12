package strategy

import "fmt"

// Strategy turns a roster into matches.
type Strategy interface {
	Pair(players []string, src Source) []Match
}

// Get returns the Strategy for a mode.
func Get(mode Mode) (Strategy, error) {
	switch mode {
	case Singles:
		return &SinglesDraw{}, nil
	case Doubles:
		return &DoublesDraw{}, nil
	default:
		return nil, fmt.Errorf("unknown mode: %q", mode)
	}
}

// SinglesDraw pairs consecutive players from a shuffled roster. An odd
// roster leaves the last player with a bye.
type SinglesDraw struct{}

func (s *SinglesDraw) Pair(players []string, src Source) []Match {
	shuffled := Shuffle(players, src)
	sides := make([]Side, len(shuffled))
	for i, p := range shuffled {
		sides[i] = Single(p)
	}
	return pairSides(sides)
}

// DoublesDraw groups a shuffled roster into teams of two, then pairs
// consecutive teams. An odd roster leaves a one-player team at the end,
// and an odd team count leaves the last team with a bye.
type DoublesDraw struct{}

func (s *DoublesDraw) Pair(players []string, src Source) []Match {
	shuffled := Shuffle(players, src)
	var teams []Side
	for i := 0; i < len(shuffled); i += 2 {
		if i+1 < len(shuffled) {
			teams = append(teams, Team(shuffled[i], shuffled[i+1]))
		} else {
			teams = append(teams, Team(shuffled[i]))
		}
	}
	return pairSides(teams)
}

func pairSides(sides []Side) []Match {
	var matches []Match
	for i := 0; i < len(sides); i += 2 {
		m := Match{A: sides[i]}
		if i+1 < len(sides) {
			b := sides[i+1]
			m.B = &b
		}
		matches = append(matches, m)
	}
	return matches
}
