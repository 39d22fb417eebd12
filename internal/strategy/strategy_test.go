package strategy

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

// identity draws j = i at every step, so Shuffle leaves order unchanged.
type identity struct{}

func (identity) Intn(n int) int { return n - 1 }

// first always draws 0.
type first struct{}

func (first) Intn(int) int { return 0 }

func roster(n int) []string {
	players := make([]string, n)
	for i := range players {
		players[i] = fmt.Sprintf("P%02d", i+1)
	}
	return players
}

func TestShuffle(t *testing.T) {
	in := []string{"A", "B", "C", "D"}

	t.Run("identity source keeps order", func(t *testing.T) {
		got := Shuffle(in, identity{})
		if !reflect.DeepEqual(got, in) {
			t.Errorf("Shuffle() = %v, want %v", got, in)
		}
	})

	t.Run("zero source", func(t *testing.T) {
		// i=3 swap 0,3: D B C A; i=2 swap 0,2: C B D A; i=1 swap 0,1: B C D A
		got := Shuffle(in, first{})
		want := []string{"B", "C", "D", "A"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Shuffle() = %v, want %v", got, want)
		}
	})

	t.Run("input not mutated", func(t *testing.T) {
		Shuffle(in, first{})
		if !reflect.DeepEqual(in, []string{"A", "B", "C", "D"}) {
			t.Errorf("input mutated to %v", in)
		}
	})

	t.Run("permutation", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		players := roster(25)
		got := Shuffle(players, rng)
		sorted := append([]string(nil), got...)
		sort.Strings(sorted)
		if !reflect.DeepEqual(sorted, players) {
			t.Errorf("Shuffle() is not a permutation of the input: %v", got)
		}
	})

	t.Run("empty and single", func(t *testing.T) {
		if got := Shuffle([]string{}, first{}); len(got) != 0 {
			t.Errorf("Shuffle(empty) = %v", got)
		}
		if got := Shuffle([]string{"A"}, first{}); !reflect.DeepEqual(got, []string{"A"}) {
			t.Errorf("Shuffle([A]) = %v", got)
		}
	})
}

func TestGet(t *testing.T) {
	if _, err := Get(Singles); err != nil {
		t.Errorf("Get(singles) error: %v", err)
	}
	if _, err := Get(Doubles); err != nil {
		t.Errorf("Get(doubles) error: %v", err)
	}
	if _, err := Get("mixed"); err == nil {
		t.Error("Get(mixed) should fail")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"singles", Singles, false},
		{"doubles", Doubles, false},
		{"", Doubles, false},
		{"Singles", "", true},
		{"triples", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSinglesIdentity(t *testing.T) {
	matches := (&SinglesDraw{}).Pair([]string{"A", "B", "C", "D"}, identity{})
	b, d := Single("B"), Single("D")
	want := []Match{
		{A: Single("A"), B: &b},
		{A: Single("C"), B: &d},
	}
	if !reflect.DeepEqual(matches, want) {
		t.Errorf("Pair() = %+v, want %+v", matches, want)
	}
}

func TestSinglesOddBye(t *testing.T) {
	matches := (&SinglesDraw{}).Pair([]string{"A", "B", "C"}, identity{})
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].Bye() {
		t.Error("first match should not be a bye")
	}
	if !matches[1].Bye() || matches[1].A.Players[0] != "C" {
		t.Errorf("last match = %+v, want C with a bye", matches[1])
	}
	if matches[1].A.Kind != SinglePlayer {
		t.Errorf("bye side kind = %v, want SinglePlayer", matches[1].A.Kind)
	}
}

func TestDoublesIdentity(t *testing.T) {
	t.Run("three players", func(t *testing.T) {
		matches := (&DoublesDraw{}).Pair([]string{"A", "B", "C"}, identity{})
		c := Team("C")
		want := []Match{{A: Team("A", "B"), B: &c}}
		if !reflect.DeepEqual(matches, want) {
			t.Errorf("Pair() = %+v, want %+v", matches, want)
		}
	})

	t.Run("four players", func(t *testing.T) {
		matches := (&DoublesDraw{}).Pair([]string{"A", "B", "C", "D"}, identity{})
		cd := Team("C", "D")
		want := []Match{{A: Team("A", "B"), B: &cd}}
		if !reflect.DeepEqual(matches, want) {
			t.Errorf("Pair() = %+v, want %+v", matches, want)
		}
	})

	t.Run("six players leaves a team with a bye", func(t *testing.T) {
		matches := (&DoublesDraw{}).Pair(roster(6), identity{})
		if len(matches) != 2 {
			t.Fatalf("matches = %d, want 2", len(matches))
		}
		if !matches[1].Bye() {
			t.Error("second match should be a bye")
		}
		if got := matches[1].A.Players; !reflect.DeepEqual(got, []string{"P05", "P06"}) {
			t.Errorf("bye team = %v, want [P05 P06]", got)
		}
	})

	t.Run("one player", func(t *testing.T) {
		matches := (&DoublesDraw{}).Pair([]string{"A"}, identity{})
		want := []Match{{A: Team("A")}}
		if !reflect.DeepEqual(matches, want) {
			t.Errorf("Pair() = %+v, want %+v", matches, want)
		}
		if matches[0].A.Kind != TeamOf {
			t.Error("lone doubles player should still be a team")
		}
	})
}

func TestConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, mode := range []Mode{Singles, Doubles} {
		strat, _ := Get(mode)
		for n := 1; n <= 17; n++ {
			t.Run(fmt.Sprintf("%s/%d", mode, n), func(t *testing.T) {
				players := roster(n)
				players = append(players, players[0]) // duplicates count separately
				matches := strat.Pair(players, rng)

				var seen []string
				byes := 0
				for i, m := range matches {
					seen = append(seen, m.Players()...)
					if m.Bye() {
						byes++
						if i != len(matches)-1 {
							t.Errorf("bye at match %d of %d", i, len(matches))
						}
					}
				}

				sort.Strings(seen)
				want := append([]string(nil), players...)
				sort.Strings(want)
				if !reflect.DeepEqual(seen, want) {
					t.Errorf("players in matches = %v, want %v", seen, want)
				}

				units := len(players)
				if mode == Doubles {
					units = (len(players) + 1) / 2
				}
				wantByes := units % 2
				if byes != wantByes {
					t.Errorf("byes = %d, want %d", byes, wantByes)
				}
			})
		}
	}
}

func TestMatchPlayers(t *testing.T) {
	b := Team("C", "D")
	m := Match{A: Team("A", "B"), B: &b}
	if got := m.Players(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Errorf("Players() = %v", got)
	}
	// Players must not alias side A's backing array.
	got := m.Players()
	got[0] = "Z"
	if m.A.Players[0] != "A" {
		t.Error("Players() aliased side A")
	}
}
