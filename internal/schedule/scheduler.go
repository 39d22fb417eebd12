package schedule

import (
	"errors"

	"github.com/derekprior/courtdraw/internal/roster"
	"github.com/derekprior/courtdraw/internal/strategy"
)

// ErrMissingInput is returned when the roster or the court list is empty.
var ErrMissingInput = errors.New("enter players and courts")

// Assignment pairs a court with its match. Match is nil for an empty court.
type Assignment struct {
	Court string
	Match *strategy.Match
}

// Result is the output of a draw.
type Result struct {
	Mode        strategy.Mode
	Assignments []Assignment // one per court, in court order
	Waiting     []strategy.Match
	Placements  []Placement // one per roster entry
}

// Matches returns every match in draw order: courts first, then waiting.
func (r *Result) Matches() []strategy.Match {
	var matches []strategy.Match
	for _, a := range r.Assignments {
		if a.Match != nil {
			matches = append(matches, *a.Match)
		}
	}
	return append(matches, r.Waiting...)
}

// Allocate fills courts in order with matches in order. Courts beyond the
// match count stay empty; matches beyond the court count wait.
func Allocate(matches []strategy.Match, courts []string) ([]Assignment, []strategy.Match) {
	assignments := make([]Assignment, len(courts))
	for i, court := range courts {
		assignments[i].Court = court
		if i < len(matches) {
			m := matches[i]
			assignments[i].Match = &m
		}
	}

	var waiting []strategy.Match
	if len(matches) > len(courts) {
		waiting = append(waiting, matches[len(courts):]...)
	}
	return assignments, waiting
}

// Generate draws matches for players and places them on courts.
func Generate(players, courts []string, mode strategy.Mode, src strategy.Source) (*Result, error) {
	if len(players) == 0 || len(courts) == 0 {
		return nil, ErrMissingInput
	}

	strat, err := strategy.Get(mode)
	if err != nil {
		return nil, err
	}

	matches := strat.Pair(players, src)
	assignments, waiting := Allocate(matches, courts)

	result := &Result{
		Mode:        mode,
		Assignments: assignments,
		Waiting:     waiting,
	}
	result.Placements = buildPlacements(result)
	return result, nil
}

// GenerateFromText parses free-text rosters and runs Generate.
func GenerateFromText(playersText, courtsText string, mode strategy.Mode, src strategy.Source) (*Result, error) {
	return Generate(roster.Parse(playersText), roster.Parse(courtsText), mode, src)
}
