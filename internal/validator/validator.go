package validator

import (
	"fmt"
	"strings"

	"github.com/derekprior/courtdraw/internal/config"
	"github.com/derekprior/courtdraw/internal/excel"
	"github.com/derekprior/courtdraw/internal/strategy"
	"github.com/xuri/excelize/v2"
)

// Violation represents a problem found in a saved draw.
type Violation struct {
	Row     int    // 0 when not tied to one row
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a draw workbook and checks it against the configured
// roster and courts.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	d, err := readDraw(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("reading draw: %w", err)
	}

	var violations []Violation
	violations = append(violations, checkCourts(cfg, d)...)
	violations = append(violations, checkPlayers(cfg, d)...)
	violations = append(violations, checkSides(d)...)
	violations = append(violations, checkByes(cfg, d)...)
	violations = append(violations, checkWaiting(d)...)
	return violations, nil
}

type parsedMatch struct {
	Row   int
	Sheet string
	Match strategy.Match
}

type parsedCourt struct {
	Row   int
	Court string
	Match *strategy.Match
}

type draw struct {
	mode    strategy.Mode
	courts  []parsedCourt
	waiting []parsedMatch
}

// matches returns the draw's matches in draw order: courts, then waiting.
func (d *draw) matches() []parsedMatch {
	var out []parsedMatch
	for _, c := range d.courts {
		if c.Match != nil {
			out = append(out, parsedMatch{Row: c.Row, Sheet: excel.CourtsSheet, Match: *c.Match})
		}
	}
	return append(out, d.waiting...)
}

func readDraw(f *excelize.File, cfg *config.Config) (*draw, error) {
	modeName, err := f.GetCellValue(excel.CourtsSheet, excel.ModeCell)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", excel.CourtsSheet, err)
	}
	if modeName == "" {
		modeName = string(cfg.Mode)
	}
	mode, err := strategy.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	d := &draw{mode: mode}

	rows, err := f.GetRows(excel.CourtsSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", excel.CourtsSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s sheet is empty", excel.CourtsSheet)
	}
	for i, row := range rows[1:] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		c := parsedCourt{Row: i + 2, Court: row[0]}
		if len(row) > 1 {
			if m, ok := cfg.Labels.Parse(row[1], mode); ok {
				c.Match = m
			}
		}
		d.courts = append(d.courts, c)
	}

	// A workbook without a waiting sheet simply has no waiting matches.
	if idx, _ := f.GetSheetIndex(excel.WaitingSheet); idx < 0 {
		return d, nil
	}
	rows, err = f.GetRows(excel.WaitingSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", excel.WaitingSheet, err)
	}
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		if m, ok := cfg.Labels.Parse(row[1], mode); ok {
			d.waiting = append(d.waiting, parsedMatch{Row: i + 1, Sheet: excel.WaitingSheet, Match: *m})
		}
	}
	return d, nil
}

func checkCourts(cfg *config.Config, d *draw) []Violation {
	if len(cfg.Courts) == 0 {
		return nil
	}

	var violations []Violation
	if len(d.courts) != len(cfg.Courts) {
		violations = append(violations, Violation{
			Type:    "error",
			Message: fmt.Sprintf("draw has %d courts, config has %d", len(d.courts), len(cfg.Courts)),
		})
	}
	for i, c := range d.courts {
		if i >= len(cfg.Courts) {
			break
		}
		if c.Court != cfg.Courts[i] {
			violations = append(violations, Violation{
				Row:     c.Row,
				Type:    "error",
				Message: fmt.Sprintf("court %d is %q, want %q", i+1, c.Court, cfg.Courts[i]),
			})
		}
	}
	return violations
}

func checkPlayers(cfg *config.Config, d *draw) []Violation {
	if len(cfg.Players) == 0 {
		return nil
	}

	want := make(map[string]int)
	for _, p := range cfg.Players {
		want[p]++
	}

	got := make(map[string]int)
	var violations []Violation
	for _, pm := range d.matches() {
		for _, p := range pm.Match.Players() {
			got[p]++
			switch {
			case want[p] == 0:
				violations = append(violations, Violation{
					Row:     pm.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s row %d: %s is not on the roster", pm.Sheet, pm.Row, p),
				})
			case got[p] > want[p]:
				violations = append(violations, Violation{
					Row:     pm.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s row %d: %s appears %d times, roster has %d", pm.Sheet, pm.Row, p, got[p], want[p]),
				})
			}
		}
	}

	// Report missing players in roster order.
	reported := make(map[string]bool)
	for _, p := range cfg.Players {
		if got[p] < want[p] && !reported[p] {
			reported[p] = true
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s is missing from the draw", p),
			})
		}
	}
	return violations
}

func checkSides(d *draw) []Violation {
	var violations []Violation
	matches := d.matches()
	for i, pm := range matches {
		sides := []strategy.Side{pm.Match.A}
		if pm.Match.B != nil {
			sides = append(sides, *pm.Match.B)
		}
		for j, side := range sides {
			for _, p := range side.Players {
				if strings.TrimSpace(p) == "" {
					violations = append(violations, Violation{
						Row:     pm.Row,
						Type:    "error",
						Message: fmt.Sprintf("%s row %d: blank player name", pm.Sheet, pm.Row),
					})
				}
			}
			if d.mode != strategy.Doubles {
				continue
			}
			if len(side.Players) > 2 {
				violations = append(violations, Violation{
					Row:     pm.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s row %d: team of %d players", pm.Sheet, pm.Row, len(side.Players)),
				})
			}
			// Only the very last team in the draw may be short a player.
			last := i == len(matches)-1 && j == len(sides)-1
			if len(side.Players) == 1 && !last {
				violations = append(violations, Violation{
					Row:     pm.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s row %d: one-player team %s is not the last team", pm.Sheet, pm.Row, side.Players[0]),
				})
			}
		}
	}
	return violations
}

func checkByes(cfg *config.Config, d *draw) []Violation {
	matches := d.matches()
	var violations []Violation

	byes := 0
	for i, pm := range matches {
		if !pm.Match.Bye() {
			continue
		}
		byes++
		if i != len(matches)-1 {
			violations = append(violations, Violation{
				Row:     pm.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s row %d: bye is not the last match", pm.Sheet, pm.Row),
			})
		}
	}

	if byes > 1 {
		violations = append(violations, Violation{
			Type:    "error",
			Message: fmt.Sprintf("draw has %d byes, at most 1 allowed", byes),
		})
	}

	if len(cfg.Players) == 0 {
		return violations
	}
	// Singles pairs players, doubles pairs teams of two.
	units := len(cfg.Players)
	if d.mode == strategy.Doubles {
		units = (units + 1) / 2
	}
	switch {
	case units%2 == 1 && byes == 0:
		violations = append(violations, Violation{
			Type:    "warning",
			Message: fmt.Sprintf("roster makes %d sides but the draw has no bye", units),
		})
	case units%2 == 0 && byes > 0:
		violations = append(violations, Violation{
			Type:    "warning",
			Message: fmt.Sprintf("roster makes %d sides but the draw has a bye", units),
		})
	}
	return violations
}

func checkWaiting(d *draw) []Violation {
	if len(d.waiting) == 0 {
		return nil
	}
	var violations []Violation
	for _, c := range d.courts {
		if c.Match == nil {
			violations = append(violations, Violation{
				Row:     c.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s is empty while %d matches are waiting", c.Court, len(d.waiting)),
			})
		}
	}
	return violations
}
