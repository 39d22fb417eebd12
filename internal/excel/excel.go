package excel

import (
	"fmt"
	"strings"

	"github.com/derekprior/courtdraw/internal/format"
	"github.com/derekprior/courtdraw/internal/schedule"
	"github.com/xuri/excelize/v2"
)

const (
	CourtsSheet  = "Courts"
	WaitingSheet = "Waiting"
	PlayersSheet = "Players"
	ModeCell     = "D1"
)

// Generate creates a workbook with the court sheet, the waiting list and a
// per-player sheet.
func Generate(labels format.Labels, result *schedule.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetDefaultFont("Arial")

	if err := writeCourtsSheet(f, labels, result); err != nil {
		return nil, fmt.Errorf("writing courts sheet: %w", err)
	}

	if err := writeWaitingSheet(f, labels, result); err != nil {
		return nil, fmt.Errorf("writing waiting sheet: %w", err)
	}

	if err := writePlayersSheet(f, result); err != nil {
		return nil, fmt.Errorf("writing players sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
		f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), style)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	cellStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	if err != nil {
		return err
	}
	for i, row := range rows {
		r := i + 2
		for j, v := range row {
			f.SetCellValue(sheet, cellRef(j+1, r), v)
			f.SetCellStyle(sheet, cellRef(j+1, r), cellRef(j+1, r), cellStyle)
		}
	}
	return nil
}

func writeCourtsSheet(f *excelize.File, labels format.Labels, result *schedule.Result) error {
	sheet := CourtsSheet
	f.NewSheet(sheet)

	if err := writeHeaders(f, sheet, []string{"Court", "Match"}); err != nil {
		return err
	}

	// The mode is recorded beside the header so the validator knows how to
	// split team cells.
	f.SetCellValue(sheet, "C1", "Mode")
	f.SetCellValue(sheet, ModeCell, string(result.Mode))

	var rows [][]string
	for _, a := range result.Assignments {
		rows = append(rows, []string{a.Court, labels.Match(a.Match)})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 50)

	// Empty courts get light red
	if len(rows) > 0 {
		redFill, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFC7CE"}},
			Font: &excelize.Font{Size: 16, Family: "Arial"},
		})
		if err != nil {
			return err
		}
		empty := strings.ReplaceAll(labels.Empty, `"`, `""`)
		f.SetConditionalFormat(sheet, fmt.Sprintf("B2:B%d", len(rows)+1), []excelize.ConditionalFormatOptions{
			{
				Type:     "formula",
				Criteria: fmt.Sprintf(`B2="%s"`, empty),
				Format:   &redFill,
			},
		})
	}
	return nil
}

func writeWaitingSheet(f *excelize.File, labels format.Labels, result *schedule.Result) error {
	sheet := WaitingSheet
	f.NewSheet(sheet)

	if err := writeHeaders(f, sheet, []string{"#", "Match"}); err != nil {
		return err
	}

	var rows [][]string
	for i := range result.Waiting {
		rows = append(rows, []string{fmt.Sprint(i + 1), labels.Match(&result.Waiting[i])})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 50)
	return nil
}

func writePlayersSheet(f *excelize.File, result *schedule.Result) error {
	sheet := PlayersSheet
	f.NewSheet(sheet)

	if err := writeHeaders(f, sheet, []string{"Player", "Court", "Partner", "Opponents", "Status"}); err != nil {
		return err
	}

	var rows [][]string
	for _, p := range result.Placements {
		rows = append(rows, []string{p.Player, p.Court, p.Partner, strings.Join(p.Opponents, ", "), string(p.Status)})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}

	widths := map[string]float64{"A": 20, "B": 20, "C": 20, "D": 36, "E": 14}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
