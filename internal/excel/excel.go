package excel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/derekprior/fixtures/internal/persist"
	"github.com/derekprior/fixtures/internal/roster"
	"github.com/derekprior/fixtures/internal/schedule"
	"github.com/xuri/excelize/v2"
)

// MasterSheet holds one row per match in the persistence column layout.
const MasterSheet = "Master Schedule"

// maxSheetName is Excel's limit on sheet name length.
const maxSheetName = 31

// Generate creates an Excel workbook with the master schedule and per-competitor sheets.
func Generate(s *schedule.Schedule, r *roster.Roster) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeMasterSheet(f, s); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}

	if err := writeCompetitorSheets(f, s, r); err != nil {
		return nil, fmt.Errorf("writing competitor sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// Save generates the workbook for s and writes it to path.
func Save(s *schedule.Schedule, r *roster.Roster, path string) error {
	f, err := Generate(s, r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Load reads the master sheet of a workbook back into a schedule. Matches
// are renumbered in row order and the season is the file name stem.
func Load(path string, r *roster.Roster) (*schedule.Schedule, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Read(f, seasonFromPath(path), r)
}

// Read parses the master sheet of an open workbook.
func Read(f *excelize.File, season string, r *roster.Roster) (*schedule.Schedule, error) {
	rows, err := f.GetRows(MasterSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", MasterSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", MasterSheet)
	}

	s := &schedule.Schedule{Season: season}
	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] == "" {
			continue
		}
		m, err := persist.ParseRow(row, r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		m.Number = len(s.Matches) + 1
		s.Matches = append(s.Matches, m)
	}
	return s, nil
}

// UpdateCompetitorSheets regenerates the per-competitor sheets of the
// workbook at path from its master sheet, so manual edits to the master
// are reflected everywhere. Every sheet other than the master is replaced.
func UpdateCompetitorSheets(path string, r *roster.Roster) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	s, err := Read(f, seasonFromPath(path), r)
	if err != nil {
		return err
	}

	for _, name := range f.GetSheetList() {
		if name == MasterSheet {
			continue
		}
		if err := f.DeleteSheet(name); err != nil {
			return fmt.Errorf("removing sheet %s: %w", name, err)
		}
	}
	if err := writeCompetitorSheets(f, s, r); err != nil {
		return fmt.Errorf("writing competitor sheets: %w", err)
	}
	return f.Save()
}

func writeMasterSheet(f *excelize.File, s *schedule.Schedule) error {
	sheet := MasterSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := persist.Header
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	styleHeader(f, sheet, len(headers))

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})

	matches := s.SortedByDate()
	for i, m := range matches {
		row := i + 2
		for col, v := range persist.Row(m) {
			f.SetCellStr(sheet, cellRef(col+1, row), v)
		}
		if cellStyle != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), cellStyle)
		}
	}

	// Set column widths (sized for Arial 16)
	widths := map[string]float64{"A": 10, "B": 30, "C": 30, "D": 32, "E": 16, "F": 12}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	// Neutral-venue matches get a light red fill.
	lastRow := len(matches) + 1
	redFill, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFC7CE"}},
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	if lastRow > 1 {
		f.SetConditionalFormat(sheet, fmt.Sprintf("A2:F%d", lastRow), []excelize.ConditionalFormatOptions{
			{
				Type:     "formula",
				Criteria: fmt.Sprintf(`$F2="%s"`, schedule.Neutral),
				Format:   &redFill,
			},
		})
	}

	return nil
}

func writeCompetitorSheets(f *excelize.File, s *schedule.Schedule, r *roster.Roster) error {
	competitors := r.Competitors()
	names := competitorSheetNames(competitors)
	for _, c := range competitors {
		sheet := names[c.Name]
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet for %s: %w", c.Name, err)
		}

		headers := []string{"Date", "Day", "Venue", "Opponent", "Home/Away", "Match"}
		for i, h := range headers {
			f.SetCellValue(sheet, cellRef(i+1, 1), h)
		}
		styleHeader(f, sheet, len(headers))

		cellStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Size: 16, Family: "Arial"},
		})

		var matches []schedule.Match
		for _, m := range s.SortedByDate() {
			if m.Involves(c.Name) {
				matches = append(matches, m)
			}
		}

		for i, m := range matches {
			row := i + 2
			opponent, _ := m.Opponent(c.Name)
			homeAway := "Away"
			if m.IsHomeFor(c) {
				homeAway = "Home"
			}
			f.SetCellValue(sheet, cellRef(1, row), m.Date.Format(schedule.DateFormat))
			f.SetCellValue(sheet, cellRef(2, row), m.Date.Format("Mon"))
			f.SetCellValue(sheet, cellRef(3, row), m.Venue.Name)
			f.SetCellValue(sheet, cellRef(4, row), opponent.Name)
			f.SetCellValue(sheet, cellRef(5, row), homeAway)
			f.SetCellValue(sheet, cellRef(6, row), fmt.Sprintf("Match %d", m.Number))
			if cellStyle != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), cellStyle)
			}
		}

		// Set column widths (sized for Arial 16)
		widths := map[string]float64{"A": 16, "B": 8, "C": 32, "D": 30, "E": 14, "F": 12}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}

	return nil
}

func styleHeader(f *excelize.File, sheet string, columns int) {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(columns, 1), headerStyle)
	}
}

// sheetName makes a competitor name safe to use as a sheet name.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '-'
		}
		return r
	}, name)
	return truncate(name, maxSheetName)
}

// competitorSheetNames maps each competitor name to a sheet name that is
// distinct from MasterSheet and from every other competitor's. Excel compares
// sheet names case-insensitively; clashes get a " (2)", " (3)" ... suffix.
func competitorSheetNames(competitors []roster.Competitor) map[string]string {
	used := map[string]bool{strings.ToLower(MasterSheet): true}
	names := make(map[string]string, len(competitors))
	for _, c := range competitors {
		base := sheetName(c.Name)
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			name = truncate(base, maxSheetName-len(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		names[c.Name] = name
	}
	return names
}

func truncate(s string, n int) string {
	if runes := []rune(s); len(runes) > n {
		return string(runes[:n])
	}
	return s
}

func seasonFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
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
