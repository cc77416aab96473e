// Package export renders a generated plan as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
)

const (
	SheetPlan    = "Plan"
	SheetProgram = "Program"
)

var programHeader = []string{"Day", "Day Name", "Order", "Exercise", "Sets", "Reps", "Rest", "Notes", "Progression"}

// Workbook builds the two-sheet workbook. Callers own the returned file and
// must Close it.
func Workbook(p *plan.GeneratedPlan) (*excelize.File, error) {
	if p == nil {
		return nil, fmt.Errorf("export: nil plan")
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetPlan); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SheetProgram); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writePlanSheet(f, p); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("plan sheet: %w", err)
	}
	if err := writeProgramSheet(f, p); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("program sheet: %w", err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

func WriteTo(w io.Writer, p *plan.GeneratedPlan) error {
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// Filename derives a download name from the plan name.
func Filename(p *plan.GeneratedPlan) string {
	name := "workout-plan"
	if p != nil && strings.TrimSpace(p.PlanName) != "" {
		var b strings.Builder
		for _, r := range strings.ToLower(strings.TrimSpace(p.PlanName)) {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
				b.WriteRune(r)
			case r == ' ' || r == '-' || r == '_':
				b.WriteByte('-')
			}
		}
		if s := strings.Trim(b.String(), "-"); s != "" {
			name = s
		}
	}
	return name + ".xlsx"
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func writePlanSheet(f *excelize.File, p *plan.GeneratedPlan) error {
	sheet := SheetPlan
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E2EFDA"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "top"},
	})
	if err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return err
	}
	rows := [][2]string{
		{"Plan", p.PlanName},
		{"Overview", p.Overview},
		{"Weekly Structure", p.WeeklyStructure},
		{"Progression", p.ProgressionGuidance},
		{"Nutrition", p.NutritionNotes},
		{"Recovery", p.RecoveryNotes},
		{"Disclaimer", p.Disclaimer},
	}
	for i, row := range rows {
		a := fmt.Sprintf("A%d", i+1)
		b := fmt.Sprintf("B%d", i+1)
		if err := f.SetCellValue(sheet, a, row[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, b, row[1]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, a, a, labelStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, b, b, wrap); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 100)
}

func writeProgramSheet(f *excelize.File, p *plan.GeneratedPlan) error {
	sheet := SheetProgram
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &programHeader); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(programHeader), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	row := 2
	for _, d := range p.Days {
		for i, ex := range d.Exercises {
			values := []any{d.DayNumber, d.Name, i + 1, ex.Name, ex.Sets, ex.Reps, ex.Rest, ex.Notes, ex.ProgressionNote}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}

	widths := map[string]float64{"A": 6, "B": 28, "C": 7, "D": 30, "E": 6, "F": 10, "G": 10, "H": 50, "I": 50}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}
