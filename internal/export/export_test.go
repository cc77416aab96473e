package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
)

func samplePlan() *plan.GeneratedPlan {
	return &plan.GeneratedPlan{
		PlanName:        "3-Day Strength Plan",
		Overview:        "Built for strength.",
		WeeklyStructure: "Full Body (3-day)",
		Days: []plan.WorkoutDay{
			{DayNumber: 1, Name: "Full Body A", Exercises: []plan.Exercise{
				{Name: "Back Squat", Sets: 4, Reps: "4-6", Rest: "3 min", ProgressionNote: "add 2.5 kg"},
				{Name: "Bench Press", Sets: 4, Reps: "4-6", Rest: "3 min"},
			}},
			{DayNumber: 2, Name: "Full Body B", Exercises: []plan.Exercise{
				{Name: "Deadlift", Sets: 3, Reps: "3-5", Rest: "3 min"},
			}},
		},
	}
}

func TestWorkbookSheets(t *testing.T) {
	f, err := Workbook(samplePlan())
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SheetPlan || sheets[1] != SheetProgram {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
	rows, err := f.GetRows(SheetProgram)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][3] != "Exercise" || rows[1][3] != "Back Squat" || rows[3][0] != "2" {
		t.Fatalf("unexpected program rows: %v", rows)
	}
	if rows[2][2] != "2" {
		t.Fatalf("expected order 2 for second exercise, got %q", rows[2][2])
	}
	name, _ := f.GetCellValue(SheetPlan, "B1")
	if name != "3-Day Strength Plan" {
		t.Fatalf("plan name cell = %q", name)
	}
	panes, err := f.GetPanes(SheetProgram)
	if err != nil {
		t.Fatalf("GetPanes: %v", err)
	}
	if !panes.Freeze || panes.YSplit != 1 {
		t.Fatalf("header row not frozen: %+v", panes)
	}
}

func TestWriteToProducesReadableWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(&buf, samplePlan()); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	v, _ := f.GetCellValue(SheetProgram, "D4")
	if v != "Deadlift" {
		t.Fatalf("D4 = %q", v)
	}
}

func TestWorkbookNilPlan(t *testing.T) {
	if _, err := Workbook(nil); err == nil {
		t.Fatalf("expected error for nil plan")
	}
}

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"3-Day Strength Plan": "3-day-strength-plan.xlsx",
		"  ":                  "workout-plan.xlsx",
		"Plan (v2)!":          "plan-v2.xlsx",
	}
	for in, want := range cases {
		if got := Filename(&plan.GeneratedPlan{PlanName: in}); got != want {
			t.Fatalf("Filename(%q) = %q, want %q", in, got, want)
		}
	}
}
