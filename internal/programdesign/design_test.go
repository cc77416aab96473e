package programdesign

import (
	"strings"
	"testing"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/domain/plan/plantest"
)

func TestRecommendSplit(t *testing.T) {
	cases := []struct {
		days      int
		recovery  string
		level     plan.Level
		preferred string
		want      string
	}{
		{1, "", plan.LevelBeginner, "", "Full Body"},
		{2, "", plan.LevelBeginner, "", "Full Body"},
		{3, "high", plan.LevelAdvanced, "", "Full Body (3-day)"},
		{4, "", plan.LevelIntermediate, "", "Upper/Lower"},
		{5, "high", plan.LevelIntermediate, "", "Push/Pull/Legs + Upper/Lower"},
		{5, "high", plan.LevelBeginner, "", "Upper/Lower + Conditioning"},
		{6, "high", plan.LevelIntermediate, "", "Push/Pull/Legs"},
		{6, "moderate", plan.LevelIntermediate, "", "Upper/Lower (6-day)"},
		{4, "", plan.LevelIntermediate, "Bro Split", "Bro Split"},
	}
	for _, c := range cases {
		got := RecommendSplit(c.days, c.recovery, c.level, c.preferred)
		if !strings.Contains(got, c.want) {
			t.Fatalf("RecommendSplit(%d,%q,%s,%q)=%q want %q", c.days, c.recovery, c.level, c.preferred, got, c.want)
		}
	}
}

func TestSchemeTable(t *testing.T) {
	if s := Scheme(plan.GoalSportSpecific); s != Scheme(plan.GoalStrength) {
		t.Fatalf("sport should match strength: %+v", s)
	}
	if s := Scheme(plan.GoalEndurance); s.MainReps != "12-20" || s.AccessoryRest != "45-60s" {
		t.Fatalf("endurance=%+v", s)
	}
	if s := Scheme(plan.GoalGeneralFitness); s != defaultScheme {
		t.Fatalf("default=%+v", s)
	}
}

func TestDeloadGuidanceReductions(t *testing.T) {
	q := plantest.Questionnaire()
	weeks, text := DeloadGuidance(q)
	if weeks != 4 || !strings.Contains(text, overtrainingSigns) {
		t.Fatalf("baseline weeks=%d text=%s", weeks, text)
	}

	q.Experience.Level = plan.LevelBeginner
	q.Recovery.StressLevel = "very_high"
	q.Recovery.SleepHours = 5
	if weeks, _ = DeloadGuidance(q); weeks != 6 {
		t.Fatalf("beginner with two reductions weeks=%d", weeks)
	}

	q.Experience.Level = plan.LevelAdvanced
	q.Experience.YearsTraining = 8
	q.Recovery.RecoveryCapacity = "low"
	weeks, text = DeloadGuidance(q)
	if weeks != 3 {
		t.Fatalf("floor not applied: %d", weeks)
	}
	if !strings.Contains(text, "training age over 5 years") || !strings.Contains(text, "top single") {
		t.Fatalf("text=%s", text)
	}
}

func TestBuild(t *testing.T) {
	q := plantest.Questionnaire()
	q.Goals.PrimaryGoal = plan.GoalMuscleBuilding
	q.Preferences.CardioPreference = "moderate"
	d := Build(q)
	if d.Split != "Upper/Lower (4-day)" || d.Reps.MainReps != "6-10" {
		t.Fatalf("design=%+v", d)
	}
	if !strings.HasPrefix(d.ProgressionModel, "Wave") || d.DeloadWeeks != 4 {
		t.Fatalf("design=%+v", d)
	}
	if d.MaxSetsPerWeek != 17 {
		t.Fatalf("max sets=%d", d.MaxSetsPerWeek)
	}
	if !strings.Contains(d.Blueprint(), "zone 2") {
		t.Fatalf("blueprint=%s", d.Blueprint())
	}
}

func TestSetsFor(t *testing.T) {
	if SetsFor(plan.LevelBeginner, true) != 3 || SetsFor(plan.LevelAdvanced, true) != 5 || SetsFor(plan.LevelIntermediate, false) != 3 {
		t.Fatalf("sets table changed")
	}
}
