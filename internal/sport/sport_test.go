package sport

import (
	"strings"
	"testing"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/domain/plan/plantest"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name      string
		goal      plan.Goal
		secondary plan.Goal
		detail    string
		want      string
		ok        bool
	}{
		{"not sport goal", plan.GoalStrength, "", "I play soccer", "", false},
		{"soccer", plan.GoalSportSpecific, "", "Sunday league Soccer", "soccer", true},
		{"bjj synonym", plan.GoalStrength, plan.GoalSportSpecific, "Brazilian jiu-jitsu blue belt", "mma", true},
		{"sprint synonym", plan.GoalSportSpecific, "", "100m sprint times", "running", true},
		{"unknown", plan.GoalSportSpecific, "", "ultimate frisbee", GeneralAthletic, true},
	}
	for _, c := range cases {
		q := plantest.Questionnaire()
		q.Goals.PrimaryGoal = c.goal
		q.Goals.SecondaryGoal = c.secondary
		q.Goals.SportDetail = c.detail
		got, ok := Detect(q)
		if got != c.want || ok != c.ok {
			t.Fatalf("%s: got %q %v", c.name, got, ok)
		}
	}
}

func TestIsSportFocusedWithoutGoal(t *testing.T) {
	q := plantest.Questionnaire()
	q.Goals.SpecificTargets = "get faster for basketball season"
	if !IsSportFocused(q) {
		t.Fatalf("basketball target should count as sport focus")
	}
	q.Goals.SpecificTargets = "bigger arms"
	if IsSportFocused(q) {
		t.Fatalf("no sport signal")
	}
}

func TestGuidance(t *testing.T) {
	g := Guidance("mma")
	if !strings.Contains(g, "Combat Sports") || !strings.Contains(g, "Energy systems:") {
		t.Fatalf("mma guidance: %s", g)
	}
	if Guidance(GeneralAthletic) != generalGuidance || Guidance("curling") != generalGuidance {
		t.Fatalf("unknown sport should use general guidance")
	}
}
