package prompts

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/domain/plan/plantest"
	"github.com/yungbote/liftplan-backend/internal/knowledge"
)

func TestBuildContextSectionOrder(t *testing.T) {
	q := plantest.Questionnaire()
	q.Goals.PrimaryGoal = plan.GoalSportSpecific
	q.Goals.SportDetail = "basketball"
	kb, err := knowledge.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	out := BuildContext(q, Options{Knowledge: kb, CharBudget: 4000, ExistingPlan: "Day 1: Squat"})

	order := []string{
		"## COACHING BRIEF",
		"## CFOS KNOWLEDGE BASE",
		"## NUTRITION INTEGRATION",
		"## SPORT-SPECIFIC GUIDANCE",
		"## TRAINING PRESCRIPTION",
		"## PROGRAM DESIGN BLUEPRINT",
		"## QUESTIONNAIRE",
		"## EXISTING PLAN (UPDATE MODE)",
	}
	last := -1
	for _, h := range order {
		i := strings.Index(out, h)
		if i < 0 {
			t.Fatalf("missing section %q", h)
		}
		if i <= last {
			t.Fatalf("section %q out of order", h)
		}
		last = i
	}
	if !strings.Contains(out, "Day 1: Squat") {
		t.Fatalf("existing plan text missing")
	}
}

func TestBuildContextOmitsOptionalSections(t *testing.T) {
	out := BuildContext(plantest.Questionnaire(), Options{})
	for _, h := range []string{"SPORT-SPECIFIC GUIDANCE", "UPDATE MODE", "CFOS KNOWLEDGE BASE"} {
		if strings.Contains(out, h) {
			t.Fatalf("unexpected section %q", h)
		}
	}
	if !strings.Contains(out, "exactly 4 days") {
		t.Fatalf("prescription does not pin day count")
	}
}

func TestBuildContextDeterministic(t *testing.T) {
	q := plantest.Questionnaire()
	q.Goals.WeakPoints = []string{"upper chest", "lockout"}
	q.Preferences.FavoriteExercises = []string{"Bench Press"}
	a := BuildContext(q, Options{})
	b := BuildContext(q, Options{})
	if a != b {
		t.Fatalf("context not deterministic")
	}
	if !strings.Contains(a, "Weak-point priorities") || !strings.Contains(a, "Bench Press") {
		t.Fatalf("coaching brief missing weak points or favorites:\n%s", a)
	}
}

func TestDraftPrompt(t *testing.T) {
	q := plantest.Questionnaire()
	q.Availability.DaysPerWeek = 3
	p, err := Draft(q, Options{})
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if p.Name != NameDraft || p.SchemaName != PlanSchemaName || p.Schema == nil {
		t.Fatalf("unexpected prompt header: %+v", p.Name)
	}
	if !strings.Contains(p.System, "exactly 3 entries") {
		t.Fatalf("system prompt does not pin day count")
	}
	if !strings.Contains(p.System, "LIFTPLAN_PROMPT_STYLE_V1") {
		t.Fatalf("style block not applied")
	}
	if p.Fingerprint() != p.Fingerprint() || len(p.Fingerprint()) != 16 {
		t.Fatalf("bad fingerprint %q", p.Fingerprint())
	}
}

func TestFeedbackPromptCarriesIssues(t *testing.T) {
	q := plantest.Questionnaire()
	q.Preferences.DislikedExercises = []string{"Burpee"}
	prev := plantest.UpperLower()
	p, err := Feedback(q, Options{}, prev, []string{"day 1: rationale repeats intent"})
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	for _, want := range []string{"rationale repeats intent", "Dislikes (never include): Burpee", "Barbell Row"} {
		if !strings.Contains(p.User, want) {
			t.Fatalf("feedback user prompt missing %q", want)
		}
	}
}

func TestRefinePromptRequirements(t *testing.T) {
	q := plantest.Questionnaire()
	cur := plantest.UpperLower()
	p, err := Refine(q, cur)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	req, err := Requirements(q)
	if err != nil {
		t.Fatalf("Requirements: %v", err)
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(req), &obj); err != nil {
		t.Fatalf("requirements not JSON: %v", err)
	}
	for _, k := range []string{"goals", "availability", "preferences", "recovery", "nutrition", "constraints", "recommendedSplit", "programDesign"} {
		if _, ok := obj[k]; !ok {
			t.Fatalf("requirements missing %q", k)
		}
	}
	if obj["recommendedSplit"] != "Upper/Lower (4-day)" {
		t.Fatalf("recommendedSplit=%v", obj["recommendedSplit"])
	}
	if !strings.Contains(p.User, "Upper/Lower (4-day)") {
		t.Fatalf("refine prompt missing requirements")
	}
}

func TestRepairPrompt(t *testing.T) {
	p, err := Repair(plantest.Questionnaire(), `{"planName": "x",`, errors.New("unexpected end of JSON input"))
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if !strings.Contains(p.User, "unexpected end of JSON input") || !strings.Contains(p.User, `"planName": "x",`) {
		t.Fatalf("repair prompt missing broken text or error:\n%s", p.User)
	}
}

func TestBuildUnknownPrompt(t *testing.T) {
	if _, err := Build("nope", Input{}); err == nil {
		t.Fatalf("expected error for unknown prompt")
	}
}

func TestPlanSchemaStrict(t *testing.T) {
	s := PlanSchema()
	if s["additionalProperties"] != false {
		t.Fatalf("root schema not strict")
	}
	req, _ := s["required"].([]string)
	props, _ := s["properties"].(map[string]any)
	if len(req) != len(props) || len(req) == 0 {
		t.Fatalf("required=%d properties=%d", len(req), len(props))
	}
}
