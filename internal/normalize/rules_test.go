package normalize

import (
	"reflect"
	"testing"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/domain/plan/plantest"
	"github.com/yungbote/liftplan-backend/internal/enrichment"
)

func TestRequiredTier(t *testing.T) {
	cases := map[string]string{
		"Leg Press":              tierMachine,
		"Sliding Leg Curl":       enrichment.TierBodyweight,
		"Band-Assisted Pull-Up":  enrichment.TierCable,
		"Back Squat":             enrichment.TierBarbell,
		"Goblet Squat":           enrichment.TierDumbbell,
		"Bulgarian Split Squat":  enrichment.TierBodyweight,
		"Pull-Up":                enrichment.TierPullUpBar,
		"Inverted Row":           enrichment.TierBodyweight,
		"Rowing Erg Intervals":   tierMachine,
		"Jump Rope Skip":         enrichment.TierBodyweight,
		"Dumbbell Bench Press":   enrichment.TierDumbbell,
		"Single-Leg Hip Thrust":  enrichment.TierBodyweight,
		"Medicine Ball Slam":     enrichment.TierBodyweight,
		"Cable Triceps Pushdown": enrichment.TierCable,
	}
	for name, want := range cases {
		if got := requiredTier(name); got != want {
			t.Fatalf("%s: got %q want %q", name, got, want)
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	setups := map[string]plan.Equipment{
		"bodyweight": {},
		"dumbbells":  {Available: []string{"dumbbells"}},
		"bands+bar":  {Available: []string{"resistance band", "pull-up bar"}},
		"barbell":    {Available: []string{"barbell", "squat rack"}},
	}
	names := []string{
		"Leg Press", "Back Squat", "Bench Press", "Deadlift", "Overhead Press", "Pull-Up", "Lat Pulldown",
		"Barbell Row", "Leg Extension", "Leg Curl", "Cable Fly", "Face Pull", "Power Clean", "Machine Shrug",
		"Hanging Knee Raise", "Sled Push", "Hip Thrust", "Incline Bench Press", "Triceps Pushdown",
	}
	for label, eqIn := range setups {
		q := plantest.Questionnaire()
		q.Equipment = eqIn
		eq := equipmentFor(q)
		for _, n := range names {
			once := eq.resolve(n)
			if twice := eq.resolve(once); twice != once {
				t.Fatalf("%s: %q -> %q -> %q", label, n, once, twice)
			}
		}
	}
}

func TestResolveSubstitutes(t *testing.T) {
	q := plantest.Questionnaire()
	q.Equipment = plan.Equipment{Available: []string{"dumbbells"}}
	eq := equipmentFor(q)
	cases := map[string]string{
		"Bench Press":        "Dumbbell Bench Press",
		"Leg Press":          "Goblet Squat",
		"Pull-Up":            "Dumbbell Pullover",
		"Goblet Squat":       "Goblet Squat",
		"Hanging Knee Raise": "Lying Leg Raise",
		"Machine Shrug":      "Dumbbell Shrug",
	}
	for in, want := range cases {
		if got := eq.resolve(in); got != want {
			t.Fatalf("%s: got %q want %q", in, got, want)
		}
	}
}

func TestBaseOf(t *testing.T) {
	cases := map[string]string{
		"Pull-Up":              "pull-up",
		"Lat Pulldown":         "pull-up",
		"Romanian Deadlift":    "deadlift",
		"Barbell Row":          "row",
		"Rowing Erg Intervals": "",
		"Push Press":           "overhead",
		"Leg Press":            "squat",
		"Lateral Raise":        "",
	}
	for name, want := range cases {
		if got := baseOf(name); got != want {
			t.Fatalf("%s: got %q want %q", name, got, want)
		}
	}
}

func TestRestrictedKeywords(t *testing.T) {
	q := plantest.Questionnaire()
	q.Injuries.Current = []plan.Injury{
		{Area: "Right shoulder", Severity: plan.SeverityHigh},
		{Area: "knee", Severity: plan.SeverityLow},
	}
	q.Injuries.MovementRestrictions = []string{"No overhead pressing", "avoid jumping"}
	got := RestrictedKeywords(q)
	want := []string{"overhead press", "military press", "push press", "upright row", "behind the neck", "dip", "snatch", "handstand", "jump"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v", got)
	}
}

func TestDayFocusAndRegion(t *testing.T) {
	if f := dayFocus(plantest.Day(1, "Push", "Chest and triceps")); f != focusUpper {
		t.Fatalf("push day: %s", f)
	}
	if f := dayFocus(plantest.Day(1, "Legs", "Quads")); f != focusLower {
		t.Fatalf("leg day: %s", f)
	}
	if f := dayFocus(plantest.Day(1, "Upper/Lower Hybrid", "")); f != focusFull {
		t.Fatalf("hybrid: %s", f)
	}
	if r := regionOf("Hanging Leg Raise"); r != focusFull {
		t.Fatalf("core: %s", r)
	}
	if r := regionOf("Romanian Deadlift"); r != focusLower {
		t.Fatalf("hinge: %s", r)
	}
}

func TestRegionOfCableWork(t *testing.T) {
	cases := map[string]string{
		"Cable Fly":              focusUpper,
		"Cable Triceps Pushdown": focusUpper,
		"Cable Pull-Through":     focusLower,
		"Ab Wheel Rollout":       focusFull,
		"Plank":                  focusFull,
	}
	for name, want := range cases {
		if got := regionOf(name); got != want {
			t.Fatalf("%s: got %q want %q", name, got, want)
		}
	}
}

func TestDiversifyKeepsRepeatWithoutVariation(t *testing.T) {
	q := plantest.Questionnaire()
	q.Equipment = plan.Equipment{}
	p := plantest.Plan(
		plantest.Day(1, "Full", "Full body", "Sandbag Carry", "Plank"),
		plantest.Day(2, "Full", "Full body", "Sandbag Carry", "Push-Up"),
	)
	n := newNormalizer(p, q)
	n.diversify()
	if got := plantest.Names(n.p.Days[1]); !reflect.DeepEqual(got, []string{"Sandbag Carry", "Push-Up"}) {
		t.Fatalf("got %v", got)
	}
}

func TestDiversifyDropsRepeatOfBaseInSameDay(t *testing.T) {
	q := plantest.Questionnaire()
	p := plantest.Plan(
		plantest.Day(1, "Lower", "Lower body", "Back Squat", "Leg Curl"),
		plantest.Day(2, "Lower", "Lower body", "Goblet Squat", "Back Squat", "Calf Raise"),
	)
	n := newNormalizer(p, q)
	n.diversify()
	if got := plantest.Names(n.p.Days[1]); !reflect.DeepEqual(got, []string{"Goblet Squat", "Calf Raise"}) {
		t.Fatalf("got %v", got)
	}
	if got := plantest.Names(n.p.Days[0]); !reflect.DeepEqual(got, []string{"Back Squat", "Leg Curl"}) {
		t.Fatalf("first occurrence changed: %v", got)
	}
}
