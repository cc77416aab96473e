package fallback

import (
	"reflect"
	"testing"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/domain/plan/plantest"
	"github.com/yungbote/liftplan-backend/internal/llm"
	"github.com/yungbote/liftplan-backend/internal/matching"
	"github.com/yungbote/liftplan-backend/internal/normalize"
	"github.com/yungbote/liftplan-backend/internal/quality"
)

func TestGenerateFollowsSchedule(t *testing.T) {
	for days := 1; days <= 7; days++ {
		q := plantest.Questionnaire()
		q.Availability.DaysPerWeek = days
		p := Generate(q)
		if len(p.Days) != days {
			t.Fatalf("days=%d got %d", days, len(p.Days))
		}
		for i, d := range p.Days {
			if d.DayNumber != i+1 || len(d.Exercises) == 0 {
				t.Fatalf("day %d: number=%d exercises=%d", i, d.DayNumber, len(d.Exercises))
			}
		}
		if err := llm.CheckPlan(p); err != nil {
			t.Fatalf("days=%d: %v", days, err)
		}
	}
	q := plantest.Questionnaire()
	q.Availability.DaysPerWeek = 4
	if got := Generate(q).WeeklyStructure; got != "Upper Body / Lower Body / Upper Body / Lower Body (4-day)" {
		t.Fatalf("weeklyStructure=%q", got)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	q := plantest.Questionnaire()
	if !reflect.DeepEqual(Generate(q), Generate(q)) {
		t.Fatalf("not deterministic")
	}
}

func TestGenerateRespectsRestrictionsAndCap(t *testing.T) {
	q := plantest.Questionnaire()
	q.Injuries.Current = []plan.Injury{{Area: "knee", Severity: plan.SeverityHigh}}
	q.Preferences.DislikedExercises = []string{"curl"}
	q.Constraints.MaxExercisesPerSession = plantest.Max(4)
	p := Generate(q)
	blocked := blockedKeywords(q)
	for _, d := range p.Days {
		if len(d.Exercises) > 4 {
			t.Fatalf("day %d has %d exercises", d.DayNumber, len(d.Exercises))
		}
		for _, ex := range d.Exercises {
			if k, ok := matching.FirstMatch(ex.Name, blocked); ok {
				t.Fatalf("%q matches %q", ex.Name, k)
			}
			for _, s := range ex.Substitutions {
				if matching.ContainsAny(s, blocked) {
					t.Fatalf("substitution %q is blocked", s)
				}
			}
		}
	}
}

func TestExercisesForFallsBack(t *testing.T) {
	legs := []string{"squat", "deadlift", "leg", "lunge", "calf", "step up"}
	got := exercisesFor(dayLegs, homeLibrary, legs)
	want := filter(homeLibrary[dayFullBody], legs)
	if !reflect.DeepEqual(got, want) || len(got) == 0 {
		t.Fatalf("got %v", got)
	}
	all := append(append([]string{}, legs...), "push", "row", "press", "plank", "bug")
	if got := exercisesFor(dayLegs, homeLibrary, all); len(got) == 0 || got[0] != "Side Plank" && got[0] != "Bird Dog" {
		t.Fatalf("safe fallback: %v", got)
	}
}

func TestGenerateAdaptsToEquipment(t *testing.T) {
	q := plantest.Questionnaire()
	q.Equipment = plan.Equipment{GymType: "none"}
	p := Generate(q)
	for _, name := range p.ExerciseNames() {
		if matching.ContainsAny(name, []string{"dumbbell", "goblet", "barbell"}) {
			t.Fatalf("%q needs equipment", name)
		}
	}
}

func TestGeneratePrescription(t *testing.T) {
	q := plantest.Questionnaire()
	q.Goals.PrimaryGoal = plan.GoalStrength
	p := Generate(q)
	d := p.Days[0]
	if d.Exercises[0].Reps != "3-6" || d.Exercises[2].Reps != "6-10" {
		t.Fatalf("reps %q %q", d.Exercises[0].Reps, d.Exercises[2].Reps)
	}
	if d.Exercises[0].Sets < d.Exercises[2].Sets {
		t.Fatalf("main sets %d < accessory %d", d.Exercises[0].Sets, d.Exercises[2].Sets)
	}
}

func TestGeneratePassesQualityAndSurvivesNormalize(t *testing.T) {
	q := plantest.Questionnaire()
	q.Preferences.FavoriteExercises = []string{"Hip Thrust"}
	p := Generate(q)
	if r := quality.Validate(p, q); !r.Valid {
		t.Fatalf("quality: %v", r.Messages())
	}
	n := normalize.Normalize(p, q)
	if len(n.Days) != len(p.Days) {
		t.Fatalf("normalize changed day count")
	}
}
