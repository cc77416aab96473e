// Package plantest provides questionnaire and plan fixtures for tests.
package plantest

import (
	"fmt"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
)

// Questionnaire returns a valid general-fitness intermediate profile with
// gym access, four days a week, and no injuries or preferences.
func Questionnaire() plan.Questionnaire {
	return plan.Questionnaire{
		Goals: plan.Goals{
			PrimaryGoal: plan.GoalGeneralFitness,
			Timeframe:   "12_weeks",
		},
		Experience: plan.Experience{
			YearsTraining: 2,
			Level:         plan.LevelIntermediate,
			Consistency:   "consistent",
		},
		Availability: plan.Availability{
			DaysPerWeek:     4,
			SessionDuration: 60,
			TimeOfDay:       "evening",
		},
		Equipment: plan.Equipment{
			GymAccess: true,
			GymType:   "commercial",
		},
		Recovery: plan.Recovery{
			SleepHours:       7.5,
			SleepQuality:     "good",
			StressLevel:      "moderate",
			RecoveryCapacity: "moderate",
		},
		Nutrition: plan.Nutrition{
			Approach:    "maintenance",
			ProteinTier: "moderate",
		},
		Preferences: plan.Preferences{
			CardioPreference: "none",
		},
	}
}

// Max returns a pointer for Constraints.MaxExercisesPerSession.
func Max(n int) *int { return &n }

// Ex builds an exercise with distinct, non-boilerplate text.
func Ex(name string) plan.Exercise {
	return plan.Exercise{
		Name:            name,
		Sets:            3,
		Reps:            "8-10",
		Rest:            "90s",
		Intent:          "Build capacity in the " + name + " pattern.",
		Rationale:       "Chosen to progress " + name + " within the weekly volume target.",
		Notes:           "Controlled tempo.",
		Substitutions:   []string{},
		ProgressionNote: "Add 2.5kg when all sets hit the top of the range; deload 10% every 4th week.",
	}
}

// Day builds a day with the given exercises.
func Day(n int, name, focus string, exercises ...string) plan.WorkoutDay {
	d := plan.WorkoutDay{
		DayNumber: n,
		Name:      name,
		Focus:     focus,
		Duration:  "60 minutes",
		Warmup:    plan.Block{Description: "5 minutes easy cardio then dynamic mobility.", Exercises: []string{"Bike", "Leg Swings"}},
		Cooldown:  plan.Block{Description: "Easy walk and stretching.", Exercises: []string{"Walk"}},
		Exercises: []plan.Exercise{},
	}
	for _, name := range exercises {
		d.Exercises = append(d.Exercises, Ex(name))
	}
	return d
}

// Plan builds a raw plan from days.
func Plan(days ...plan.WorkoutDay) *plan.GeneratedPlan {
	return &plan.GeneratedPlan{
		PlanName:            "Test Plan",
		Overview:            "A balanced program.",
		WeeklyStructure:     "Upper/Lower",
		Days:                days,
		ProgressionGuidance: "Progress weekly.",
		NutritionNotes:      "Sample day: breakfast oats, lunch chicken and rice.",
		RecoveryNotes:       "Sleep well.",
		Disclaimer:          "Consult a professional.",
	}
}

// UpperLower returns a four-day raw plan resembling typical model output.
func UpperLower() *plan.GeneratedPlan {
	return Plan(
		Day(1, "Upper A", "Upper body", "Bench Press", "Barbell Row", "Lateral Raise", "Bicep Curl"),
		Day(2, "Lower A", "Lower body", "Back Squat", "Romanian Deadlift", "Leg Curl", "Calf Raise"),
		Day(3, "Upper B", "Upper body", "Overhead Press", "Pull-Up", "Incline Dumbbell Press", "Triceps Pushdown"),
		Day(4, "Lower B", "Lower body", "Deadlift", "Walking Lunge", "Leg Extension", "Hanging Knee Raise"),
	)
}

// Names returns the exercise names of a day.
func Names(d plan.WorkoutDay) []string {
	out := make([]string, len(d.Exercises))
	for i, ex := range d.Exercises {
		out[i] = ex.Name
	}
	return out
}

// Describe renders a plan's exercise lists for failure messages.
func Describe(p *plan.GeneratedPlan) string {
	s := ""
	for _, d := range p.Days {
		s += fmt.Sprintf("day %d %q: %v\n", d.DayNumber, d.Name, Names(d))
	}
	return s
}
