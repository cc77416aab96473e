package nutrition

import (
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
)

type Strategy struct {
	ProteinTarget       string `json:"proteinTarget"`
	TrainingDayCalories string `json:"trainingDayCalories"`
	RestDayCalories     string `json:"restDayCalories"`
	Carbs               string `json:"carbs"`
	Fats                string `json:"fats"`
	Notes               string `json:"notes"`
}

type proteinRange struct{ lo, hi float64 }

var proteinTiers = map[string]proteinRange{
	"low":       {1.2, 1.6},
	"moderate":  {1.6, 2.0},
	"high":      {2.0, 2.4},
	"very_high": {2.4, 2.8},
}

// ProteinTarget renders the tier's g/kg range, or absolute grams when body
// weight is known. Unknown tiers use moderate.
func ProteinTarget(tier string, bodyWeightKg *float64) string {
	r, ok := proteinTiers[tier]
	if !ok {
		r = proteinTiers["moderate"]
	}
	if bodyWeightKg != nil && *bodyWeightKg > 0 {
		w := *bodyWeightKg
		return fmt.Sprintf("%.0f-%.0f g protein per day (%.1f-%.1f g/kg)", r.lo*w, r.hi*w, r.lo, r.hi)
	}
	return fmt.Sprintf("%.1f-%.1f g protein per kg of body weight per day", r.lo, r.hi)
}

// GenerateStrategy picks calorie, carb and fat targets by goal. Fat loss
// bumps a low protein tier to moderate to protect lean mass.
func GenerateStrategy(goal plan.Goal, approach, proteinTier string, trainingDays int, bodyWeightKg *float64) Strategy {
	if trainingDays < 0 {
		trainingDays = 0
	}
	if trainingDays > 7 {
		trainingDays = 7
	}
	restDays := 7 - trainingDays

	if goal == plan.GoalFatLoss && (proteinTier == "low" || proteinTier == "") {
		proteinTier = "moderate"
	}
	s := Strategy{ProteinTarget: ProteinTarget(proteinTier, bodyWeightKg)}

	switch {
	case goal == plan.GoalMuscleBuilding && approach == "surplus":
		s.TrainingDayCalories = "+300-500 kcal above maintenance"
		s.RestDayCalories = "+100-200 kcal above maintenance"
		s.Carbs = "4-6 g/kg, concentrated around training"
		s.Fats = "0.8-1.0 g/kg"
		s.Notes = fmt.Sprintf("Lean bulk: eat the larger surplus on the %d training days and a small surplus on the %d rest days; aim to gain 0.25-0.5%% of body weight per week.", trainingDays, restDays)
	case goal == plan.GoalMuscleBuilding:
		s.TrainingDayCalories = "+100-200 kcal above maintenance"
		s.RestDayCalories = "maintenance"
		s.Carbs = "3-5 g/kg"
		s.Fats = "0.8-1.0 g/kg"
		s.Notes = fmt.Sprintf("Recomposition: a slight surplus on the %d training days and maintenance on the %d rest days keeps body weight stable while muscle is added.", trainingDays, restDays)
	case goal == plan.GoalStrength:
		s.TrainingDayCalories = "+200-300 kcal above maintenance"
		s.RestDayCalories = "maintenance"
		s.Carbs = "3-5 g/kg, higher before heavy sessions"
		s.Fats = "0.8-1.0 g/kg"
		s.Notes = fmt.Sprintf("Fuel the %d heavy training days fully; on the %d rest days hold maintenance and keep protein high.", trainingDays, restDays)
	case goal == plan.GoalFatLoss:
		s.TrainingDayCalories = "-300 kcal below maintenance"
		s.RestDayCalories = "-500 kcal below maintenance"
		s.Carbs = "2-3 g/kg, placed before and after training"
		s.Fats = "0.6-0.8 g/kg"
		s.Notes = fmt.Sprintf("Keep the smaller deficit on the %d training days to protect performance and the larger deficit on the %d rest days; target 0.5-1%% of body weight lost per week.", trainingDays, restDays)
	case goal == plan.GoalEndurance:
		s.TrainingDayCalories = "+300-600 kcal above maintenance depending on session length"
		s.RestDayCalories = "maintenance"
		s.Carbs = "5-8 g/kg on long or hard days"
		s.Fats = "0.8-1.0 g/kg"
		s.Notes = fmt.Sprintf("Carbohydrate is the limiting fuel: scale intake to session length on the %d training days and return to maintenance on the %d rest days.", trainingDays, restDays)
	case goal == plan.GoalSportSpecific:
		s.TrainingDayCalories = "+200-400 kcal above maintenance"
		s.RestDayCalories = "maintenance"
		s.Carbs = "4-7 g/kg depending on practice load"
		s.Fats = "0.8-1.0 g/kg"
		s.Notes = fmt.Sprintf("Match intake to combined gym and sport load on the %d training days; keep maintenance on the %d rest days.", trainingDays, restDays)
	default:
		s.TrainingDayCalories = "maintenance"
		s.RestDayCalories = "maintenance"
		s.Carbs = "3-5 g/kg"
		s.Fats = "0.8-1.0 g/kg"
		s.Notes = fmt.Sprintf("Eat at maintenance across the %d training days and %d rest days and adjust by 200 kcal if body weight drifts.", trainingDays, restDays)
	}
	return s
}

// String renders the strategy as a compact block.
func (s Strategy) String() string {
	return strings.Join([]string{
		"Protein: " + s.ProteinTarget,
		"Training days: " + s.TrainingDayCalories,
		"Rest days: " + s.RestDayCalories,
		"Carbohydrate: " + s.Carbs,
		"Fat: " + s.Fats,
		s.Notes,
	}, "\n")
}

// EstimateTrainingIntensity classifies weekly load as high, moderate or low.
func EstimateTrainingIntensity(level plan.Level, daysPerWeek, sessionDuration int) string {
	weekly := daysPerWeek * sessionDuration
	switch {
	case level == plan.LevelAdvanced || weekly >= 300 || daysPerWeek >= 5:
		return "high"
	case level == plan.LevelIntermediate || weekly >= 180 || daysPerWeek >= 3:
		return "moderate"
	}
	return "low"
}
