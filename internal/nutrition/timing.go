package nutrition

import (
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
)

const mealFrequencyCloser = "Spread protein across 3-5 meals of 0.3-0.5 g/kg each; total daily intake matters more than exact timing."

// CreateMealTimingGuidance covers pre-workout, post-workout, evening and
// meal frequency in that order.
func CreateMealTimingGuidance(timeOfDay string, sessionDuration int, goal plan.Goal) string {
	var parts []string
	switch timeOfDay {
	case "morning":
		if goal == plan.GoalFatLoss && sessionDuration < 60 {
			parts = append(parts, "Pre-workout: training fasted is an option for short morning sessions; otherwise have a banana or yogurt 30-45 minutes before.")
		} else {
			parts = append(parts, "Pre-workout: a light carb and protein snack 30-60 minutes before the morning session, e.g. toast with eggs or a banana with yogurt.")
		}
	case "afternoon", "evening":
		parts = append(parts, "Pre-workout: a mixed meal 2-3 hours before training, or a small carb-based snack 60 minutes before if lunch was early.")
	default:
		parts = append(parts, "Pre-workout: eat a balanced meal 2-3 hours before training whenever the session falls, or a light snack if the gap is longer.")
	}

	window := "60-90 minutes"
	if sessionDuration >= 75 {
		window = "30-60 minutes"
	}
	var macros string
	switch goal {
	case plan.GoalMuscleBuilding, plan.GoalStrength:
		macros = "30-40 g protein with 1 g/kg carbohydrate"
	case plan.GoalFatLoss:
		macros = "30-40 g protein with a modest carbohydrate portion (0.5 g/kg)"
	default:
		macros = "25-40 g protein with 0.8 g/kg carbohydrate"
	}
	parts = append(parts, fmt.Sprintf("Post-workout: within %s, eat %s.", window, macros))

	if timeOfDay == "evening" || timeOfDay == "flexible" || timeOfDay == "" {
		parts = append(parts, "Evening: a slow-digesting protein serving (e.g. cottage cheese or casein) before bed supports overnight recovery.")
	}
	parts = append(parts, mealFrequencyCloser)
	return strings.Join(parts, "\n")
}
