package nutrition

import (
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

type sampleDay struct {
	breakfast, lunch, dinner, snack string
}

var (
	omnivoreDay = sampleDay{
		breakfast: "3 eggs, oats with berries",
		lunch:     "chicken breast, rice and mixed vegetables",
		dinner:    "salmon, potatoes and salad",
		snack:     "Greek yogurt with fruit",
	}
	vegetarianDay = sampleDay{
		breakfast: "eggs or Greek yogurt with oats and berries",
		lunch:     "lentil and chickpea bowl with quinoa",
		dinner:    "paneer or halloumi stir-fry with rice",
		snack:     "cottage cheese with fruit",
	}
	veganDay = sampleDay{
		breakfast: "tofu scramble with wholegrain toast",
		lunch:     "tempeh, quinoa and roasted vegetables",
		dinner:    "lentil pasta with tomato and bean sauce",
		snack:     "soy yogurt with nuts or a pea protein shake",
	}
)

func sampleFor(restrictions []string) (sampleDay, []string) {
	day := omnivoreDay
	var adjustments []string
	switch {
	case matching.AnyMentions(restrictions, "vegan") || matching.AnyMentions(restrictions, "plant"):
		day = veganDay
	case matching.AnyMentions(restrictions, "vegetarian"):
		day = vegetarianDay
	}
	if matching.AnyMentions(restrictions, "dairy") || matching.AnyMentions(restrictions, "lactose") {
		adjustments = append(adjustments, "swap dairy for lactose-free or fortified plant alternatives")
	}
	if matching.AnyMentions(restrictions, "gluten") || matching.AnyMentions(restrictions, "celiac") {
		adjustments = append(adjustments, "use gluten-free oats, rice and potatoes as carbohydrate sources")
	}
	return day, adjustments
}

// PlanNotes renders the deterministic nutrition section of a plan from the
// questionnaire. It always includes a sample day with breakfast and lunch.
func PlanNotes(q plan.Questionnaire) string {
	s := GenerateStrategy(q.Goals.PrimaryGoal, q.Nutrition.Approach, q.Nutrition.ProteinTier, q.Availability.DaysPerWeek, q.Experience.BodyWeightKg)
	approach := q.Nutrition.Approach
	if approach == "" {
		approach = "flexible"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Approach: %s. %s\n", approach, s.Notes)
	fmt.Fprintf(&b, "Targets: %s; training days %s, rest days %s; carbohydrate %s; fat %s.\n",
		s.ProteinTarget, s.TrainingDayCalories, s.RestDayCalories, s.Carbs, s.Fats)

	day, adjustments := sampleFor(q.Nutrition.Restrictions)
	fmt.Fprintf(&b, "Sample day: breakfast %s; lunch %s; dinner %s; snack %s.", day.breakfast, day.lunch, day.dinner, day.snack)
	if len(q.Nutrition.Restrictions) > 0 {
		fmt.Fprintf(&b, "\nRestrictions respected: %s", strings.Join(q.Nutrition.Restrictions, ", "))
		if len(adjustments) > 0 {
			b.WriteString("; " + strings.Join(adjustments, "; "))
		}
		b.WriteString(".")
	}
	if len(q.Nutrition.Supplements) > 0 {
		fmt.Fprintf(&b, "\nCurrent supplements: %s.", strings.Join(q.Nutrition.Supplements, ", "))
	}
	return b.String()
}

// Summary is the nutrition block handed to the model.
func Summary(q plan.Questionnaire) string {
	s := GenerateStrategy(q.Goals.PrimaryGoal, q.Nutrition.Approach, q.Nutrition.ProteinTier, q.Availability.DaysPerWeek, q.Experience.BodyWeightKg)
	intensity := EstimateTrainingIntensity(q.Experience.Level, q.Availability.DaysPerWeek, q.Availability.SessionDuration)
	goals := []plan.Goal{q.Goals.PrimaryGoal}
	if q.Goals.SecondaryGoal != "" {
		goals = append(goals, q.Goals.SecondaryGoal)
	}
	return strings.Join([]string{
		"Strategy:\n" + s.String(),
		"Training intensity: " + intensity,
		"Supplements:\n" + RecommendSupplements(goals, q.Nutrition.Supplements, q.Nutrition.Restrictions, intensity),
		"Meal timing:\n" + CreateMealTimingGuidance(q.Availability.TimeOfDay, q.Availability.SessionDuration, q.Goals.PrimaryGoal),
	}, "\n\n")
}
