package enrichment

import (
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
)

var levelSentences = map[plan.Level]string{
	plan.LevelBeginner:     "As a beginner with %s of training, the priority is learning the main lifts and building a consistent habit.",
	plan.LevelIntermediate: "As an intermediate lifter with %s of training, progress now comes from structured volume and planned variation.",
	plan.LevelAdvanced:     "As an advanced lifter with %s of training, progress depends on precise fatigue management and periodized intensity.",
}

// GoalLabel renders a goal enum for prose.
func GoalLabel(g plan.Goal) string {
	switch g {
	case "":
		return ""
	case plan.GoalGeneralFitness:
		return "general fitness"
	case plan.GoalSportSpecific:
		return "sport-specific performance"
	}
	return strings.ReplaceAll(string(g), "_", " ")
}

// TimeframeLabel renders "12_weeks" as "12 weeks".
func TimeframeLabel(tf string) string {
	if tf == "" || tf == "ongoing" {
		return "an ongoing timeframe"
	}
	return strings.ReplaceAll(tf, "_", " ")
}

// CreateTrainingNarrative writes the coaching brief from fixed sentences in
// a fixed order: experience, goal, constraint, recovery extreme, schedule.
func CreateTrainingNarrative(q plan.Questionnaire, rp RecoveryProfile, ca ConstraintAnalysis) string {
	var parts []string

	years := fmt.Sprintf("%s years", trimFloat(q.Experience.YearsTraining))
	if q.Experience.YearsTraining == 1 {
		years = "1 year"
	}
	tmpl, ok := levelSentences[q.Experience.Level]
	if !ok {
		tmpl = levelSentences[plan.LevelIntermediate]
	}
	parts = append(parts, fmt.Sprintf(tmpl, years))

	goal := fmt.Sprintf("The main goal is %s over %s", GoalLabel(q.Goals.PrimaryGoal), TimeframeLabel(q.Goals.Timeframe))
	if q.Goals.SecondaryGoal != "" && q.Goals.SecondaryGoal != q.Goals.PrimaryGoal {
		goal += fmt.Sprintf(", with %s as a secondary goal", GoalLabel(q.Goals.SecondaryGoal))
	}
	parts = append(parts, goal+".")

	if ca.PrimaryFactor != FactorNone && ca.Impact != "" {
		parts = append(parts, ca.Impact)
	}

	switch rp.Capacity {
	case CapacityLow:
		parts = append(parts, "Recovery is limited, so volume is conservative and intensity is autoregulated.")
	case CapacityHigh:
		parts = append(parts, "Recovery is strong, so the plan can carry higher weekly volume.")
	}

	days := q.Availability.DaysPerWeek
	switch {
	case days <= 3:
		parts = append(parts, fmt.Sprintf("With %d training days each session needs to cover multiple movement patterns.", days))
	case days >= 5:
		parts = append(parts, fmt.Sprintf("With %d training days, volume is spread so no muscle group is trained on consecutive days without recovery.", days))
	}
	return strings.Join(parts, " ")
}
