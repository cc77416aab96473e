// Package programdesign derives the training prescription (split, rep and
// rest windows, volume, progression and deload cadence) from a questionnaire.
package programdesign

import (
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/enrichment"
)

type RepScheme struct {
	MainReps      string `json:"mainReps"`
	AccessoryReps string `json:"accessoryReps"`
	MainRest      string `json:"mainRest"`
	AccessoryRest string `json:"accessoryRest"`
}

type Design struct {
	Split            string    `json:"split"`
	Reps             RepScheme `json:"reps"`
	WeeklySetTarget  string    `json:"weeklySetTarget"`
	MaxSetsPerWeek   int       `json:"maxSetsPerWeek"`
	ProgressionModel string    `json:"progressionModel"`
	DeloadWeeks      int       `json:"deloadWeeks"`
	Deload           string    `json:"deload"`
	Cardio           string    `json:"cardio"`
	Recovery         string    `json:"recovery"`
}

var (
	strengthScheme = RepScheme{"3-6", "6-10", "2-3 min", "90-120s"}

	repSchemes = map[plan.Goal]RepScheme{
		plan.GoalStrength:       strengthScheme,
		plan.GoalMuscleBuilding: {"6-10", "8-15", "90-120s", "60-90s"},
		plan.GoalFatLoss:        {"8-12", "10-15", "90s", "45-75s"},
		plan.GoalEndurance:      {"12-20", "15-20", "60-90s", "45-60s"},
		plan.GoalSportSpecific:  strengthScheme,
	}
	defaultScheme = RepScheme{"6-12", "8-15", "90s", "60-90s"}
)

// Scheme returns the rep/rest table row for a goal.
func Scheme(goal plan.Goal) RepScheme {
	if s, ok := repSchemes[goal]; ok {
		return s
	}
	return defaultScheme
}

var weeklySetTargets = map[plan.Level]string{
	plan.LevelBeginner:     "10-12 hard sets per muscle group per week",
	plan.LevelIntermediate: "12-16 hard sets per muscle group per week",
	plan.LevelAdvanced:     "16-22 hard sets per muscle group per week",
}

var progressionModels = map[plan.Level]string{
	plan.LevelBeginner: "Linear progression: add 2.5 kg to upper-body lifts and 5 kg to lower-body lifts each session while every rep is completed; " +
		"repeat the weight after a missed session and drop it 10% after two misses in a row.",
	plan.LevelIntermediate: "Wave progression: run 3-week waves at roughly 70%, 75% and 80% of 1RM (or 1 more rep each week at a fixed load), " +
		"then restart the wave 2.5-5 kg heavier.",
	plan.LevelAdvanced: "Block periodization: 3-4 weeks of accumulation (higher volume at 65-75%), 2-3 weeks of intensification (75-87%), " +
		"then 1-2 weeks of realization before testing or restarting.",
}

// SetsFor returns working sets for main (first two) or accessory exercises.
func SetsFor(level plan.Level, main bool) int {
	switch level {
	case plan.LevelBeginner:
		if main {
			return 3
		}
		return 2
	case plan.LevelAdvanced:
		if main {
			return 5
		}
		return 3
	}
	if main {
		return 4
	}
	return 3
}

// RecommendSplit honors an explicit preference, otherwise maps training days
// to a split.
func RecommendSplit(daysPerWeek int, recoveryCapacity string, level plan.Level, preferred string) string {
	if p := strings.TrimSpace(preferred); p != "" {
		return p
	}
	switch {
	case daysPerWeek <= 2:
		return "Full Body (2-day)"
	case daysPerWeek == 3:
		return "Full Body (3-day)"
	case daysPerWeek == 4:
		return "Upper/Lower (4-day)"
	case daysPerWeek == 5:
		if recoveryCapacity == "high" && level != plan.LevelBeginner {
			return "Push/Pull/Legs + Upper/Lower (5-day)"
		}
		return "Upper/Lower + Conditioning (5-day)"
	}
	if recoveryCapacity == "high" {
		return fmt.Sprintf("Push/Pull/Legs (%d-day)", daysPerWeek)
	}
	return fmt.Sprintf("Upper/Lower (%d-day)", daysPerWeek)
}

const overtrainingSigns = "Deload early if you notice two or more warning signs: performance dropping for 2+ sessions, elevated resting heart rate, " +
	"poor sleep, persistent joint aches, or loss of motivation."

// DeloadGuidance returns the deload interval in weeks and its description.
func DeloadGuidance(q plan.Questionnaire) (int, string) {
	weeks := 4
	if q.Experience.Level == plan.LevelBeginner {
		weeks = 8
	}
	var reasons []string
	if q.Recovery.StressLevel == "high" || q.Recovery.StressLevel == "very_high" {
		weeks--
		reasons = append(reasons, "high stress")
	}
	if q.Recovery.RecoveryCapacity == "low" {
		weeks--
		reasons = append(reasons, "low recovery capacity")
	}
	if q.Recovery.SleepQuality == "poor" || q.Recovery.SleepHours < 6 {
		weeks--
		reasons = append(reasons, "poor sleep")
	}
	if q.Experience.YearsTraining > 5 {
		weeks--
		reasons = append(reasons, "training age over 5 years")
	}
	if weeks < 3 {
		weeks = 3
	}

	var protocol string
	switch q.Experience.Level {
	case plan.LevelBeginner:
		protocol = "reduce sets by 40% and keep the same weights, focusing on technique"
	case plan.LevelAdvanced:
		protocol = "reduce sets by 50% and load by 10-15%, keeping one top single at RPE 7 on the main lifts"
	default:
		protocol = "reduce sets by 40-50% and load by 10%, keeping rep targets the same"
	}

	text := fmt.Sprintf("Deload every %d weeks", weeks)
	if len(reasons) > 0 {
		text += " (shortened for " + strings.Join(reasons, ", ") + ")"
	}
	text += fmt.Sprintf(". During the deload week, %s. %s", protocol, overtrainingSigns)
	return weeks, text
}

var cardioGuidance = map[string]string{
	"none":      "No dedicated cardio sessions; keep daily activity at 7,000-10,000 steps.",
	"minimal":   "One 10-minute conditioning finisher per week plus daily walking.",
	"moderate":  "Two 20-30 minute zone 2 sessions per week plus short finishers on lifting days.",
	"extensive": "Three or more cardio sessions per week; keep hard intervals at least 6 hours away from heavy lower-body lifting.",
}

func recoveryModifier(score int) string {
	switch {
	case score <= 4:
		return "Recovery is limited: keep most sets at RPE 7-8 and take an extra rest day if performance drops two sessions in a row."
	case score >= 7:
		return "Recovery is strong: weekly volume can progress toward the top of the set target."
	}
	return "Recovery is typical: leave 1-2 reps in reserve on most sets and push the last set of main lifts."
}

// Build assembles the full design for a questionnaire.
func Build(q plan.Questionnaire) Design {
	rp := enrichment.SynthesizeRecoveryProfile(q.Recovery, q.Availability)
	level := q.Experience.Level
	d := Design{
		Split:            RecommendSplit(q.Availability.DaysPerWeek, q.Recovery.RecoveryCapacity, level, q.Preferences.PreferredSplit),
		Reps:             Scheme(q.Goals.PrimaryGoal),
		WeeklySetTarget:  weeklySetTargets[level],
		MaxSetsPerWeek:   enrichment.CalculateMaxSetsPerWeek(rp, level),
		ProgressionModel: progressionModels[level],
		Recovery:         recoveryModifier(rp.Score),
	}
	if d.WeeklySetTarget == "" {
		d.WeeklySetTarget = weeklySetTargets[plan.LevelIntermediate]
	}
	if d.ProgressionModel == "" {
		d.ProgressionModel = progressionModels[plan.LevelIntermediate]
	}
	d.DeloadWeeks, d.Deload = DeloadGuidance(q)
	d.Cardio = cardioGuidance[q.Preferences.CardioPreference]
	if d.Cardio == "" {
		d.Cardio = cardioGuidance["minimal"]
	}
	return d
}

// Blueprint renders the design as the prompt's program section.
func (d Design) Blueprint() string {
	return strings.Join([]string{
		"Split: " + d.Split,
		fmt.Sprintf("Main lifts: %s reps, rest %s", d.Reps.MainReps, d.Reps.MainRest),
		fmt.Sprintf("Accessories: %s reps, rest %s", d.Reps.AccessoryReps, d.Reps.AccessoryRest),
		fmt.Sprintf("Weekly volume: %s (cap %d)", d.WeeklySetTarget, d.MaxSetsPerWeek),
		"Progression: " + d.ProgressionModel,
		"Deload: " + d.Deload,
		"Cardio: " + d.Cardio,
		"Recovery: " + d.Recovery,
	}, "\n")
}
