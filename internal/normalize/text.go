package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/enrichment"
	"github.com/yungbote/liftplan-backend/internal/matching"
	"github.com/yungbote/liftplan-backend/internal/nutrition"
	"github.com/yungbote/liftplan-backend/internal/programdesign"
	"github.com/yungbote/liftplan-backend/internal/sport"
)

const personalizedMarker = "Personalized for"

func (n *normalizer) rewriteNutrition() {
	n.p.NutritionNotes = nutrition.PlanNotes(n.q)
}

var capacityAdvice = map[string]string{
	enrichment.CapacityLow:      "keep most sets 2-3 reps from failure and take the full rest periods.",
	enrichment.CapacityModerate: "leave 1-2 reps in reserve on most sets.",
	enrichment.CapacityHigh:     "you can push the last set of main lifts close to failure.",
}

func (n *normalizer) rewriteRecovery() {
	rec := n.q.Recovery
	rp := enrichment.SynthesizeRecoveryProfile(rec, n.q.Availability)
	hours := strconv.FormatFloat(rec.SleepHours, 'f', -1, 64)

	var lines []string
	if rec.SleepHours < 7 {
		lines = append(lines, fmt.Sprintf("You sleep about %s hours; add 30-60 minutes where you can, most adaptation happens overnight.", hours))
	} else {
		lines = append(lines, fmt.Sprintf("Keep sleep at %s hours or more on a consistent schedule.", hours))
	}
	if rec.SleepQuality == "poor" || rec.SleepQuality == "fair" {
		lines = append(lines, fmt.Sprintf("Sleep quality is %s: keep the room dark and cool and hold a fixed wake time.", rec.SleepQuality))
	}
	if rec.StressLevel == "high" || rec.StressLevel == "very_high" {
		lines = append(lines, fmt.Sprintf("Stress is %s; on rough days swap the hardest session for a 30 minute walk.", strings.ReplaceAll(rec.StressLevel, "_", " ")))
	}
	lines = append(lines, fmt.Sprintf("Recovery capacity is %s (score %d/10): %s", rp.Capacity, rp.Score, capacityAdvice[rp.Capacity]))
	lines = append(lines, "Take at least 1 full rest day per week and walk on off days.")
	n.p.RecoveryNotes = strings.Join(lines, " ")
}

// appendOverview adds the goal, targets and a personalization line to the
// overview unless each is already there.
func (n *normalizer) appendOverview() {
	ov := strings.TrimSpace(n.p.Overview)
	var add []string
	if goal := enrichment.GoalLabel(n.q.Goals.PrimaryGoal); goal != "" && !matching.Contains(ov, goal) {
		s := "Built for " + goal
		if tf := enrichment.TimeframeLabel(n.q.Goals.Timeframe); tf != "" {
			s += " over " + tf
		}
		add = append(add, s+".")
	}
	if t := strings.TrimSpace(n.q.Goals.SpecificTargets); t != "" && !strings.Contains(strings.ToLower(ov), strings.ToLower(t)) {
		add = append(add, "Targets: "+strings.TrimRight(t, ".")+".")
	}
	if !strings.Contains(ov, personalizedMarker) {
		if s := n.personalization(); s != "" {
			add = append(add, s)
		}
	}
	if len(add) == 0 {
		return
	}
	if ov != "" {
		add = append([]string{ov}, add...)
	}
	n.p.Overview = strings.Join(add, " ")
}

func (n *normalizer) personalization() string {
	q := n.q
	parts := []string{fmt.Sprintf("%d training days of %d minutes", q.Availability.DaysPerWeek, q.Availability.SessionDuration)}
	if len(n.favorites) > 0 {
		parts = append(parts, "your favorite "+q.Preferences.FavoriteExercises[0])
	}
	if len(q.Goals.WeakPoints) > 0 {
		parts = append(parts, "extra work on "+q.Goals.WeakPoints[0])
	}
	if c := q.Preferences.CardioPreference; c != "" && c != "none" {
		parts = append(parts, c+" cardio")
	}
	switch {
	case q.Equipment.GymAccess:
		parts = append(parts, "full gym access")
	case len(q.Equipment.Available) > 0:
		parts = append(parts, "home equipment ("+strings.Join(q.Equipment.Available, ", ")+")")
	default:
		parts = append(parts, "bodyweight training")
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	list := parts[0]
	if len(parts) > 1 {
		list = strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
	return personalizedMarker + ": " + list + "."
}

func (n *normalizer) setWeeklyStructure() {
	if s := strings.TrimSpace(n.q.Preferences.PreferredSplit); s != "" {
		n.p.WeeklyStructure = s
		return
	}
	if key, ok := sport.Detect(n.q); ok {
		n.p.WeeklyStructure = sport.Label(key) + " Performance Split"
		return
	}
	if n.sport {
		n.p.WeeklyStructure = "Athletic Performance Split"
		return
	}
	n.p.WeeklyStructure = programdesign.Build(n.q).Split
}

func (n *normalizer) rewriteProgression() {
	d := programdesign.Build(n.q)
	n.p.ProgressionGuidance = strings.Join([]string{
		d.ProgressionModel,
		fmt.Sprintf("Main lifts: %s reps with %s rest.", d.Reps.MainReps, d.Reps.MainRest),
		fmt.Sprintf("Accessories: %s reps with %s rest.", d.Reps.AccessoryReps, d.Reps.AccessoryRest),
		fmt.Sprintf("Weekly volume: %s, capped near %d sets.", d.WeeklySetTarget, d.MaxSetsPerWeek),
		d.Deload,
	}, " ")
}

// labelDays prefixes day names with the preferred weekday labels, replacing
// a label added by an earlier pass.
func (n *normalizer) labelDays() {
	labels := n.q.Availability.PreferredDays
	for i := range n.p.Days {
		if i >= len(labels) {
			return
		}
		label := strings.TrimSpace(labels[i])
		if label == "" {
			continue
		}
		d := &n.p.Days[i]
		name := d.Name
		for _, l := range labels {
			if l = strings.TrimSpace(l); l != "" && strings.HasPrefix(name, l+": ") {
				name = strings.TrimPrefix(name, l+": ")
				break
			}
		}
		d.Name = label + ": " + name
	}
}
