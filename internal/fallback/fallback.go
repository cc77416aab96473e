// Package fallback builds a complete plan from fixed templates without a
// model. It backs the fallback endpoint, the offline CLI mode and the
// generator when the provider is unavailable.
package fallback

import (
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/enrichment"
	"github.com/yungbote/liftplan-backend/internal/matching"
	"github.com/yungbote/liftplan-backend/internal/normalize"
	"github.com/yungbote/liftplan-backend/internal/nutrition"
	"github.com/yungbote/liftplan-backend/internal/programdesign"
)

const (
	progressionText = "Use double progression: keep the weight until every set reaches the top of the rep range, " +
		"then add 2.5 kg to upper-body lifts or 5 kg to lower-body lifts. Every 5th week, cut sets by about 40% and keep the weights."
	recoveryText = "Sleep 7-9 hours, take at least 1 full rest day per week, and walk 20-30 minutes on off days. " +
		"If a joint hurts during a movement, stop and use the listed substitution."
	disclaimerText = "This plan was generated from standard templates and is general guidance, not medical advice. " +
		"Consult a qualified professional before starting, especially with injuries or health conditions."
	progressionNote = "Add 1-2 reps per set each week; when all sets hit the top of the range, add 2.5-5 kg."
)

// Generate returns a template plan for q. It never fails: restrictions that
// remove every template fall back to full-body templates, then to a small
// set of low-load movements.
func Generate(q plan.Questionnaire) *plan.GeneratedPlan {
	days := clampDays(q.Availability.DaysPerWeek)
	schedule := schedules[days]
	library := homeLibrary
	if q.Equipment.GymAccess {
		library = gymLibrary
	}
	blocked := blockedKeywords(q)
	limit := exerciseLimit(q)
	scheme := programdesign.Scheme(q.Goals.PrimaryGoal)

	p := &plan.GeneratedPlan{
		PlanName:            planName(q, days),
		Overview:            overview(q, days),
		WeeklyStructure:     weeklyStructure(schedule),
		ProgressionGuidance: progressionText,
		NutritionNotes:      nutrition.PlanNotes(q),
		RecoveryNotes:       recoveryText,
		Disclaimer:          disclaimerText,
	}
	for i, dt := range schedule {
		names := exercisesFor(dt, library, blocked)
		if len(names) > limit {
			names = names[:limit]
		}
		day := plan.WorkoutDay{
			DayNumber: i + 1,
			Name:      fmt.Sprintf("Day %d: %s", i+1, dayTitles[dt]),
			Focus:     dayFocus[dt],
			Duration:  fmt.Sprintf("%d minutes", q.Availability.SessionDuration),
			Warmup:    plan.Block{Description: warmup.description, Exercises: append([]string{}, warmup.exercises...)},
			Cooldown:  plan.Block{Description: cooldown.description, Exercises: append([]string{}, cooldown.exercises...)},
			Exercises: make([]plan.Exercise, 0, len(names)),
		}
		for j, name := range names {
			day.Exercises = append(day.Exercises, exercise(q, name, j < 2, scheme, blocked))
		}
		p.Days = append(p.Days, day)
	}
	return p
}

func clampDays(n int) int {
	switch {
	case n < 1:
		return 1
	case n > 7:
		return 7
	}
	return n
}

// exerciseLimit honors the session cap, otherwise scales with session length.
func exerciseLimit(q plan.Questionnaire) int {
	if limit, ok := q.MaxExercises(); ok {
		return limit
	}
	n := 4 + (q.Availability.SessionDuration-30)/30
	return min(max(n, 4), 7)
}

func blockedKeywords(q plan.Questionnaire) []string {
	out := normalize.RestrictedKeywords(q)
	for _, d := range q.Preferences.DislikedExercises {
		if k := matching.Normalize(d); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// exercisesFor filters a day's templates, falling back to full-body
// templates and then to the low-load list.
func exercisesFor(dayType string, library map[string][]string, blocked []string) []string {
	if out := filter(library[dayType], blocked); len(out) > 0 {
		return out
	}
	if out := filter(library[dayFullBody], blocked); len(out) > 0 {
		return out
	}
	return filter(safeLibrary, blocked)
}

func filter(names, blocked []string) []string {
	var out []string
	for _, n := range names {
		if !matching.ContainsAny(n, blocked) {
			out = append(out, n)
		}
	}
	return out
}

func exercise(q plan.Questionnaire, template string, main bool, scheme programdesign.RepScheme, blocked []string) plan.Exercise {
	name := normalize.ForEquipment(q, template)
	if matching.ContainsAny(name, blocked) {
		name = template
	}
	ex := plan.Exercise{
		Name:            name,
		Sets:            programdesign.SetsFor(q.Experience.Level, main),
		Reps:            scheme.AccessoryReps,
		Rest:            scheme.AccessoryRest,
		Substitutions:   filter(substitutes[template], blocked),
		ProgressionNote: progressionNote,
	}
	if ex.Substitutions == nil {
		ex.Substitutions = []string{}
	}
	if main {
		ex.Reps, ex.Rest = scheme.MainReps, scheme.MainRest
		ex.Intent = "Primary lift of the session, trained fresh with the heaviest loads."
		ex.Rationale = "Opens the day so the hardest pattern gets your best effort and progresses fastest."
		ex.Notes = "Leave 1-2 reps in reserve on every set; add the warm-up ramp sets first."
	} else {
		ex.Intent = "Accessory volume for the muscles trained today."
		ex.Rationale = "Adds weekly sets to the session's focus at a lower technical and joint cost."
		ex.Notes = "Controlled tempo; stop 1-2 reps short of failure."
	}
	return ex
}

func planName(q plan.Questionnaire, days int) string {
	goal := enrichment.GoalLabel(q.Goals.PrimaryGoal)
	if goal == "" {
		goal = "general fitness"
	}
	return fmt.Sprintf("%d-Day %s Foundation Plan", days, titleCase(goal))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func overview(q plan.Questionnaire, days int) string {
	eq := "bodyweight and home equipment"
	if q.Equipment.GymAccess {
		eq = "a full gym"
	}
	return fmt.Sprintf("A %d-day template program for %s built around %s. Sessions last about %d minutes and start with the main lifts.",
		days, orDefault(enrichment.GoalLabel(q.Goals.PrimaryGoal), "general fitness"), eq, q.Availability.SessionDuration)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func weeklyStructure(schedule []string) string {
	titles := make([]string, len(schedule))
	for i, dt := range schedule {
		titles[i] = dayTitles[dt]
	}
	return fmt.Sprintf("%s (%d-day)", strings.Join(titles, " / "), len(schedule))
}
