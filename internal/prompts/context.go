package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/enrichment"
	"github.com/yungbote/liftplan-backend/internal/knowledge"
	"github.com/yungbote/liftplan-backend/internal/nutrition"
	"github.com/yungbote/liftplan-backend/internal/programdesign"
	"github.com/yungbote/liftplan-backend/internal/quality"
	"github.com/yungbote/liftplan-backend/internal/sport"
)

type Options struct {
	Knowledge    *knowledge.Base
	CharBudget   int
	ExistingPlan string
}

func section(title, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	return "## " + title + "\n" + body
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// BuildContext assembles the user block. Sections appear in a fixed order
// and are omitted only when empty.
func BuildContext(q plan.Questionnaire, opts Options) string {
	rp := enrichment.SynthesizeRecoveryProfile(q.Recovery, q.Availability)
	ca := enrichment.AnalyzeConstraints(q)
	design := programdesign.Build(q)

	sections := []string{
		section("COACHING BRIEF", coachingBrief(q, rp, ca)),
		section("CFOS KNOWLEDGE BASE", knowledge.Select(opts.Knowledge, &q, opts.CharBudget)),
		section("NUTRITION INTEGRATION", nutrition.Summary(q)),
	}
	if s, ok := sport.Detect(q); ok {
		sections = append(sections, section("SPORT-SPECIFIC GUIDANCE", sport.Guidance(s)))
	}
	sections = append(sections,
		section("TRAINING PRESCRIPTION", prescription(q)),
		section("PROGRAM DESIGN BLUEPRINT", design.Blueprint()),
		section("QUESTIONNAIRE", questionnaireDump(q)),
	)
	if ep := strings.TrimSpace(opts.ExistingPlan); ep != "" {
		sections = append(sections, section("EXISTING PLAN (UPDATE MODE)",
			"Modify the athlete's current plan below instead of starting over. Keep exercises and structure that still fit, "+
				"apply the questionnaire changes, and return the full updated plan.\n\n"+ep))
	}

	var out []string
	for _, s := range sections {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}

func coachingBrief(q plan.Questionnaire, rp enrichment.RecoveryProfile, ca enrichment.ConstraintAnalysis) string {
	var b strings.Builder
	b.WriteString(enrichment.CreateTrainingNarrative(q, rp, ca))
	b.WriteString("\n\nRecovery profile: " + rp.Narrative)
	fmt.Fprintf(&b, "\nPrimary constraint: %s. %s", ca.PrimaryFactor, ca.Impact)

	if maps := enrichment.MapWeakPointsToExercises(q.Goals.WeakPoints, enrichment.EquipmentFor(q)); len(maps) > 0 {
		b.WriteString("\nWeak-point priorities:")
		for _, m := range maps {
			fmt.Fprintf(&b, "\n- %s (%s, %s priority): %s", m.WeakPoint, m.Category, m.Priority, orNone(m.Exercises))
		}
	}

	p := q.Preferences
	fmt.Fprintf(&b, "\nPreferences: favorites %s; dislikes %s; preferred split %s; cardio %s.",
		orNone(p.FavoriteExercises), orNone(p.DislikedExercises), orDefault(p.PreferredSplit, "none"), orDefault(p.CardioPreference, "unspecified"))

	perf := fmt.Sprintf("\nPerformance context: %s years training, consistency %s",
		strings.TrimSuffix(fmt.Sprintf("%.1f", q.Experience.YearsTraining), ".0"), orDefault(q.Experience.Consistency, "unspecified"))
	if w := q.Experience.BodyWeightKg; w != nil {
		perf += fmt.Sprintf(", body weight %.1f kg", *w)
	}
	if l := q.Experience.CurrentLifts; l != nil {
		var lifts []string
		add := func(name string, v *float64) {
			if v != nil {
				lifts = append(lifts, fmt.Sprintf("%s %.1f kg", name, *v))
			}
		}
		add("squat", l.Squat)
		add("bench", l.Bench)
		add("deadlift", l.Deadlift)
		add("overhead press", l.OverheadPress)
		if len(lifts) > 0 {
			perf += ", current lifts: " + strings.Join(lifts, ", ")
		}
	}
	b.WriteString(perf + ".")
	return b.String()
}

func prescription(q plan.Questionnaire) string {
	var lines []string
	av := q.Availability
	lines = append(lines, fmt.Sprintf("Days per week: %d (the plan must contain exactly %d days)", av.DaysPerWeek, av.DaysPerWeek))
	lines = append(lines, fmt.Sprintf("Session duration: %d minutes, time of day: %s", av.SessionDuration, orDefault(av.TimeOfDay, "flexible")))
	if len(av.PreferredDays) > 0 {
		lines = append(lines, "Preferred days: "+strings.Join(av.PreferredDays, ", "))
	}
	if n, ok := q.MaxExercises(); ok {
		lines = append(lines, fmt.Sprintf("Exercises per session: exactly %d", n))
	}
	eq := q.Equipment
	if eq.GymAccess {
		lines = append(lines, fmt.Sprintf("Equipment: full gym access (%s)", orDefault(eq.GymType, "commercial")))
	} else {
		lines = append(lines, "Equipment: no gym; available "+orNone(eq.Available))
	}
	if len(eq.Limited) > 0 {
		lines = append(lines, "Limited equipment: "+strings.Join(eq.Limited, ", "))
	}
	var injuries []string
	for _, inj := range q.Injuries.Current {
		s := fmt.Sprintf("%s (%s)", inj.Area, inj.Severity)
		if inj.Notes != "" {
			s += ": " + inj.Notes
		}
		injuries = append(injuries, s)
	}
	lines = append(lines, "Current injuries: "+orNone(injuries))
	if len(q.Injuries.MovementRestrictions) > 0 {
		lines = append(lines, "Movement restrictions: "+strings.Join(q.Injuries.MovementRestrictions, ", "))
	}
	if len(q.Injuries.PainAreas) > 0 {
		lines = append(lines, "Pain areas: "+strings.Join(q.Injuries.PainAreas, ", "))
	}
	if q.Goals.SpecificTargets != "" {
		lines = append(lines, "Specific targets: "+q.Goals.SpecificTargets)
	}
	if q.Constraints.Notes != "" {
		lines = append(lines, "Notes: "+q.Constraints.Notes)
	}
	return strings.Join(lines, "\n")
}

func questionnaireDump(q plan.Questionnaire) string {
	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// UserEcho restates the athlete specifics the feedback prompt must honor.
func UserEcho(q plan.Questionnaire) string {
	var injuries []string
	for _, inj := range q.Injuries.Current {
		injuries = append(injuries, fmt.Sprintf("%s (%s)", inj.Area, inj.Severity))
	}
	equipment := "full gym"
	if !q.Equipment.GymAccess {
		equipment = "no gym; " + orNone(q.Equipment.Available)
	}
	return strings.Join([]string{
		"Weak points: " + orNone(q.Goals.WeakPoints),
		"Equipment: " + equipment,
		"Injuries: " + orNone(injuries),
		"Favorites (each as its own exercise): " + orNone(q.Preferences.FavoriteExercises),
		"Dislikes (never include): " + orNone(q.Preferences.DislikedExercises),
	}, "\n")
}

type requirements struct {
	Goals            plan.Goals           `json:"goals"`
	Availability     plan.Availability    `json:"availability"`
	Preferences      plan.Preferences     `json:"preferences"`
	Recovery         plan.Recovery        `json:"recovery"`
	Nutrition        plan.Nutrition       `json:"nutrition"`
	Constraints      plan.Constraints     `json:"constraints"`
	RecommendedSplit string               `json:"recommendedSplit"`
	ProgramDesign    programdesign.Design `json:"programDesign"`
}

// Requirements renders the must-match object for the refinement pass.
func Requirements(q plan.Questionnaire) (string, error) {
	d := programdesign.Build(q)
	data, err := json.MarshalIndent(requirements{
		Goals:            q.Goals,
		Availability:     q.Availability,
		Preferences:      q.Preferences,
		Recovery:         q.Recovery,
		Nutrition:        q.Nutrition,
		Constraints:      q.Constraints,
		RecommendedSplit: d.Split,
		ProgramDesign:    d,
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func planJSON(p *plan.GeneratedPlan) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode plan: %w", err)
	}
	return string(data), nil
}

// Draft builds the initial generation prompt.
func Draft(q plan.Questionnaire, opts Options) (Prompt, error) {
	return Build(NameDraft, Input{
		DaysPerWeek:   q.Availability.DaysPerWeek,
		BannedPhrases: quality.BannedPhrases,
		Context:       BuildContext(q, opts),
	})
}

// Feedback builds the corrective retry prompt.
func Feedback(q plan.Questionnaire, opts Options, previous *plan.GeneratedPlan, issues []string) (Prompt, error) {
	pj, err := planJSON(previous)
	if err != nil {
		return Prompt{}, err
	}
	return Build(NameFeedback, Input{
		DaysPerWeek:   q.Availability.DaysPerWeek,
		BannedPhrases: quality.BannedPhrases,
		Context:       BuildContext(q, opts),
		PlanJSON:      pj,
		Issues:        issues,
		UserEcho:      UserEcho(q),
	})
}

// Refine builds the requirements review prompt.
func Refine(q plan.Questionnaire, current *plan.GeneratedPlan) (Prompt, error) {
	pj, err := planJSON(current)
	if err != nil {
		return Prompt{}, err
	}
	req, err := Requirements(q)
	if err != nil {
		return Prompt{}, err
	}
	return Build(NameRefine, Input{
		DaysPerWeek:  q.Availability.DaysPerWeek,
		PlanJSON:     pj,
		Requirements: req,
	})
}

// Repair builds the fix-this-JSON prompt.
func Repair(q plan.Questionnaire, broken string, parseErr error) (Prompt, error) {
	msg := ""
	if parseErr != nil {
		msg = parseErr.Error()
	}
	return Build(NameRepair, Input{
		DaysPerWeek: q.Availability.DaysPerWeek,
		BrokenText:  broken,
		ParseError:  msg,
	})
}
