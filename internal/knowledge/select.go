package knowledge

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

const DefaultCharBudget = 6000

var goalTerms = map[plan.Goal][]string{
	plan.GoalStrength:       {"strength", "intensity"},
	plan.GoalMuscleBuilding: {"hypertrophy", "volume"},
	plan.GoalFatLoss:        {"fat loss", "conditioning", "nutrition"},
	plan.GoalEndurance:      {"endurance", "cardio"},
	plan.GoalSportSpecific:  {"sport", "power"},
	plan.GoalGeneralFitness: {"strength", "cardio"},
}

// Terms derives the scoring terms for a questionnaire.
func Terms(q plan.Questionnaire) []string {
	set := map[string]bool{"progression": true}
	add := func(ts ...string) {
		for _, t := range ts {
			if t = matching.Normalize(t); t != "" {
				set[t] = true
			}
		}
	}
	add(goalTerms[q.Goals.PrimaryGoal]...)
	add(goalTerms[q.Goals.SecondaryGoal]...)
	add(string(q.Experience.Level))
	if q.Experience.Level == plan.LevelAdvanced || q.Experience.Level == plan.LevelIntermediate {
		add("periodization")
	}
	for _, wp := range q.Goals.WeakPoints {
		add(Tag(wp)...)
	}
	add(Tag(q.Goals.SportDetail + " " + q.Goals.SpecificTargets)...)

	if len(q.Injuries.Current) > 0 || len(q.Injuries.MovementRestrictions) > 0 || len(q.Injuries.PainAreas) > 0 {
		add("injury")
	}
	for _, inj := range append(append([]plan.Injury{}, q.Injuries.Current...), q.Injuries.Past...) {
		add(Tag(inj.Area)...)
	}
	for _, a := range q.Injuries.PainAreas {
		add(Tag(a)...)
	}

	if !q.Equipment.GymAccess {
		add("home")
		if len(q.Equipment.Available) == 0 {
			add("bodyweight")
		}
	}
	for _, e := range q.Equipment.Available {
		add(Tag(e)...)
	}

	switch q.Preferences.CardioPreference {
	case "moderate", "extensive":
		add("cardio", "conditioning")
	}
	if q.Recovery.SleepHours < 7 || q.Recovery.SleepQuality == "poor" || q.Recovery.SleepQuality == "fair" {
		add("sleep", "recovery")
	}
	if q.Recovery.StressLevel == "high" || q.Recovery.StressLevel == "very_high" {
		add("stress", "recovery", "deload")
	}
	if q.Recovery.RecoveryCapacity == "low" {
		add("recovery", "deload")
	}
	if q.Nutrition.ProteinTier != "" || len(q.Nutrition.Supplements) > 0 {
		add("nutrition", "protein")
	}

	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Score counts the block keywords covered by terms.
func Score(bl Block, terms []string) int {
	n := 0
	for _, kw := range bl.Keywords {
		for _, t := range terms {
			if t == kw || matching.Contains(t, kw) {
				n++
				break
			}
		}
	}
	return n
}

// Select returns the excerpt for a prompt. With a questionnaire, blocks are
// ranked by keyword overlap (ties by ID) and packed under budget characters,
// cutting the last one short. Without one, all blocks are concatenated and
// truncated. Placeholder blocks never contribute; a base of only
// placeholders yields "".
func Select(base *Base, q *plan.Questionnaire, budget int) string {
	if budget <= 0 {
		budget = DefaultCharBudget
	}
	var usable []Block
	for _, bl := range base.Blocks() {
		if !bl.IsPlaceholder() {
			usable = append(usable, bl)
		}
	}
	if len(usable) == 0 {
		return ""
	}
	if q == nil {
		return pack(usable, budget)
	}

	terms := Terms(*q)
	type scored struct {
		block Block
		score int
	}
	var ranked []scored
	for _, bl := range usable {
		if s := Score(bl, terms); s > 0 {
			ranked = append(ranked, scored{bl, s})
		}
	}
	if len(ranked) == 0 {
		return pack(usable, budget)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].block.ID < ranked[j].block.ID
	})
	blocks := make([]Block, len(ranked))
	for i, r := range ranked {
		blocks[i] = r.block
	}
	return pack(blocks, budget)
}

func render(bl Block) string {
	head := bl.Title
	if head == "" {
		head = bl.ID
	}
	if bl.Source != "" {
		head += " (" + bl.Source + ")"
	}
	return "### " + head + "\n" + bl.Text
}

func pack(blocks []Block, budget int) string {
	var b strings.Builder
	used := 0
	for _, bl := range blocks {
		sep := 0
		if b.Len() > 0 {
			sep = 2
		}
		text := render(bl)
		remaining := budget - used - sep
		if remaining <= 0 {
			break
		}
		if sep > 0 {
			b.WriteString("\n\n")
		}
		n := utf8.RuneCountInString(text)
		if n > remaining {
			b.WriteString(truncateRunes(text, remaining))
			break
		}
		b.WriteString(text)
		used += sep + n
	}
	return b.String()
}
