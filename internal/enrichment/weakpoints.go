package enrichment

import (
	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

// Equipment tiers in fallback order.
const (
	TierBarbell    = "barbell"
	TierDumbbell   = "dumbbell"
	TierCable      = "cable"
	TierPullUpBar  = "pull-up bar"
	TierBodyweight = "bodyweight"
)

var tierOrder = []string{TierBarbell, TierDumbbell, TierCable, TierPullUpBar, TierBodyweight}

var tierKeywords = map[string][]string{
	TierBarbell:   {"barbell", "squat rack", "power rack"},
	TierDumbbell:  {"dumbbell", "kettlebell"},
	TierCable:     {"cable", "pulley", "resistance band", "band"},
	TierPullUpBar: {"pull-up bar", "pullup bar", "chin-up bar", "pull up"},
}

type WeakPointMapping struct {
	WeakPoint string   `json:"weakPoint"`
	Category  string   `json:"category"`
	Priority  string   `json:"priority"`
	Exercises []string `json:"exercises"`
}

type tieredExercise struct {
	tier string
	name string
}

type weakPointCategory struct {
	name      string
	keywords  []string
	priority  string
	exercises []tieredExercise
}

var weakPointTaxonomy = []weakPointCategory{
	{"back", []string{"back", "lat", "posture", "rhomboid", "trap"}, "high", []tieredExercise{
		{TierBarbell, "Pendlay Row"}, {TierDumbbell, "One-Arm Dumbbell Row"}, {TierCable, "Seated Cable Row"},
		{TierPullUpBar, "Chin-Up"}, {TierBodyweight, "Inverted Row"},
	}},
	{"chest", []string{"chest", "pec"}, "high", []tieredExercise{
		{TierBarbell, "Paused Bench Press"}, {TierDumbbell, "Incline Dumbbell Press"}, {TierCable, "Cable Fly"},
		{TierBodyweight, "Deficit Push-Up"},
	}},
	{"legs", []string{"leg", "quad", "hamstring", "glute", "calf", "calves", "lower body"}, "high", []tieredExercise{
		{TierBarbell, "Front Squat"}, {TierDumbbell, "Bulgarian Split Squat"}, {TierCable, "Cable Pull-Through"},
		{TierBodyweight, "Single-Leg Glute Bridge"},
	}},
	{"shoulders", []string{"shoulder", "delt"}, "medium", []tieredExercise{
		{TierBarbell, "Push Press"}, {TierDumbbell, "Dumbbell Lateral Raise"}, {TierCable, "Face Pull"},
		{TierBodyweight, "Pike Push-Up"},
	}},
	{"arms", []string{"arm", "bicep", "tricep", "forearm", "grip"}, "low", []tieredExercise{
		{TierBarbell, "EZ-Bar Curl"}, {TierDumbbell, "Hammer Curl"}, {TierCable, "Cable Triceps Pushdown"},
		{TierBodyweight, "Bench Dip"},
	}},
	{"core", []string{"core", "abs", "abdominal", "oblique", "stability", "trunk"}, "medium", []tieredExercise{
		{TierCable, "Pallof Press"}, {TierPullUpBar, "Hanging Leg Raise"}, {TierBodyweight, "Dead Bug"},
		{TierBodyweight, "Side Plank"},
	}},
}

var genericWeakPoint = weakPointCategory{"generic", nil, "low", []tieredExercise{
	{TierDumbbell, "Dumbbell Farmer Carry"}, {TierBodyweight, "Bear Crawl"}, {TierBodyweight, "Plank"},
}}

// DetectEquipmentTiers returns the tiers present in the equipment list.
// Bodyweight is always present.
func DetectEquipmentTiers(available []string) map[string]bool {
	out := map[string]bool{TierBodyweight: true}
	for tier, kws := range tierKeywords {
		for _, item := range available {
			if matching.ContainsAny(item, kws) {
				out[tier] = true
				break
			}
		}
	}
	return out
}

// EquipmentFor lists the equipment a questionnaire implies; gym access
// means every tier is available.
func EquipmentFor(q plan.Questionnaire) []string {
	if q.Equipment.GymAccess {
		return []string{TierBarbell, TierDumbbell, TierCable, TierPullUpBar}
	}
	return q.Equipment.Available
}

// MapWeakPointsToExercises maps each weak point to every taxonomy category it
// mentions (or the generic bucket) and picks up to three exercises the
// equipment supports, walking tiers from barbell down to bodyweight.
func MapWeakPointsToExercises(weakPoints []string, availableEquipment []string) []WeakPointMapping {
	tiers := DetectEquipmentTiers(availableEquipment)
	var out []WeakPointMapping
	for _, wp := range weakPoints {
		matched := false
		for _, cat := range weakPointTaxonomy {
			if matching.ContainsAny(wp, cat.keywords) {
				matched = true
				out = append(out, mapCategory(wp, cat, tiers))
			}
		}
		if !matched {
			out = append(out, mapCategory(wp, genericWeakPoint, tiers))
		}
	}
	return out
}

func mapCategory(wp string, cat weakPointCategory, tiers map[string]bool) WeakPointMapping {
	m := WeakPointMapping{WeakPoint: wp, Category: cat.name, Priority: cat.priority}
	for _, tier := range tierOrder {
		if !tiers[tier] {
			continue
		}
		for _, ex := range cat.exercises {
			if ex.tier == tier && len(m.Exercises) < 3 {
				m.Exercises = append(m.Exercises, ex.name)
			}
		}
	}
	return m
}
