package normalize

import (
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/enrichment"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

// tierMachine covers fixed gym machines; it is only available with gym access.
const tierMachine = "machine"

type equipment struct {
	gym   bool
	tiers map[string]bool
}

func equipmentFor(q plan.Questionnaire) equipment {
	if q.Equipment.GymAccess {
		return equipment{gym: true}
	}
	return equipment{tiers: enrichment.DetectEquipmentTiers(q.Equipment.Available)}
}

func (e equipment) has(tier string) bool {
	if e.gym || tier == enrichment.TierBodyweight {
		return true
	}
	if tier == tierMachine {
		return false
	}
	return e.tiers[tier]
}

type tierRule struct {
	tier     string
	keywords []string
	unless   []string
}

// Checked in order; the first rule that matches decides what an exercise
// needs. Names matching nothing are bodyweight.
var tierRules = []tierRule{
	{tierMachine, []string{"machine", "smith", "leg press", "leg extension", "leg curl", "pec deck", "hack squat", "pulldown", "assisted", "sled", "erg", "bike", "treadmill"}, []string{"sliding", "nordic", "dumbbell", "band"}},
	{enrichment.TierCable, []string{"cable", "pushdown", "face pull", "pallof", "crossover", "band"}, nil},
	{enrichment.TierDumbbell, []string{"dumbbell", "kettlebell", "goblet"}, nil},
	{enrichment.TierPullUpBar, []string{"pull up", "chin up", "hanging", "muscle up"}, nil},
	{enrichment.TierBarbell, []string{"barbell", "ez bar", "t bar", "trap bar", "landmine", "good morning", "pendlay", "clean", "snatch", "push press"}, nil},
	{enrichment.TierBarbell, []string{"squat"}, []string{"goblet", "split", "bodyweight", "pistol", "jump", "air", "sissy", "cossack"}},
	{enrichment.TierBarbell, []string{"bench press", "overhead press", "military press", "shoulder press"}, []string{"push up"}},
	{enrichment.TierBarbell, []string{"deadlift", "hip thrust"}, []string{"single leg", "bodyweight"}},
	{enrichment.TierBarbell, []string{"row"}, []string{"inverted", "rowing", "throw", "narrow", "renegade"}},
}

// requiredTier infers the equipment an exercise name needs.
func requiredTier(name string) string {
	for _, r := range tierRules {
		if matching.ContainsAny(name, r.keywords) && !matching.ContainsAny(name, r.unless) {
			return r.tier
		}
	}
	return enrichment.TierBodyweight
}

type option struct {
	tier string
	name string
}

type family struct {
	keywords []string
	unless   []string
	options  []option
}

var (
	tBar = enrichment.TierBarbell
	tDB  = enrichment.TierDumbbell
	tCab = enrichment.TierCable
	tPU  = enrichment.TierPullUpBar
	tBW  = enrichment.TierBodyweight
)

// Substitution families, most specific first. Options are in preference
// order; each option name needs exactly its listed tier.
var families = []family{
	{[]string{"leg extension"}, nil, []option{{tDB, "Goblet Split Squat"}, {tBW, "Bulgarian Split Squat"}}},
	{[]string{"leg curl"}, nil, []option{{tBW, "Sliding Leg Curl"}}},
	{[]string{"hanging", "knee raise", "leg raise", "toes to bar"}, nil, []option{{tPU, "Hanging Leg Raise"}, {tBW, "Lying Leg Raise"}}},
	{[]string{"squat", "leg press"}, nil, []option{{tBar, "Back Squat"}, {tDB, "Goblet Squat"}, {tBW, "Bodyweight Squat"}}},
	{[]string{"pec deck", "fly", "crossover"}, []string{"reverse"}, []option{{tCab, "Cable Fly"}, {tDB, "Dumbbell Fly"}, {tBW, "Push-Up"}}},
	{[]string{"incline"}, nil, []option{{tBar, "Incline Bench Press"}, {tDB, "Incline Dumbbell Press"}, {tBW, "Decline Push-Up"}}},
	{[]string{"bench press", "chest press", "floor press"}, nil, []option{{tBar, "Bench Press"}, {tDB, "Dumbbell Bench Press"}, {tBW, "Push-Up"}}},
	{[]string{"deadlift", "rdl", "good morning"}, nil, []option{{tBar, "Romanian Deadlift"}, {tDB, "Dumbbell Romanian Deadlift"}, {tBW, "Single-Leg Romanian Deadlift"}}},
	{[]string{"hip thrust", "glute bridge"}, nil, []option{{tBar, "Barbell Hip Thrust"}, {tDB, "Dumbbell Hip Thrust"}, {tBW, "Single-Leg Hip Thrust"}}},
	{[]string{"clean", "snatch"}, nil, []option{{tDB, "Dumbbell Hang Clean"}, {tBW, "Broad Jump"}}},
	{[]string{"overhead press", "military press", "shoulder press", "push press"}, nil, []option{{tBar, "Overhead Press"}, {tDB, "Dumbbell Overhead Press"}, {tBW, "Pike Push-Up"}}},
	{[]string{"pull up", "chin up", "pulldown"}, nil, []option{{tPU, "Pull-Up"}, {tDB, "Dumbbell Pullover"}, {tBW, "Inverted Row"}}},
	{[]string{"face pull", "reverse fly", "rear delt"}, nil, []option{{tCab, "Face Pull"}, {tDB, "Dumbbell Reverse Fly"}, {tBW, "Prone Y-Raise"}}},
	{[]string{"row"}, []string{"rowing", "throw", "narrow"}, []option{{tBar, "Barbell Row"}, {tDB, "Dumbbell Row"}, {tCab, "Seated Cable Row"}, {tBW, "Inverted Row"}}},
	{[]string{"pushdown", "triceps", "skull crusher"}, nil, []option{{tCab, "Cable Triceps Pushdown"}, {tDB, "Dumbbell Overhead Triceps Extension"}, {tBW, "Bench Dip"}}},
	{[]string{"curl"}, nil, []option{{tBar, "EZ-Bar Curl"}, {tDB, "Dumbbell Curl"}, {tCab, "Band Curl"}, {tBW, "Towel Curl"}}},
	{[]string{"calf"}, nil, []option{{tDB, "Dumbbell Calf Raise"}, {tBW, "Single-Leg Calf Raise"}}},
	{[]string{"pull through", "swing"}, nil, []option{{tCab, "Cable Pull-Through"}, {tDB, "Kettlebell Swing"}, {tBW, "Single-Leg Glute Bridge"}}},
	{[]string{"pallof", "crunch", "woodchop"}, nil, []option{{tCab, "Pallof Press"}, {tBW, "Dead Bug"}}},
	{[]string{"lateral raise"}, nil, []option{{tDB, "Dumbbell Lateral Raise"}, {tCab, "Band Lateral Raise"}, {tBW, "Pike Push-Up"}}},
	{[]string{"sled", "bike", "erg", "treadmill"}, nil, []option{{tDB, "Kettlebell Swing"}, {tBW, "Burpee Intervals"}}},
}

var equipmentWords = []string{"smith machine", "machine", "barbell", "cable", "dumbbell", "kettlebell"}

// resolve returns the name adapted to the available equipment. Names whose
// equipment is available come back unchanged, so resolve is idempotent.
func (e equipment) resolve(name string) string {
	if e.has(requiredTier(name)) {
		return name
	}
	for _, f := range families {
		if !matching.ContainsAny(name, f.keywords) || matching.ContainsAny(name, f.unless) {
			continue
		}
		for _, o := range f.options {
			if e.has(o.tier) {
				return o.name
			}
		}
		break
	}
	return e.stripEquipment(name)
}

// stripEquipment rewrites the equipment word of a name nothing else covers,
// "Machine Shrug" becoming "Dumbbell Shrug" or plain "Shrug".
func (e equipment) stripEquipment(name string) string {
	words := strings.Fields(strings.NewReplacer("-", " ").Replace(name))
	var kept []string
	for _, w := range words {
		drop := false
		for _, ew := range equipmentWords {
			if strings.EqualFold(w, ew) || strings.EqualFold(w, "smith") {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return name
	}
	out := strings.Join(kept, " ")
	if e.has(enrichment.TierDumbbell) {
		out = "Dumbbell " + out
	}
	if !e.has(requiredTier(out)) {
		return name
	}
	return out
}

// ForEquipment adapts an exercise name to the questionnaire's equipment.
func ForEquipment(q plan.Questionnaire, name string) string {
	return equipmentFor(q).resolve(name)
}
