package nutrition

import (
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

type supplement struct {
	label    string
	keywords []string
}

var (
	supCreatine  = supplement{"creatine", []string{"creatine"}}
	supProtein   = supplement{"protein powder", []string{"protein", "whey", "casein"}}
	supCaffeine  = supplement{"caffeine", []string{"caffeine", "pre-workout", "preworkout", "pre workout"}}
	supVitaminD  = supplement{"vitamin D", []string{"vitamin d", "vit d", "d3"}}
	supMagnesium = supplement{"magnesium", []string{"magnesium"}}
	supOmega3    = supplement{"omega-3", []string{"omega", "fish oil", "algae oil"}}

	knownSupplements = []supplement{supCreatine, supProtein, supCaffeine, supVitaminD, supMagnesium, supOmega3}

	plantBasedKeywords = []string{"vegan", "plant", "vegetarian"}
)

// RecommendSupplements acknowledges what is already in use and lists
// conditional recommendations for the rest.
func RecommendSupplements(goals []plan.Goal, current []string, restrictions []string, intensity string) string {
	using := map[string]bool{}
	var ack []string
	for _, s := range knownSupplements {
		for _, c := range current {
			if matching.ContainsAny(c, s.keywords) {
				using[s.label] = true
				ack = append(ack, s.label)
				break
			}
		}
	}
	plantBased := false
	for _, r := range restrictions {
		if matching.ContainsAny(r, plantBasedKeywords) {
			plantBased = true
			break
		}
	}
	hasGoal := func(want ...plan.Goal) bool {
		for _, g := range goals {
			for _, w := range want {
				if g == w {
					return true
				}
			}
		}
		return false
	}

	var recs []string
	if hasGoal(plan.GoalMuscleBuilding, plan.GoalStrength) && !using[supCreatine.label] {
		recs = append(recs, "Creatine monohydrate 3-5 g daily, any time of day.")
	}
	if intensity != "low" && !using[supProtein.label] {
		if plantBased {
			recs = append(recs, "Plant-based protein powder (pea/rice blend) to close gaps in daily protein.")
		} else {
			recs = append(recs, "Whey protein powder to close gaps in daily protein.")
		}
	}
	if intensity == "high" && !using[supCaffeine.label] {
		recs = append(recs, "Caffeine 3 mg/kg 30-60 minutes before hard sessions, not within 8 hours of bed.")
	}
	if !using[supVitaminD.label] {
		recs = append(recs, "Vitamin D3 1000-2000 IU daily, especially with limited sun exposure.")
	}
	if intensity == "high" && !using[supMagnesium.label] {
		recs = append(recs, "Magnesium glycinate 200-400 mg in the evening to support sleep and recovery.")
	}
	if !using[supOmega3.label] {
		if plantBased {
			recs = append(recs, "Algae-based omega-3 providing 1-2 g EPA/DHA daily.")
		} else {
			recs = append(recs, "Omega-3 fish oil providing 1-2 g EPA/DHA daily.")
		}
	}
	if hasGoal(plan.GoalFatLoss) {
		recs = append(recs, "No supplement replaces the calorie deficit; fat burners are not recommended.")
	}

	var b strings.Builder
	if len(ack) > 0 {
		b.WriteString("Already using: " + strings.Join(ack, ", ") + ". Keep these consistent.\n")
	}
	if len(recs) == 0 {
		b.WriteString("Your current supplement stack covers the essentials.")
		return b.String()
	}
	b.WriteString("Recommended:\n")
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + r)
	}
	return b.String()
}
