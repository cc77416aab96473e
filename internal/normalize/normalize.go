// Package normalize is the deterministic rule engine applied to every
// generated plan. It enforces what the model cannot be trusted with: day
// count, exercise caps, dislikes and injury restrictions, equipment,
// mandatory lifts, favorites, movement variety, and canonical guidance text.
//
// Normalize is total and idempotent: running it on its own output with the
// same questionnaire changes nothing.
package normalize

import (
	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/enrichment"
	"github.com/yungbote/liftplan-backend/internal/matching"
	"github.com/yungbote/liftplan-backend/internal/sport"
)

type normalizer struct {
	p  *plan.GeneratedPlan
	q  plan.Questionnaire
	eq equipment

	blocked   []string
	favorites []string
	favKeys   []string
	targets   []lift
	mandatory []lift
	weak      []string
	weakMaps  []enrichment.WeakPointMapping
	protected []string

	max    int
	hasMax bool
	sport  bool
}

// Normalize returns a normalized copy of p. The input is not modified.
func Normalize(p *plan.GeneratedPlan, q plan.Questionnaire) *plan.GeneratedPlan {
	if p == nil {
		return nil
	}
	n := newNormalizer(p.Clone(), q)
	n.truncateDays()
	n.stripBlocked()
	n.injectMandatory()
	n.injectTargets()
	n.injectFavorites(false)
	n.injectFavorites(true)
	n.applySportTemplate()
	n.injectWeakPoints()
	n.injectCardio()
	n.diversify()
	n.fill()
	n.truncateExercises()
	n.rewriteNutrition()
	n.rewriteRecovery()
	n.appendOverview()
	n.setWeeklyStructure()
	n.rewriteProgression()
	n.labelDays()
	n.order()
	n.prescribe()
	return n.p
}

func newNormalizer(p *plan.GeneratedPlan, q plan.Questionnaire) *normalizer {
	n := &normalizer{p: p, q: q, eq: equipmentFor(q), sport: sport.IsSportFocused(q)}
	n.max, n.hasMax = q.MaxExercises()

	n.blocked = append(n.blocked, cleanKeys(q.Preferences.DislikedExercises)...)
	n.blocked = append(n.blocked, RestrictedKeywords(q)...)

	n.favorites = cleanKeys(q.Preferences.FavoriteExercises)
	for _, f := range q.Preferences.FavoriteExercises {
		n.favKeys = append(n.favKeys, f, n.eq.resolve(f))
	}
	n.favKeys = cleanKeys(n.favKeys)

	if q.HasGoal(plan.GoalStrength) || q.HasGoal(plan.GoalMuscleBuilding) {
		for _, l := range mandatoryLifts {
			n.mandatory = append(n.mandatory, lift{l.key, n.eq.resolve(l.name)})
		}
	}
	for _, r := range targetRules {
		if matching.ContainsAny(q.Goals.SpecificTargets, r.signals) {
			n.targets = append(n.targets, lift{r.key, n.eq.resolve(r.name)})
		}
	}
	n.weakMaps = enrichment.MapWeakPointsToExercises(q.Goals.WeakPoints, enrichment.EquipmentFor(q))
	for _, m := range n.weakMaps {
		for _, name := range m.Exercises {
			n.weak = append(n.weak, n.eq.resolve(name))
		}
	}

	n.protected = append(n.protected, n.favKeys...)
	for _, l := range append(append([]lift{}, n.mandatory...), n.targets...) {
		n.protected = append(n.protected, l.key, l.name)
	}
	n.protected = append(n.protected, n.weak...)
	n.protected = cleanKeys(n.protected)
	return n
}

func cleanKeys(in []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range in {
		k := matching.Normalize(s)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func (n *normalizer) isBlocked(name string) bool {
	return matching.ContainsAny(name, n.blocked)
}

func (n *normalizer) isFavorite(name string) bool {
	return matching.ContainsAny(name, n.favKeys)
}

// isProtected decides whether an exercise may be replaced by an injection or
// dropped by truncation.
func (n *normalizer) isProtected(name string) bool {
	return matching.ContainsAny(name, n.protected) || isPower(name) || isConditioning(name)
}

// usable reports whether a generated candidate may enter the plan at all.
func (n *normalizer) usable(name string) bool {
	return !n.isBlocked(name) && n.eq.has(requiredTier(name))
}

func (n *normalizer) present(keys ...string) bool {
	for _, d := range n.p.Days {
		for _, ex := range d.Exercises {
			for _, k := range keys {
				if matching.Contains(ex.Name, k) {
					return true
				}
			}
		}
	}
	return false
}

func (n *normalizer) usedNames() map[string]bool {
	used := map[string]bool{}
	for _, d := range n.p.Days {
		for _, ex := range d.Exercises {
			used[matching.Normalize(ex.Name)] = true
		}
	}
	return used
}

func dayHas(d plan.WorkoutDay, name string) bool {
	key := matching.Normalize(name)
	for _, ex := range d.Exercises {
		if matching.Normalize(ex.Name) == key {
			return true
		}
	}
	return false
}

// baseIn reports whether any exercise of d other than index skip has the
// movement base.
func baseIn(d plan.WorkoutDay, base string, skip int) bool {
	if base == "" {
		return false
	}
	for i, ex := range d.Exercises {
		if i != skip && baseOf(ex.Name) == base {
			return true
		}
	}
	return false
}

// pick returns the first pool name usable in day di. Names unused anywhere in
// the plan come first, and never one whose movement base the day already
// trains; after that only names without a movement base that are unused in
// the day itself, so a reused name never becomes a duplicate the variety pass
// would rewrite.
func (n *normalizer) pick(di int, pools ...[]string) (string, bool) {
	used := n.usedNames()
	day := n.p.Days[di]
	for _, pool := range pools {
		for _, name := range pool {
			if !used[matching.Normalize(name)] && !baseIn(day, baseOf(name), -1) && n.usable(name) {
				return name, true
			}
		}
	}
	for _, pool := range pools {
		for _, name := range pool {
			if baseOf(name) == "" && !dayHas(day, name) && n.usable(name) {
				return name, true
			}
		}
	}
	return "", false
}
