package normalize

import (
	"fmt"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

type kind int

const (
	kindMandatory kind = iota
	kindTarget
	kindFavorite
	kindWeakPoint
	kindPower
	kindConditioning
	kindFill
)

const defaultProgressionNote = "When every set reaches the top of the rep range, add 1-2 reps or 2.5 kg next session; cut sets by about 40% in deload weeks."

func newExercise(name string, k kind, subject string) plan.Exercise {
	ex := plan.Exercise{
		Name:            name,
		Sets:            3,
		Reps:            "8-12",
		Rest:            "90s",
		Notes:           "Controlled tempo; stop 1-2 reps short of failure.",
		Substitutions:   []string{},
		ProgressionNote: defaultProgressionNote,
	}
	switch k {
	case kindMandatory:
		ex.Intent = "Main lift that anchors the week."
		ex.Rationale = fmt.Sprintf("Added as a core barbell pattern for your %s goal.", orDefault(subject, "training"))
	case kindTarget:
		ex.Intent = "Direct practice of your stated target."
		ex.Rationale = fmt.Sprintf("Your specific target calls for %s work, so it gets its own slot.", subject)
	case kindFavorite:
		ex.Intent = "Favorite movement kept as its own exercise."
		ex.Rationale = fmt.Sprintf("You listed %s as a favorite.", subject)
	case kindWeakPoint:
		ex.Intent = fmt.Sprintf("Extra volume for %s.", subject)
		ex.Rationale = fmt.Sprintf("Added to bring up %s, which you named as a weak point.", subject)
	case kindPower:
		ex.Sets, ex.Reps, ex.Rest = 4, "3-5", "2 min"
		ex.Notes = "Full recovery between sets; end the set when speed drops."
		ex.Intent = "Explosive work for rate of force development."
		ex.Rationale = "Sport days carry a minimum of power work; this fills that slot."
	case kindConditioning:
		ex.Sets, ex.Reps, ex.Rest = 6, "30s", "60s"
		ex.Notes = "Hard but repeatable efforts; keep every interval at a similar pace."
		ex.Intent = "Short conditioning finisher for the energy system."
		ex.Rationale = "Added to meet your conditioning volume for the week."
	default:
		ex.Intent = "Accessory volume for this session's focus."
		ex.Rationale = "Added to reach your requested number of exercises with equipment you have."
	}
	return ex
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (n *normalizer) truncateDays() {
	if want := n.q.Availability.DaysPerWeek; want > 0 && len(n.p.Days) > want {
		n.p.Days = n.p.Days[:want]
	}
	for i := range n.p.Days {
		n.p.Days[i].DayNumber = i + 1
	}
}

// stripBlocked swaps exercises to available equipment, then removes anything
// disliked or restricted, and anything still needing missing equipment because
// every substitute was blocked. Substitutions are filtered by the block list.
func (n *normalizer) stripBlocked() {
	for di := range n.p.Days {
		d := &n.p.Days[di]
		kept := d.Exercises[:0]
		for _, ex := range d.Exercises {
			if r := n.eq.resolve(ex.Name); r != ex.Name && !n.isBlocked(r) {
				ex.Name = r
			}
			if n.isBlocked(ex.Name) || !n.eq.has(requiredTier(ex.Name)) {
				continue
			}
			subs := []string{}
			for _, s := range ex.Substitutions {
				if !n.isBlocked(s) {
					subs = append(subs, s)
				}
			}
			ex.Substitutions = subs
			kept = append(kept, ex)
		}
		d.Exercises = kept
	}
}

// applySportTemplate relabels days for sport-focused questionnaires and
// tops up each day's power and conditioning work to the template minimums.
func (n *normalizer) applySportTemplate() {
	if !n.sport {
		return
	}
	for di := range n.p.Days {
		t := sportDays[di%len(sportDays)]
		if n.q.Preferences.PreferredSplit == "" {
			n.p.Days[di].Name = t.label
			n.p.Days[di].Focus = t.label
		}
		n.topUp(di, t.power, isPower, kindPower, powerPool, mixedPool)
		n.topUp(di, t.conditioning, isConditioning, kindConditioning, conditioningPool, mixedPool)
	}
}

func (n *normalizer) topUp(di, want int, counts func(string) bool, k kind, pools ...[]string) {
	for n.count(di, counts) < want {
		name, ok := n.pick(di, pools...)
		if !ok || !n.placeIn(di, newExercise(name, k, "")) {
			return
		}
	}
}

func (n *normalizer) count(di int, pred func(string) bool) int {
	c := 0
	for _, ex := range n.p.Days[di].Exercises {
		if pred(ex.Name) {
			c++
		}
	}
	return c
}

func (n *normalizer) desiredFinishers() int {
	switch n.q.Preferences.CardioPreference {
	case "minimal":
		return 1
	case "moderate":
		return 2
	case "extensive":
		return min(len(n.p.Days), 3)
	}
	return 0
}

// injectCardio adds one conditioning finisher per day, in day order, until
// enough days carry conditioning for the cardio preference.
func (n *normalizer) injectCardio() {
	want := n.desiredFinishers()
	have := 0
	for di := range n.p.Days {
		if n.count(di, isConditioning) > 0 {
			have++
		}
	}
	for di := range n.p.Days {
		if have >= want {
			return
		}
		if n.count(di, isConditioning) > 0 {
			continue
		}
		name, ok := n.pick(di, conditioningPool, mixedPool)
		if ok && n.placeIn(di, newExercise(name, kindConditioning, "")) {
			have++
		}
	}
}

// diversify rewrites the second and later occurrences of an identical
// movement-pattern exercise across the plan into an unused variation. A
// repeat is kept when no variation fits, unless its day already trains the
// same base, in which case it is dropped and fill takes the slot. Favorites
// are left alone.
func (n *normalizer) diversify() {
	seen := map[string]bool{}
	used := n.usedNames()
	for di := range n.p.Days {
		d := &n.p.Days[di]
		for ei := 0; ei < len(d.Exercises); {
			ex := &d.Exercises[ei]
			key := matching.Normalize(ex.Name)
			base := baseOf(ex.Name)
			if base == "" || !seen[key] || n.isFavorite(ex.Name) {
				seen[key] = true
				ei++
				continue
			}
			if baseIn(*d, base, ei) {
				d.Exercises = append(d.Exercises[:ei], d.Exercises[ei+1:]...)
				continue
			}
			if v, ok := n.variation(base, used); ok {
				ex.Name = v
				used[matching.Normalize(v)] = true
				seen[matching.Normalize(v)] = true
			}
			ei++
		}
	}
}

func (n *normalizer) variation(base string, used map[string]bool) (string, bool) {
	for _, v := range variations[base] {
		if !used[matching.Normalize(v)] && n.usable(v) {
			return v, true
		}
	}
	return "", false
}

func (n *normalizer) fill() {
	if !n.hasMax {
		return
	}
	for di := range n.p.Days {
		pool := poolFor(dayFocus(n.p.Days[di]))
		for len(n.p.Days[di].Exercises) < n.max {
			name, ok := n.pick(di, pool)
			if !ok {
				break
			}
			n.p.Days[di].Exercises = append(n.p.Days[di].Exercises, newExercise(name, kindFill, ""))
		}
	}
}

// truncateExercises drops from the end, unprotected exercises first.
func (n *normalizer) truncateExercises() {
	if !n.hasMax {
		return
	}
	for di := range n.p.Days {
		for len(n.p.Days[di].Exercises) > n.max {
			ex := n.p.Days[di].Exercises
			i := n.lastUnprotected(di)
			if i < 0 {
				i = len(ex) - 1
			}
			n.p.Days[di].Exercises = append(ex[:i], ex[i+1:]...)
		}
	}
}
