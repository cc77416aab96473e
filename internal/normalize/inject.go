package normalize

import (
	"sort"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/enrichment"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

const (
	focusUpper = "upper"
	focusLower = "lower"
	focusFull  = "full"
)

var (
	upperWords = []string{"upper", "push", "pull", "chest", "back", "shoulder", "arm"}
	lowerWords = []string{"lower", "leg", "glute", "hamstring", "quad"}
	fullWords  = []string{"full", "total"}
	coreWords  = []string{"plank", "core", "ab wheel", "abs", "crunch", "dead bug", "pallof", "hollow", "leg raise", "carry", "bear crawl", "rollout"}

	lowerExercise = []string{"squat", "deadlift", "lunge", "leg", "hip thrust", "glute", "calf", "step up", "hamstring", "split squat", "bridge", "pull through", "jump", "bound"}
	upperExercise = []string{"bench", "press", "row", "pull up", "chin up", "pulldown", "curl", "raise", "fly", "pushdown", "triceps", "push up", "dip", "face pull", "pull apart", "shrug"}
)

func dayFocus(d plan.WorkoutDay) string {
	text := matching.Join(d.Focus, d.Name)
	if matching.ContainsAny(text, fullWords) {
		return focusFull
	}
	up := matching.ContainsAny(text, upperWords)
	low := matching.ContainsAny(text, lowerWords)
	switch {
	case up && !low:
		return focusUpper
	case low && !up:
		return focusLower
	}
	return focusFull
}

// regionOf classifies an exercise name. Core and conditioning work counts as
// full body.
func regionOf(name string) string {
	switch {
	case matching.ContainsAny(name, coreWords), isConditioning(name):
		return focusFull
	case matching.ContainsAny(name, lowerExercise):
		return focusLower
	case matching.ContainsAny(name, upperExercise):
		return focusUpper
	}
	return focusFull
}

// candidateDays orders day indices for placing an exercise of region:
// matching days with the fewest exercises first, then full-body days, then
// the rest.
func (n *normalizer) candidateDays(region string) []int {
	var match, full, rest []int
	for i, d := range n.p.Days {
		f := dayFocus(d)
		switch {
		case region != focusFull && f == region:
			match = append(match, i)
		case f == focusFull:
			full = append(full, i)
		default:
			rest = append(rest, i)
		}
	}
	byLoad := func(idx []int) {
		sort.SliceStable(idx, func(a, b int) bool {
			return len(n.p.Days[idx[a]].Exercises) < len(n.p.Days[idx[b]].Exercises)
		})
	}
	byLoad(match)
	byLoad(full)
	byLoad(rest)
	return append(append(match, full...), rest...)
}

func (n *normalizer) lastUnprotected(di int) int {
	ex := n.p.Days[di].Exercises
	for i := len(ex) - 1; i >= 0; i-- {
		if !n.isProtected(ex[i].Name) {
			return i
		}
	}
	return -1
}

// placeIn appends ex to day di, or replaces the day's last unprotected
// exercise when the day is at its cap.
func (n *normalizer) placeIn(di int, ex plan.Exercise) bool {
	d := &n.p.Days[di]
	if !n.hasMax || len(d.Exercises) < n.max {
		d.Exercises = append(d.Exercises, ex)
		return true
	}
	i := n.lastUnprotected(di)
	if i < 0 {
		return false
	}
	d.Exercises[i] = ex
	return true
}

func (n *normalizer) place(ex plan.Exercise) bool {
	days := n.candidateDays(regionOf(ex.Name))
	for _, di := range days {
		if !n.hasMax || len(n.p.Days[di].Exercises) < n.max {
			return n.placeIn(di, ex)
		}
	}
	for _, di := range days {
		if n.lastUnprotected(di) >= 0 {
			return n.placeIn(di, ex)
		}
	}
	return false
}

// inject adds name unless it is blocked or any of keys (or its resolved
// name) is already in the plan.
func (n *normalizer) inject(name string, keys []string, k kind, subject string) bool {
	resolved := n.eq.resolve(name)
	if n.isBlocked(name) || n.isBlocked(resolved) {
		return false
	}
	if n.present(append(append([]string{}, keys...), resolved)...) {
		return false
	}
	return n.place(newExercise(resolved, k, subject))
}

func (n *normalizer) injectMandatory() {
	for _, l := range n.mandatory {
		n.inject(l.name, []string{l.key}, kindMandatory, enrichment.GoalLabel(n.q.Goals.PrimaryGoal))
	}
}

func (n *normalizer) injectTargets() {
	for _, l := range n.targets {
		n.inject(l.name, []string{l.key}, kindTarget, l.key)
	}
}

// injectFavorites adds each favorite. With distinct set a favorite only
// counts as present when some exercise mentions it and no other favorite,
// so two favorites merged into one exercise are split out.
func (n *normalizer) injectFavorites(distinct bool) {
	for _, f := range n.q.Preferences.FavoriteExercises {
		key := matching.Normalize(f)
		if key == "" {
			continue
		}
		if !distinct {
			n.inject(f, []string{key}, kindFavorite, f)
			continue
		}
		resolved := n.eq.resolve(f)
		if n.distinctFavorite(key, resolved) || n.isBlocked(f) || n.isBlocked(resolved) {
			continue
		}
		if n.exactPresent(resolved) {
			continue
		}
		n.place(newExercise(resolved, kindFavorite, f))
	}
}

func (n *normalizer) distinctFavorite(keys ...string) bool {
	for _, d := range n.p.Days {
		for _, ex := range d.Exercises {
			if matching.ContainsAny(ex.Name, keys) && matching.CountDistinct(ex.Name, n.favorites) <= 1 {
				return true
			}
		}
	}
	return false
}

func (n *normalizer) exactPresent(name string) bool {
	return n.usedNames()[matching.Normalize(name)]
}

func (n *normalizer) injectWeakPoints() {
	for _, m := range n.weakMaps {
		var cands []string
		for _, name := range m.Exercises {
			r := n.eq.resolve(name)
			if n.isBlocked(name) || n.isBlocked(r) {
				continue
			}
			cands = append(cands, r)
		}
		if len(cands) == 0 || n.present(m.Exercises...) || n.present(cands...) {
			continue
		}
		n.place(newExercise(cands[0], kindWeakPoint, m.WeakPoint))
	}
}
