package normalize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/yungbote/liftplan-backend/internal/programdesign"
)

var timeBasedReps = regexp.MustCompile(`(?i)(\d\s*(s|sec|secs|seconds?|min|mins|minutes?)\b|\d+:\d{2})`)

func rank(name string) int {
	switch {
	case isIsolation(name):
		return 2
	case isCompound(name):
		return 0
	}
	return 1
}

// order puts compound lifts first and isolation work last; ties keep their
// relative order.
func (n *normalizer) order() {
	for di := range n.p.Days {
		ex := n.p.Days[di].Exercises
		sort.SliceStable(ex, func(a, b int) bool { return rank(ex[a].Name) < rank(ex[b].Name) })
	}
}

// prescribe sets sets, reps and rest from the program design. The first two
// exercises of a day are main lifts. Power, conditioning and timed work keep
// the prescription they were given.
func (n *normalizer) prescribe() {
	scheme := programdesign.Scheme(n.q.Goals.PrimaryGoal)
	level := n.q.Experience.Level
	for di := range n.p.Days {
		for i := range n.p.Days[di].Exercises {
			ex := &n.p.Days[di].Exercises[i]
			if r := n.eq.resolve(ex.Name); r != ex.Name && !n.isBlocked(r) {
				ex.Name = r
			}
			if ex.Substitutions == nil {
				ex.Substitutions = []string{}
			}
			if weakNote(ex.ProgressionNote) {
				ex.ProgressionNote = defaultProgressionNote
			}
			if isPower(ex.Name) || isConditioning(ex.Name) || timeBasedReps.MatchString(ex.Reps) {
				continue
			}
			main := i < 2
			ex.Sets = programdesign.SetsFor(level, main)
			if main {
				ex.Reps, ex.Rest = scheme.MainReps, scheme.MainRest
			} else {
				ex.Reps, ex.Rest = scheme.AccessoryReps, scheme.AccessoryRest
			}
		}
	}
}

func weakNote(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) < 20 || !strings.ContainsFunc(s, unicode.IsDigit)
}
