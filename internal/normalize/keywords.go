package normalize

import (
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

// Keyword lists are disjoint on pool and table names so ordering and
// classification never disagree about a generated exercise.
var (
	compoundKeywords = []string{
		"squat", "deadlift", "bench", "row", "pull up", "chin up", "press", "jump",
		"power", "clean", "snatch", "lunge", "dip", "thrust", "carry", "swing",
	}
	isolationKeywords = []string{
		"curl", "raise", "extension", "fly", "pushdown", "kickback", "shrug",
		"pullover", "crunch", "face pull", "pull apart",
	}
	powerKeywords = []string{
		"jump", "power", "clean", "snatch", "throw", "slam", "bound", "plyo", "explosive", "push press",
	}
	conditioningKeywords = []string{
		"sprint", "interval", "conditioning", "rowing", "erg", "bike", "sled", "burpee",
		"shuttle", "tempo run", "circuit", "swing",
	}
)

func isPower(name string) bool        { return matching.ContainsAny(name, powerKeywords) }
func isConditioning(name string) bool { return matching.ContainsAny(name, conditioningKeywords) }
func isCompound(name string) bool     { return matching.ContainsAny(name, compoundKeywords) }
func isIsolation(name string) bool    { return matching.ContainsAny(name, isolationKeywords) }

type movementBase struct {
	name     string
	keywords []string
	unless   []string
}

var movementBases = []movementBase{
	{"pull-up", []string{"pull up", "chin up", "pulldown"}, nil},
	{"deadlift", []string{"deadlift", "rdl"}, nil},
	{"lunge", []string{"lunge"}, nil},
	{"squat", []string{"squat", "leg press"}, nil},
	{"bench", []string{"bench press", "chest press"}, nil},
	{"overhead", []string{"overhead press", "military press", "shoulder press", "push press"}, nil},
	{"row", []string{"row"}, []string{"rowing", "erg", "throw", "narrow", "upright"}},
	{"carry", []string{"carry", "farmer", "suitcase"}, nil},
}

// baseOf returns the movement base of an exercise name, or "".
func baseOf(name string) string {
	for _, b := range movementBases {
		if matching.ContainsAny(name, b.keywords) && !matching.ContainsAny(name, b.unless) {
			return b.name
		}
	}
	return ""
}

// High-severity injuries restrict movements by area.
type injuryArea struct {
	match      []string
	restricted []string
}

var injuryAreas = []injuryArea{
	{[]string{"knee", "acl", "mcl", "menisc", "patella"}, []string{"squat", "lunge", "leg press", "leg extension", "jump", "step up", "pistol"}},
	{[]string{"back", "spine", "lumbar", "disc"}, []string{"deadlift", "good morning", "bent over row", "barbell row", "pendlay", "t bar", "back squat", "clean", "snatch", "hyperextension"}},
	{[]string{"shoulder", "rotator", "labrum"}, []string{"overhead press", "military press", "push press", "upright row", "behind the neck", "dip", "snatch", "handstand"}},
	{[]string{"wrist"}, []string{"push up", "front squat", "clean", "handstand"}},
	{[]string{"elbow"}, []string{"skull crusher", "dip", "close grip", "chin up"}},
	{[]string{"hip", "groin"}, []string{"sumo", "lunge", "pistol", "deep squat"}},
	{[]string{"ankle", "achilles"}, []string{"jump", "sprint", "bound", "calf raise", "shuttle"}},
	{[]string{"neck"}, []string{"shrug", "behind the neck", "neck"}},
	{[]string{"hamstring"}, []string{"romanian deadlift", "stiff leg", "nordic", "sprint", "good morning"}},
}

var restrictionPrefixes = []string{"no ", "avoid ", "cannot ", "can't ", "cant ", "unable to ", "not ", "limited "}

var gerunds = map[string]string{
	"jumping":     "jump",
	"squatting":   "squat",
	"running":     "run",
	"sprinting":   "sprint",
	"lunging":     "lunge",
	"pressing":    "press",
	"pulling":     "pull",
	"deadlifting": "deadlift",
	"twisting":    "twist",
	"kneeling":    "kneel",
	"hanging":     "hang",
	"rowing":      "row",
	"dipping":     "dip",
}

// restrictionKeyword turns "No overhead pressing" into "overhead press".
func restrictionKeyword(s string) string {
	s = matching.Normalize(s)
	for _, p := range restrictionPrefixes {
		s = strings.TrimPrefix(s, p)
	}
	words := strings.Fields(s)
	for i, w := range words {
		if r, ok := gerunds[w]; ok {
			words[i] = r
		}
	}
	return strings.Join(words, " ")
}

// RestrictedKeywords lists the movement keywords a questionnaire rules out:
// the area map for high-severity current injuries plus explicit movement
// restrictions.
func RestrictedKeywords(q plan.Questionnaire) []string {
	var out []string
	seen := map[string]bool{}
	add := func(k string) {
		k = matching.Normalize(k)
		if k == "" || seen[k] {
			return
		}
		seen[k] = true
		out = append(out, k)
	}
	for _, inj := range q.Injuries.Current {
		if inj.Severity != plan.SeverityHigh {
			continue
		}
		for _, a := range injuryAreas {
			if matching.ContainsAny(inj.Area, a.match) {
				for _, k := range a.restricted {
					add(k)
				}
			}
		}
	}
	for _, r := range q.Injuries.MovementRestrictions {
		add(restrictionKeyword(r))
	}
	return out
}
