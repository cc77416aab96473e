package knowledge

import (
	"strings"
	"unicode/utf8"

	"github.com/yungbote/liftplan-backend/internal/matching"
)

// Vocabulary is the closed keyword set blocks are tagged with and
// questionnaires are scored against.
var Vocabulary = []string{
	"volume", "mev", "mav", "mrv", "periodization", "deload", "progression", "rpe", "intensity",
	"hypertrophy", "strength", "power", "endurance", "fat loss", "conditioning", "cardio",
	"nutrition", "protein", "carbohydrate", "supplement", "sleep", "stress", "recovery",
	"injury", "knee", "shoulder", "back", "hip", "elbow", "wrist", "ankle", "mobility",
	"beginner", "intermediate", "advanced", "sport", "sprint", "jump", "home", "bodyweight",
	"dumbbell", "barbell", "warmup", "technique", "frequency",
}

var synonyms = map[string][]string{
	"hypertrophy":   {"muscle growth", "muscle building", "hypertrophy"},
	"fat loss":      {"fat loss", "weight loss", "caloric deficit", "calorie deficit"},
	"conditioning":  {"conditioning", "interval", "hiit"},
	"cardio":        {"cardio", "aerobic", "zone 2"},
	"periodization": {"periodization", "periodisation", "mesocycle", "block"},
	"mobility":      {"mobility", "flexibility", "range of motion"},
	"warmup":        {"warmup", "warm up"},
	"progression":   {"progression", "progressive overload", "overload"},
}

// Tag returns the vocabulary keywords mentioned in text, in vocabulary order.
func Tag(text string) []string {
	norm := matching.Normalize(text)
	var out []string
	for _, kw := range Vocabulary {
		forms, ok := synonyms[kw]
		if !ok {
			forms = []string{kw}
		}
		if matching.ContainsAny(norm, forms) {
			out = append(out, kw)
		}
	}
	return out
}

// Chunk splits text into paragraphs and packs them into pieces of at most
// limit characters. Paragraphs longer than limit are split on word
// boundaries.
func Chunk(text string, limit int) []string {
	if limit <= 0 {
		limit = 1200
	}
	var paras []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			paras = append(paras, p)
		}
	}
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, p := range paras {
		for utf8.RuneCountInString(p) > limit {
			cut := wordCut(p, limit)
			flush()
			out = append(out, strings.TrimSpace(p[:cut]))
			p = strings.TrimSpace(p[cut:])
		}
		if cur.Len() > 0 && utf8.RuneCountInString(cur.String())+2+utf8.RuneCountInString(p) > limit {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(p)
	}
	flush()
	return out
}

// wordCut returns a byte offset at or before limit runes, preferring the
// last space.
func wordCut(s string, limit int) int {
	byteLimit := len(s)
	n := 0
	for i := range s {
		if n == limit {
			byteLimit = i
			break
		}
		n++
	}
	if sp := strings.LastIndex(s[:byteLimit], " "); sp > 0 {
		return sp
	}
	return byteLimit
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
