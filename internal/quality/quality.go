// Package quality holds the deterministic content checks run on generated
// plans before refinement.
package quality

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

// BannedPhrases are boilerplate the model must not use in exercise text.
var BannedPhrases = []string{
	"tailored to your goals",
	"tailored to your needs",
	"this exercise is great",
	"great for building",
	"perfect for",
	"helps you achieve",
	"designed to help you",
	"take your training to the next level",
	"unlock your potential",
	"game changer",
	"it's important to note",
	"a staple exercise",
	"targets multiple muscle groups",
}

const (
	CodeBannedPhrase     = "banned_phrase"
	CodeRationaleIntent  = "rationale_equals_intent"
	CodeProgressionShort = "progression_note_short"
	CodeMergedFavorites  = "merged_favorites"
	CodeNutritionSample  = "nutrition_sample_missing"

	minProgressionNote = 20
)

type Issue struct {
	Code     string `json:"code"`
	Day      int    `json:"day,omitempty"`
	Exercise string `json:"exercise,omitempty"`
	Message  string `json:"message"`
}

type Report struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Messages flattens the issues for prompts and logs.
func (r Report) Messages() []string {
	out := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		out[i] = is.Message
	}
	return out
}

// Validate runs every check; each offending exercise yields its own issue.
func Validate(p *plan.GeneratedPlan, q plan.Questionnaire) Report {
	var issues []Issue
	favorites := q.Preferences.FavoriteExercises
	for _, d := range p.Days {
		for _, ex := range d.Exercises {
			at := func(code, format string, args ...any) Issue {
				return Issue{
					Code:     code,
					Day:      d.DayNumber,
					Exercise: ex.Name,
					Message:  fmt.Sprintf("Day %d %q: ", d.DayNumber, ex.Name) + fmt.Sprintf(format, args...),
				}
			}
			if phrase, ok := bannedIn(ex.Intent, ex.Rationale, ex.Notes); ok {
				issues = append(issues, at(CodeBannedPhrase, "uses banned phrase %q", phrase))
			}
			if ex.Rationale == ex.Intent {
				issues = append(issues, at(CodeRationaleIntent, "rationale repeats the intent; explain why this exercise was chosen for this user"))
			}
			if utf8.RuneCountInString(strings.TrimSpace(ex.ProgressionNote)) < minProgressionNote {
				issues = append(issues, at(CodeProgressionShort, "progressionNote must be at least %d characters with a numeric progression and deload rule", minProgressionNote))
			}
			if n := matching.CountDistinct(ex.Name, favorites); n > 1 {
				issues = append(issues, at(CodeMergedFavorites, "merges %d favorite exercises into one entry; list each favorite separately", n))
			}
		}
	}
	notes := strings.ToLower(p.NutritionNotes)
	var missing []string
	for _, w := range []string{"breakfast", "lunch", "sample"} {
		if !strings.Contains(notes, w) {
			missing = append(missing, w)
		}
	}
	if len(missing) > 0 {
		issues = append(issues, Issue{
			Code:    CodeNutritionSample,
			Message: "nutritionNotes must include a sample day with breakfast and lunch (missing: " + strings.Join(missing, ", ") + ")",
		})
	}
	return Report{Valid: len(issues) == 0, Issues: issues}
}

func bannedIn(texts ...string) (string, bool) {
	for _, t := range texts {
		low := strings.ToLower(t)
		for _, phrase := range BannedPhrases {
			if strings.Contains(low, phrase) {
				return phrase, true
			}
		}
	}
	return "", false
}
