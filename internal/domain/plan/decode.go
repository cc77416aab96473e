package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// DecodeQuestionnaire is the single entry for untrusted questionnaire JSON:
// decode into the typed structure, sanitize, then validate. Any type
// mismatch or out-of-range value is a validation error; nothing is coerced.
func DecodeQuestionnaire(data []byte) (Questionnaire, error) {
	var q Questionnaire
	if len(bytes.TrimSpace(data)) == 0 {
		return q, apierr.Validation("empty_questionnaire", "questionnaire is required", nil)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&q); err != nil {
		return q, decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return q, apierr.Validation("invalid_json", "questionnaire must be a single JSON object", nil)
	}
	q = Sanitize(q)
	if err := Validate(q); err != nil {
		return q, err
	}
	return q, nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "questionnaire"
		}
		return apierr.Validation("invalid_field_type",
			fmt.Sprintf("field %s must be %s", field, typeErr.Type.String()),
			map[string]string{field: "type"})
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apierr.Validation("invalid_json", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset), nil)
	}
	return apierr.Validation("invalid_json", err.Error(), nil)
}

// Validate checks enum membership and numeric bounds. Field paths in the
// returned details use JSON names ("availability.daysPerWeek").
func Validate(q Questionnaire) error {
	err := validatorInstance().Struct(q)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierr.Validation("invalid_questionnaire", err.Error(), nil)
	}
	details := make(map[string]string, len(verrs))
	var first string
	for _, fe := range verrs {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[path] = rule
		if first == "" {
			first = path
		}
	}
	msg := fmt.Sprintf("questionnaire field %s is invalid", first)
	if len(details) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(details)-1)
	}
	return apierr.Validation("invalid_questionnaire", msg, details)
}

// Sanitize trims text, canonicalises enum spellings ("Muscle Building" ->
// "muscle_building"), and drops empty or duplicate list entries. It returns
// a copy and never fills in missing values.
func Sanitize(q Questionnaire) Questionnaire {
	out := q
	out.Goals.PrimaryGoal = Goal(enumKey(string(q.Goals.PrimaryGoal)))
	out.Goals.SecondaryGoal = Goal(enumKey(string(q.Goals.SecondaryGoal)))
	out.Goals.Timeframe = enumKey(q.Goals.Timeframe)
	out.Goals.SpecificTargets = strings.TrimSpace(q.Goals.SpecificTargets)
	out.Goals.SportDetail = strings.TrimSpace(q.Goals.SportDetail)
	out.Goals.WeakPoints = cleanList(q.Goals.WeakPoints)

	out.Experience.Level = Level(enumKey(string(q.Experience.Level)))
	out.Experience.Consistency = enumKey(q.Experience.Consistency)
	if q.Experience.CurrentLifts != nil {
		lifts := *q.Experience.CurrentLifts
		out.Experience.CurrentLifts = &lifts
	}

	out.Availability.TimeOfDay = enumKey(q.Availability.TimeOfDay)
	out.Availability.PreferredDays = cleanList(q.Availability.PreferredDays)

	out.Equipment.GymType = enumKey(q.Equipment.GymType)
	out.Equipment.Available = cleanList(q.Equipment.Available)
	out.Equipment.Limited = cleanList(q.Equipment.Limited)

	out.Injuries.Current = cleanInjuries(q.Injuries.Current)
	out.Injuries.Past = cleanInjuries(q.Injuries.Past)
	out.Injuries.MovementRestrictions = cleanList(q.Injuries.MovementRestrictions)
	out.Injuries.PainAreas = cleanList(q.Injuries.PainAreas)

	out.Recovery.SleepQuality = enumKey(q.Recovery.SleepQuality)
	out.Recovery.StressLevel = enumKey(q.Recovery.StressLevel)
	out.Recovery.RecoveryCapacity = enumKey(q.Recovery.RecoveryCapacity)

	out.Nutrition.Approach = enumKey(q.Nutrition.Approach)
	out.Nutrition.ProteinTier = enumKey(q.Nutrition.ProteinTier)
	out.Nutrition.Restrictions = cleanList(q.Nutrition.Restrictions)
	out.Nutrition.Supplements = cleanList(q.Nutrition.Supplements)
	out.Nutrition.FoodPreferences = strings.TrimSpace(q.Nutrition.FoodPreferences)

	out.Preferences.FavoriteExercises = cleanList(q.Preferences.FavoriteExercises)
	out.Preferences.DislikedExercises = cleanList(q.Preferences.DislikedExercises)
	out.Preferences.PreferredSplit = strings.TrimSpace(q.Preferences.PreferredSplit)
	out.Preferences.CardioPreference = enumKey(q.Preferences.CardioPreference)

	if q.Constraints.MaxExercisesPerSession != nil {
		n := *q.Constraints.MaxExercisesPerSession
		out.Constraints.MaxExercisesPerSession = &n
	}
	out.Constraints.Notes = strings.TrimSpace(q.Constraints.Notes)
	return out
}

func enumKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cleanInjuries(in []Injury) []Injury {
	if len(in) == 0 {
		return nil
	}
	out := make([]Injury, 0, len(in))
	for _, inj := range in {
		inj.Area = strings.TrimSpace(inj.Area)
		inj.Severity = Severity(enumKey(string(inj.Severity)))
		inj.Notes = strings.TrimSpace(inj.Notes)
		if inj.Area == "" && inj.Notes == "" {
			continue
		}
		out = append(out, inj)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
