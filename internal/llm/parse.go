package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
)

var requiredPlanKeys = []string{
	"planName", "overview", "weeklyStructure", "days",
	"progressionGuidance", "nutritionNotes", "recoveryNotes", "disclaimer",
}

// ExtractJSON finds the JSON object in model output: the text itself, the
// text without a markdown fence, or the span from the first '{' to the last
// '}'.
func ExtractJSON(text string) ([]byte, error) {
	s := strings.TrimSpace(stripFence(text))
	if s == "" {
		return nil, errors.New("empty response")
	}
	if json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	i := strings.Index(s, "{")
	j := strings.LastIndex(s, "}")
	if i < 0 || j <= i {
		return nil, errors.New("no JSON object in response")
	}
	candidate := []byte(s[i : j+1])
	if !json.Valid(candidate) {
		var v any
		err := json.Unmarshal(candidate, &v)
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return candidate, nil
}

func stripFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return s
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	} else {
		t = ""
	}
	return strings.TrimSuffix(strings.TrimSpace(t), "```")
}

// ParsePlan decodes and structurally checks a plan. Any failure is an
// apierr parse error, which routes the generator to repair.
func ParsePlan(text string) (*plan.GeneratedPlan, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, apierr.Parse("invalid_json", err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, apierr.Parse("invalid_json", err)
	}
	var missing []string
	for _, k := range requiredPlanKeys {
		if _, ok := keys[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, apierr.Parse("schema_mismatch", fmt.Errorf("missing fields: %s", strings.Join(missing, ", ")))
	}

	var p plan.GeneratedPlan
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&p); err != nil {
		return nil, apierr.Parse("schema_mismatch", err)
	}
	if err := CheckPlan(&p); err != nil {
		return nil, apierr.Parse("schema_mismatch", err)
	}
	fillNilSlices(&p)
	return &p, nil
}

// CheckPlan is the structural schema check applied after decoding.
func CheckPlan(p *plan.GeneratedPlan) error {
	if p == nil {
		return errors.New("nil plan")
	}
	if strings.TrimSpace(p.PlanName) == "" {
		return errors.New("planName is empty")
	}
	if len(p.Days) == 0 {
		return errors.New("days is empty")
	}
	for i, d := range p.Days {
		for j, ex := range d.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				return fmt.Errorf("days[%d].exercises[%d].name is empty", i, j)
			}
			if ex.Sets <= 0 {
				return fmt.Errorf("days[%d].exercises[%d].sets must be positive", i, j)
			}
		}
	}
	return nil
}

func fillNilSlices(p *plan.GeneratedPlan) {
	for i := range p.Days {
		d := &p.Days[i]
		if d.Exercises == nil {
			d.Exercises = []plan.Exercise{}
		}
		if d.Warmup.Exercises == nil {
			d.Warmup.Exercises = []string{}
		}
		if d.Cooldown.Exercises == nil {
			d.Cooldown.Exercises = []string{}
		}
		for j := range d.Exercises {
			if d.Exercises[j].Substitutions == nil {
				d.Exercises[j].Substitutions = []string{}
			}
		}
	}
}
