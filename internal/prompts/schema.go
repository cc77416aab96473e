package prompts

import "sort"

// PlanSchemaName is the json_schema name sent with every plan request.
const PlanSchemaName = "workout_plan"

func StringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

func StringArraySchema() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": StringSchema(),
	}
}

func IntSchema() map[string]any {
	return map[string]any{"type": "integer"}
}

// ObjectSchema builds a strict object: every property is required and no
// other keys are allowed.
func ObjectSchema(properties map[string]any) map[string]any {
	req := make([]string, 0, len(properties))
	for k := range properties {
		req = append(req, k)
	}
	sort.Strings(req)
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             req,
		"additionalProperties": false,
	}
}

func ArrayOf(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

func BlockSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"description": StringSchema(),
		"exercises":   StringArraySchema(),
	})
}

func ExerciseSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"name":            StringSchema(),
		"sets":            IntSchema(),
		"reps":            StringSchema(),
		"rest":            StringSchema(),
		"intent":          StringSchema(),
		"rationale":       StringSchema(),
		"notes":           StringSchema(),
		"substitutions":   StringArraySchema(),
		"progressionNote": StringSchema(),
	})
}

func WorkoutDaySchema() map[string]any {
	return ObjectSchema(map[string]any{
		"dayNumber": IntSchema(),
		"name":      StringSchema(),
		"focus":     StringSchema(),
		"duration":  StringSchema(),
		"warmup":    BlockSchema(),
		"exercises": ArrayOf(ExerciseSchema()),
		"cooldown":  BlockSchema(),
	})
}

// PlanSchema mirrors plan.GeneratedPlan field for field.
func PlanSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"planName":            StringSchema(),
		"overview":            StringSchema(),
		"weeklyStructure":     StringSchema(),
		"days":                ArrayOf(WorkoutDaySchema()),
		"progressionGuidance": StringSchema(),
		"nutritionNotes":      StringSchema(),
		"recoveryNotes":       StringSchema(),
		"disclaimer":          StringSchema(),
	})
}
