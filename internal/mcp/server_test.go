package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/domain/plan/plantest"
	"github.com/yungbote/liftplan-backend/internal/generator"
	"github.com/yungbote/liftplan-backend/internal/llm/mock"
)

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("empty result")
	}
	tc, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("first content is %T", res.Content[0])
	}
	return tc.Text
}

func questionnaireJSON(t *testing.T, q plan.Questionnaire) string {
	t.Helper()
	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func TestGenerateFallbackPlanTool(t *testing.T) {
	h := &handlers{log: nil}
	q := plantest.Questionnaire()
	q.Availability.DaysPerWeek = 5
	res, err := h.generateFallbackPlan(context.Background(), call("generate_fallback_plan", map[string]any{
		"questionnaire": questionnaireJSON(t, q),
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", text(t, res))
	}
	var p plan.GeneratedPlan
	if err := json.Unmarshal([]byte(text(t, res)), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.Days) != 5 {
		t.Fatalf("days=%d", len(p.Days))
	}
}

func TestQuestionnaireValidationIsToolError(t *testing.T) {
	h := &handlers{}
	res, _ := h.generateFallbackPlan(context.Background(), call("generate_fallback_plan", map[string]any{
		"questionnaire": `{"availability": {"daysPerWeek": 12}}`,
	}))
	if !res.IsError || !strings.Contains(text(t, res), "invalid_questionnaire") {
		t.Fatalf("expected validation tool error, got %+v", res)
	}
	res, _ = h.generateFallbackPlan(context.Background(), call("generate_fallback_plan", map[string]any{}))
	if !res.IsError {
		t.Fatalf("expected missing parameter error")
	}
}

func TestGenerateWorkoutPlanTool(t *testing.T) {
	data, _ := json.Marshal(plantest.UpperLower())
	p := mock.New(mock.Reply{Text: string(data)}, mock.Reply{Text: string(data)})
	h := &handlers{gen: generator.New(nil, p, nil, generator.DefaultConfig())}
	res, err := h.generateWorkoutPlan(context.Background(), call("generate_workout_plan", map[string]any{
		"questionnaire": questionnaireJSON(t, plantest.Questionnaire()),
	}))
	if err != nil || res.IsError {
		t.Fatalf("err=%v res=%+v", err, res)
	}
	var out generator.Outcome
	if err := json.Unmarshal([]byte(text(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Plan == nil || len(out.Plan.Days) != 4 {
		t.Fatalf("outcome=%+v", out)
	}
}

func TestGenerateWorkoutPlanWithoutProvider(t *testing.T) {
	h := &handlers{}
	res, _ := h.generateWorkoutPlan(context.Background(), call("generate_workout_plan", map[string]any{
		"questionnaire": questionnaireJSON(t, plantest.Questionnaire()),
	}))
	if !res.IsError || !strings.Contains(text(t, res), "provider_missing") {
		t.Fatalf("expected provider_missing, got %+v", res)
	}
}

func TestRecommendSplitTool(t *testing.T) {
	h := &handlers{}
	cases := []struct {
		args map[string]any
		want string
	}{
		{map[string]any{"days_per_week": float64(4)}, "Upper/Lower (4-day)"},
		{map[string]any{"days_per_week": float64(5), "recovery_capacity": "high", "level": "advanced"}, "Push/Pull/Legs + Upper/Lower (5-day)"},
		{map[string]any{"days_per_week": float64(3), "preferred_split": "Bro Split"}, "Bro Split"},
	}
	for _, tc := range cases {
		res, _ := h.recommendSplit(context.Background(), call("recommend_split", tc.args))
		if res.IsError {
			t.Fatalf("tool error: %s", text(t, res))
		}
		var out splitResult
		if err := json.Unmarshal([]byte(text(t, res)), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.Split != tc.want {
			t.Fatalf("split=%q want %q", out.Split, tc.want)
		}
	}
	res, _ := h.recommendSplit(context.Background(), call("recommend_split", map[string]any{"days_per_week": float64(9)}))
	if !res.IsError {
		t.Fatalf("expected range error")
	}
}

func TestNewRegistersTools(t *testing.T) {
	s := New(nil, "test", nil)
	if s == nil {
		t.Fatalf("nil server")
	}
}
