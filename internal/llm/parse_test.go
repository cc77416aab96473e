package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/yungbote/liftplan-backend/internal/domain/plan/plantest"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
)

func planText(t *testing.T) string {
	t.Helper()
	p := plantest.UpperLower()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestParsePlanDirect(t *testing.T) {
	p, err := ParsePlan(planText(t))
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if len(p.Days) != 4 || p.Days[0].Exercises[0].Name != "Bench Press" {
		t.Fatalf("unexpected plan: %+v", p.Days)
	}
}

func TestParsePlanFallbacks(t *testing.T) {
	text := planText(t)
	cases := map[string]string{
		"fence":      "```json\n" + text + "\n```",
		"prose":      "Here is your plan:\n" + text + "\nGood luck!",
		"bare_fence": "```\n" + text + "```",
	}
	for name, in := range cases {
		if _, err := ParsePlan(in); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestParsePlanErrors(t *testing.T) {
	cases := map[string]struct {
		in   string
		code string
	}{
		"empty":     {"", "invalid_json"},
		"truncated": {`{"planName": "x", "days": [`, "invalid_json"},
		"no_object": {"sorry, I cannot help", "invalid_json"},
		"missing":   {`{"planName":"x","days":[]}`, "schema_mismatch"},
	}
	for name, c := range cases {
		_, err := ParsePlan(c.in)
		e := apierr.As(err)
		if e == nil || e.Kind != apierr.KindParse || e.Code != c.code {
			t.Fatalf("%s: err=%v", name, err)
		}
	}
}

func TestCheckPlan(t *testing.T) {
	p := plantest.UpperLower()
	if err := CheckPlan(p); err != nil {
		t.Fatalf("valid plan: %v", err)
	}
	p.Days[1].Exercises[2].Sets = 0
	if err := CheckPlan(p); err == nil || !strings.Contains(err.Error(), "days[1].exercises[2].sets") {
		t.Fatalf("err=%v", err)
	}
	p = plantest.UpperLower()
	p.Days = nil
	if err := CheckPlan(p); err == nil {
		t.Fatalf("expected empty days error")
	}
}

func TestParsePlanFillsNilSlices(t *testing.T) {
	in := `{"planName":"P","overview":"","weeklyStructure":"","progressionGuidance":"","nutritionNotes":"","recoveryNotes":"","disclaimer":"",
"days":[{"dayNumber":1,"name":"A","focus":"full","duration":"60","warmup":{"description":""},"cooldown":{"description":""},
"exercises":[{"name":"Squat","sets":3,"reps":"5","rest":"2 min","intent":"","rationale":"","notes":"","progressionNote":""}]}]}`
	p, err := ParsePlan(in)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if p.Days[0].Warmup.Exercises == nil || p.Days[0].Exercises[0].Substitutions == nil {
		t.Fatalf("nil slices left in plan")
	}
}

type statusErr int

func (e statusErr) Error() string       { return fmt.Sprintf("http %d", int(e)) }
func (e statusErr) HTTPStatusCode() int { return int(e) }

func TestProviderError(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		action apierr.Action
	}{
		{statusErr(http.StatusTooManyRequests), "rate_limited", apierr.ActionWait},
		{statusErr(http.StatusInternalServerError), "provider_unavailable", apierr.ActionRetry},
		{fmt.Errorf("call: %w", errors.New("dial tcp")), "provider_unavailable", apierr.ActionRetry},
	}
	for _, c := range cases {
		e := apierr.As(ProviderError(c.err))
		if e == nil || e.Code != c.code || e.Action != c.action {
			t.Fatalf("ProviderError(%v)=%+v", c.err, e)
		}
	}
	if ProviderError(nil) != nil {
		t.Fatalf("nil error should stay nil")
	}
}
