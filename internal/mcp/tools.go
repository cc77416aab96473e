package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/fallback"
	"github.com/yungbote/liftplan-backend/internal/generator"
	"github.com/yungbote/liftplan-backend/internal/normalize"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
	"github.com/yungbote/liftplan-backend/internal/programdesign"
)

// --- Tool definitions ---

var toolGenerateWorkoutPlan = mcp.NewTool("generate_workout_plan",
	mcp.WithDescription("Generate a personalized workout plan with the language model. Returns the normalized plan, quality issues and the generation trace."),
	mcp.WithString("questionnaire", mcp.Required(), mcp.Description("Questionnaire JSON object (goals, experience, availability, equipment, injuries, recovery, nutrition, preferences, constraints)")),
	mcp.WithString("existing_plan", mcp.Description("Text of a current plan to update instead of starting fresh")),
)

var toolGenerateFallbackPlan = mcp.NewTool("generate_fallback_plan",
	mcp.WithDescription("Build a deterministic template plan from the questionnaire without calling a model."),
	mcp.WithString("questionnaire", mcp.Required(), mcp.Description("Questionnaire JSON object")),
)

var toolRecommendSplit = mcp.NewTool("recommend_split",
	mcp.WithDescription("Recommend a weekly training split for the given schedule and recovery."),
	mcp.WithNumber("days_per_week", mcp.Required(), mcp.Description("Training days per week (1-7)")),
	mcp.WithString("recovery_capacity", mcp.Description("Recovery capacity tier"), mcp.Enum("low", "moderate", "high")),
	mcp.WithString("level", mcp.Description("Experience level"), mcp.Enum("beginner", "intermediate", "advanced")),
	mcp.WithString("preferred_split", mcp.Description("Split the user asked for; returned unchanged when set")),
)

// --- Tool handlers ---

func (h *handlers) questionnaire(req mcp.CallToolRequest) (plan.Questionnaire, *mcp.CallToolResult) {
	raw, err := req.RequireString("questionnaire")
	if err != nil {
		return plan.Questionnaire{}, mcp.NewToolResultError("questionnaire parameter is required")
	}
	q, err := plan.DecodeQuestionnaire([]byte(raw))
	if err != nil {
		return plan.Questionnaire{}, errorResult(err)
	}
	return q, nil
}

func (h *handlers) generateWorkoutPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, bad := h.questionnaire(req)
	if bad != nil {
		return bad, nil
	}
	if h.gen == nil {
		return errorResult(apierr.Internal("provider_missing", errors.New("no llm provider configured"))), nil
	}
	out, err := h.gen.Generate(ctx, generator.Input{
		Questionnaire: q,
		ExistingPlan:  req.GetString("existing_plan", ""),
	})
	if err != nil {
		h.log.Error("mcp generate_workout_plan", "error", err)
		return errorResult(err), nil
	}
	return jsonResult(out), nil
}

func (h *handlers) generateFallbackPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, bad := h.questionnaire(req)
	if bad != nil {
		return bad, nil
	}
	return jsonResult(normalize.Normalize(fallback.Generate(q), q)), nil
}

type splitResult struct {
	DaysPerWeek int    `json:"daysPerWeek"`
	Split       string `json:"split"`
}

func (h *handlers) recommendSplit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days, err := req.RequireInt("days_per_week")
	if err != nil {
		return mcp.NewToolResultError("days_per_week parameter is required"), nil
	}
	if days < 1 || days > 7 {
		return mcp.NewToolResultError("days_per_week must be between 1 and 7"), nil
	}
	split := programdesign.RecommendSplit(
		days,
		req.GetString("recovery_capacity", "moderate"),
		plan.Level(req.GetString("level", string(plan.LevelIntermediate))),
		req.GetString("preferred_split", ""),
	)
	return jsonResult(splitResult{DaysPerWeek: days, Split: split}), nil
}

func jsonResult(v any) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed")
	}
	return result
}

func errorResult(err error) *mcp.CallToolResult {
	e := apierr.From(err)
	msg := e.Message
	if msg == "" {
		msg = e.Error()
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	return mcp.NewToolResultError(msg)
}
