// Package mcp exposes plan generation as MCP tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/yungbote/liftplan-backend/internal/generator"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

type PlanGenerator interface {
	Generate(ctx context.Context, in generator.Input) (*generator.Outcome, error)
}

// New creates an MCP server with all plan tools registered. gen may be nil,
// in which case generate_workout_plan reports that no model is configured.
func New(gen PlanGenerator, version string, log *logger.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftplan", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Workout plan synthesis. Pass the questionnaire as a JSON object string. "+
			"generate_workout_plan calls the language model; generate_fallback_plan is deterministic and offline."),
	)

	h := &handlers{gen: gen, log: logger.OrNop(log).With("service", "MCP")}

	s.AddTools(
		server.ServerTool{Tool: toolGenerateWorkoutPlan, Handler: h.generateWorkoutPlan},
		server.ServerTool{Tool: toolGenerateFallbackPlan, Handler: h.generateFallbackPlan},
		server.ServerTool{Tool: toolRecommendSplit, Handler: h.recommendSplit},
	)
	return s
}

type handlers struct {
	gen PlanGenerator
	log *logger.Logger
}
