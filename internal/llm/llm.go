// Package llm is the boundary between plan generation and a model provider.
// Providers return raw text; everything they return is treated as untrusted
// until ParsePlan accepts it.
package llm

import (
	"context"
)

type Request struct {
	Model           string
	System          string
	User            string
	SchemaName      string
	Schema          map[string]any
	Temperature     float64
	MaxOutputTokens int
}

type Provider interface {
	GenerateJSON(ctx context.Context, req Request) (string, error)
	Name() string
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req Request) (string, error)

func (f ProviderFunc) GenerateJSON(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

func (f ProviderFunc) Name() string { return "func" }
