// Package gemini adapts the Gemini API to llm.Provider using JSON-schema
// constrained output.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/yungbote/liftplan-backend/internal/llm"
	"github.com/yungbote/liftplan-backend/internal/observability"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

const defaultModel = "gemini-2.5-flash"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// HTTPClient overrides the transport; nil uses the SDK default.
	HTTPClient *http.Client
}

type Client struct {
	log    *logger.Logger
	client *genai.Client
	model  string
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing gemini api key")
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	return &Client{log: logger.OrNop(log).With("service", "GeminiClient"), client: gc, model: model}, nil
}

func (c *Client) Name() string { return "gemini" }

type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string       { return e.err.Error() }
func (e *statusError) Unwrap() error       { return e.err }
func (e *statusError) HTTPStatusCode() int { return e.code }

func (c *Client) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	ctx, span := observability.Tracer().Start(ctx, "gemini.generate_content")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", model),
		attribute.String("llm.schema", req.SchemaName),
		attribute.Float64("llm.temperature", req.Temperature),
	)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction:  &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
		Temperature:        genai.Ptr(float32(req.Temperature)),
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: req.Schema,
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxOutputTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.User), cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			err = &statusError{code: apiErr.Code, err: err}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.log.Warn("gemini request failed", "model", model, "error", err)
		return "", llm.ProviderError(err)
	}
	text := ""
	if resp != nil {
		text = resp.Text()
	}
	if strings.TrimSpace(text) == "" {
		return "", llm.ProviderError(errors.New("gemini returned no text"))
	}
	return text, nil
}

var _ llm.Provider = (*Client)(nil)
