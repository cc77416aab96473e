// Package openai is the Responses API adapter behind llm.Provider.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/liftplan-backend/internal/llm"
	"github.com/yungbote/liftplan-backend/internal/observability"
	"github.com/yungbote/liftplan-backend/internal/platform/httpx"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"
	responsesPath  = "/v1/responses"
)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	// NoTemperatureModels lists model ids (or "prefix*") that reject temperature.
	NoTemperatureModels []string
}

type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	maxBackoff time.Duration

	noTempModels   map[string]bool
	noTempPrefixes []string

	// Models that rejected temperature at runtime; omitted thereafter.
	noTempMu   sync.RWMutex
	noTempSeen map[string]bool
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing openai api key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	models, prefixes := parseNoTempModelRules(cfg.NoTemperatureModels)
	return &Client{
		log:            logger.OrNop(log).With("service", "OpenAIClient"),
		baseURL:        baseURL,
		apiKey:         apiKey,
		model:          model,
		httpClient:     &http.Client{Timeout: timeout},
		maxRetries:     maxRetries,
		backoff:        time.Second,
		maxBackoff:     10 * time.Second,
		noTempModels:   models,
		noTempPrefixes: prefixes,
		noTempSeen:     map[string]bool{},
	}, nil
}

// WithHTTPClient swaps the transport, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithBackoff sets the first retry delay and its cap.
func (c *Client) WithBackoff(first, max time.Duration) *Client {
	c.backoff = first
	c.maxBackoff = max
	return c
}

func (c *Client) Name() string { return "openai" }

func normalizeModelKey(m string) string {
	return strings.ToLower(strings.TrimSpace(m))
}

func parseNoTempModelRules(rules []string) (map[string]bool, []string) {
	models := map[string]bool{}
	var prefixes []string
	for _, r := range rules {
		r = normalizeModelKey(r)
		if r == "" {
			continue
		}
		if strings.HasSuffix(r, "*") {
			prefixes = append(prefixes, strings.TrimSuffix(r, "*"))
			continue
		}
		models[r] = true
	}
	return models, prefixes
}

func (c *Client) modelIsNoTemp(model string) bool {
	key := normalizeModelKey(model)
	if c.noTempModels[key] {
		return true
	}
	for _, p := range c.noTempPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	c.noTempMu.RLock()
	defer c.noTempMu.RUnlock()
	return c.noTempSeen[key]
}

func (c *Client) noteNoTempModel(model string) {
	c.noTempMu.Lock()
	c.noTempSeen[normalizeModelKey(model)] = true
	c.noTempMu.Unlock()
	c.log.Warn("model rejected temperature; omitting it from now on", "model", model)
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *openAIHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func isUnsupportedTemperatureParam(err error) bool {
	var he *openAIHTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusBadRequest {
		return false
	}
	msg := strings.ToLower(he.Body)
	if !strings.Contains(msg, "temperature") {
		return false
	}
	for _, s := range []string{"unsupported", "unknown parameter", "unrecognized", "not supported", "does not support", "only the default"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
	Text  struct {
		Format map[string]any `json:"format,omitempty"`
	} `json:"text"`
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"max_output_tokens,omitempty"`
}

type responsesResponse struct {
	Status            string `json:"status"`
	IncompleteDetails *struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details,omitempty"`
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type    string `json:"type"`
			Text    string `json:"text,omitempty"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func extractOutputText(resp responsesResponse) (string, string) {
	var out, refusal strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		for _, c := range item.Content {
			switch c.Type {
			case "output_text":
				out.WriteString(c.Text)
			case "refusal":
				refusal.WriteString(c.Refusal)
			}
		}
	}
	return out.String(), refusal.String()
}

// GenerateJSON sends a strict json_schema request and returns the raw output
// text. Errors are classified into the provider taxonomy.
func (c *Client) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	if req.SchemaName == "" || req.Schema == nil {
		return "", errors.New("schema name and schema required")
	}
	model := req.Model
	if model == "" {
		model = c.model
	}
	ctx, span := observability.Tracer().Start(ctx, "openai.responses")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", model),
		attribute.String("llm.schema", req.SchemaName),
		attribute.Float64("llm.temperature", req.Temperature),
	)

	body := responsesRequest{
		Model:           model,
		Input:           []inputMessage{{Role: "system", Content: req.System}, {Role: "user", Content: req.User}},
		MaxOutputTokens: req.MaxOutputTokens,
	}
	body.Text.Format = map[string]any{
		"type":   "json_schema",
		"name":   req.SchemaName,
		"schema": req.Schema,
		"strict": true,
	}
	if !c.modelIsNoTemp(model) {
		t := req.Temperature
		body.Temperature = &t
	}

	var resp responsesResponse
	err := c.do(ctx, &body, &resp)
	if err != nil && body.Temperature != nil && isUnsupportedTemperatureParam(err) {
		c.noteNoTempModel(model)
		body.Temperature = nil
		err = c.do(ctx, &body, &resp)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", llm.ProviderError(err)
	}
	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
	)

	text, refusal := extractOutputText(resp)
	if refusal != "" {
		return "", llm.ProviderError(fmt.Errorf("model refused: %s", refusal))
	}
	if resp.Status == "incomplete" && resp.IncompleteDetails != nil {
		// Truncated output still goes to the parser; repair may recover it.
		c.log.Warn("openai response incomplete", "reason", resp.IncompleteDetails.Reason, "model", model)
	}
	if strings.TrimSpace(text) == "" {
		return "", llm.ProviderError(errors.New("no output_text in response"))
	}
	return text, nil
}

func (c *Client) doOnce(ctx context.Context, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+responsesPath, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *Client) do(ctx context.Context, body any, out any) error {
	backoff := c.backoff
	start := time.Now()
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, raw, err := c.doOnce(ctx, body)
		if err == nil {
			c.log.Debug("openai request ok", "attempt", attempt+1, "elapsed", time.Since(start).String())
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("openai decode error: %w", uErr)
			}
			return nil
		}
		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, c.maxBackoff))
		c.log.Warn("OpenAI request retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		if err := httpx.Sleep(ctx, sleepFor); err != nil {
			return err
		}
		backoff *= 2
	}
	return fmt.Errorf("unreachable retry loop")
}

var _ llm.Provider = (*Client)(nil)
