package llm

import (
	"context"
	"time"

	"github.com/yungbote/liftplan-backend/internal/observability"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
)

type instrumentedProvider struct {
	inner   Provider
	metrics *observability.Metrics
}

// Instrument records call counts and latency for p. It returns p unchanged
// when metrics are disabled.
func Instrument(p Provider, m *observability.Metrics) Provider {
	if p == nil || m == nil {
		return p
	}
	return &instrumentedProvider{inner: p, metrics: m}
}

func (p *instrumentedProvider) Name() string { return p.inner.Name() }

func (p *instrumentedProvider) GenerateJSON(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	out, err := p.inner.GenerateJSON(ctx, req)
	status := "success"
	if err != nil {
		status = "error"
		if e := apierr.As(err); e != nil && e.Code != "" {
			status = e.Code
		}
	}
	// Output size stands in for token usage; adapters do not surface counts.
	p.metrics.ObserveLLMRequest(p.inner.Name(), req.Model, status, time.Since(start), 0, len(out)/4)
	return out, err
}
