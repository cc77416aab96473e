// Package mock is a scripted llm.Provider for tests and offline runs.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/liftplan-backend/internal/llm"
)

// Reply is one scripted response: Text, or Err when set.
type Reply struct {
	Text string
	Err  error
}

type Provider struct {
	mu      sync.Mutex
	replies []Reply
	calls   []llm.Request
	repeat  bool
}

// New returns a provider that answers calls with replies in order and fails
// once they run out.
func New(replies ...Reply) *Provider {
	return &Provider{replies: replies}
}

// Fixed returns a provider that answers every call with text.
func Fixed(text string) *Provider {
	return &Provider{replies: []Reply{{Text: text}}, repeat: true}
}

func (p *Provider) Name() string { return "mock" }

func (p *Provider) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.calls)
	p.calls = append(p.calls, req)
	if p.repeat && len(p.replies) > 0 {
		r := p.replies[0]
		return r.Text, r.Err
	}
	if n >= len(p.replies) {
		return "", fmt.Errorf("mock: unexpected call %d", n+1)
	}
	r := p.replies[n]
	return r.Text, r.Err
}

// Calls returns a copy of the recorded requests.
func (p *Provider) Calls() []llm.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]llm.Request, len(p.calls))
	copy(out, p.calls)
	return out
}

var _ llm.Provider = (*Provider)(nil)
