// Package staging holds a generation request between the form submit and
// the EventSource connection that consumes it. Each payload is read once.
package staging

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
)

const DefaultTTL = 10 * time.Minute

var ErrNotFound = errors.New("staged payload not found")

type Payload struct {
	Questionnaire plan.Questionnaire `json:"questionnaire"`
	ExistingPlan  string             `json:"existingPlan,omitempty"`
}

type Store interface {
	Put(ctx context.Context, p Payload) (string, error)
	// Take returns the payload and removes it in the same step.
	Take(ctx context.Context, key string) (Payload, error)
	TTL() time.Duration
}

// NotFound maps a missing stage onto the user-facing error.
func NotFound(key string) *apierr.Error {
	e := apierr.Validation("stage_not_found", "the staged plan request has expired or was already used", map[string]string{"stage": key})
	e.Err = ErrNotFound
	return e
}

func newKey() string { return uuid.NewString() }

func encode(p Payload) ([]byte, error) { return json.Marshal(p) }

func decode(raw []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, apierr.Internal("stage_corrupt", err)
	}
	return p, nil
}
