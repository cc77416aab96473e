package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
	"github.com/yungbote/liftplan-backend/internal/platform/httpx"
)

// ProviderError classifies an adapter failure into the provider taxonomy.
func ProviderError(err error) error {
	if err == nil {
		return nil
	}
	if e := apierr.As(err); e != nil {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apierr.Provider("timeout", err)
	}
	switch code := httpx.StatusCode(err); {
	case code == http.StatusTooManyRequests:
		return apierr.Provider("rate_limited", err)
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return apierr.Provider("timeout", err)
	}
	return apierr.Provider("provider_unavailable", err)
}
