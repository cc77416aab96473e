package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
)

type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Kind    apierr.Kind       `json:"kind,omitempty"`
	Action  apierr.Action     `json:"action,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Envelope renders err through the taxonomy. Internal causes are not echoed
// to the client.
func Envelope(err error) (int, ErrorEnvelope) {
	e := apierr.From(err)
	if e == nil {
		e = apierr.Internal("internal_error", nil)
	}
	msg := e.Message
	if msg == "" {
		msg = e.Error()
	}
	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return status, ErrorEnvelope{Error: APIError{
		Message: msg,
		Code:    e.Code,
		Kind:    e.Kind,
		Action:  e.Action,
		Details: e.Details,
	}}
}

func RespondError(c *gin.Context, err error) {
	status, env := Envelope(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, env)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
