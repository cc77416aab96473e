package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/liftplan-backend/internal/http/response"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

// Recovery turns a handler panic into an internal error envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic in handler", "path", c.Request.URL.Path, "panic", fmt.Sprint(rec))
				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.RespondError(c, apierr.Internal("panic", fmt.Errorf("%v", rec)))
			}
		}()
		c.Next()
	}
}

// BodyLimit caps request bodies. Oversized JSON fails to decode in the
// handler.
func BodyLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max > 0 && c.Request.Body != nil {
			if c.Request.ContentLength > max {
				response.RespondError(c, apierr.Validation("body_too_large",
					fmt.Sprintf("request body exceeds %d bytes", max), nil))
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}

// Timeout puts a deadline on the request context. Handlers surface the
// deadline as a provider timeout.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
