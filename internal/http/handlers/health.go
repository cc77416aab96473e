package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/liftplan-backend/internal/knowledge"
)

type KnowledgeSource interface {
	Get() *knowledge.Base
}

type HealthHandler struct {
	kb KnowledgeSource
}

// NewHealthHandler reports liveness; kb may be nil.
func NewHealthHandler(kb KnowledgeSource) *HealthHandler { return &HealthHandler{kb: kb} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	out := gin.H{"status": "ok"}
	if h.kb != nil {
		if base := h.kb.Get(); base != nil {
			out["knowledgeBlocks"] = base.Len()
		}
	}
	c.JSON(http.StatusOK, out)
}
