// Package handler provides HTTP handlers for pullrequest maintenance endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minhtri0795/github-dashboard-server/internal/pullrequest/repository"
)

// Handler handles HTTP requests for pullrequest maintenance endpoints.
type Handler struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new pullrequest handler instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// CleanupDuplicates handles POST /webhooks/github/maintenance/duplicates.
// It collapses pull request records sharing a natural key and reports how
// many rows were removed.
func (h *Handler) CleanupDuplicates(c *gin.Context) {
	removed, err := h.repo.CleanupDuplicates(c.Request.Context())
	if err != nil {
		h.logger.Errorw("duplicate cleanup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "internal server error",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
