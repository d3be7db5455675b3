// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minhtri0795/github-dashboard-server/internal/statistics/service"
	"github.com/minhtri0795/github-dashboard-server/internal/timewindow"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetAllPullRequests handles GET /webhooks/github/pull-requests.
func (h *Handler) GetAllPullRequests(c *gin.Context) {
	resp, err := h.service.GetAllPullRequests(c.Request.Context())
	if err != nil {
		h.internalError(c, "error listing pull requests", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPRStatistics handles GET /webhooks/github/statistics.
func (h *Handler) GetPRStatistics(c *gin.Context) {
	resp, err := h.service.GetPRStatistics(c.Request.Context())
	if err != nil {
		h.internalError(c, "error computing pull request statistics", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPRsByRepository handles GET /webhooks/github/repository-stats.
func (h *Handler) GetPRsByRepository(c *gin.Context) {
	resp, err := h.service.GetPRsByRepository(c.Request.Context())
	if err != nil {
		h.internalError(c, "error computing repository statistics", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOpenPRs handles GET /webhooks/github/open-prs.
func (h *Handler) GetOpenPRs(c *gin.Context) {
	start, end, ok := h.parseWindow(c)
	if !ok {
		return
	}
	resp, err := h.service.GetOpenPRs(c.Request.Context(), start, end)
	if err != nil {
		h.internalError(c, "error listing open pull requests", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetClosedPRs handles GET /webhooks/github/closed-prs.
func (h *Handler) GetClosedPRs(c *gin.Context) {
	start, end, ok := h.parseWindow(c)
	if !ok {
		return
	}
	resp, err := h.service.GetClosedPRs(c.Request.Context(), start, end)
	if err != nil {
		h.internalError(c, "error listing closed pull requests", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCommitsByDate handles GET /webhooks/github/commits.
func (h *Handler) GetCommitsByDate(c *gin.Context) {
	start, end, ok := h.parseWindow(c)
	if !ok {
		return
	}
	resp, err := h.service.GetCommitsByDate(c.Request.Context(), start, end)
	if err != nil {
		h.internalError(c, "error listing commits", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCommitStatistics handles GET /webhooks/github/commit-statistics.
func (h *Handler) GetCommitStatistics(c *gin.Context) {
	resp, err := h.service.GetCommitStatistics(c.Request.Context())
	if err != nil {
		h.internalError(c, "error computing commit statistics", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSelfMergedPRs handles GET /webhooks/github/self-merged-prs.
func (h *Handler) GetSelfMergedPRs(c *gin.Context) {
	start, end, ok := h.parseWindow(c)
	if !ok {
		return
	}
	resp, err := h.service.GetSelfMergedPRs(c.Request.Context(), start, end)
	if err != nil {
		h.internalError(c, "error listing self-merged pull requests", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// parseWindow parses the startDate/endDate query parameters. On a malformed
// value it writes a 400 response and returns ok=false.
func (h *Handler) parseWindow(c *gin.Context) (*time.Time, *time.Time, bool) {
	start, end, err := timewindow.ParseRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_DATE",
				"message": err.Error(),
			},
		})
		return nil, nil, false
	}
	return start, end, true
}

// internalError writes a 500 response and logs the cause.
func (h *Handler) internalError(c *gin.Context, message string, err error) {
	h.logger.Errorw(message, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "internal server error",
		},
	})
}
