// Package handler provides the HTTP handler for the webhook ingestion endpoint.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minhtri0795/github-dashboard-server/internal/webhook/model"
	"github.com/minhtri0795/github-dashboard-server/internal/webhook/service"
)

// Handler handles webhook ingestion requests.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new webhook handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// HandleWebhook handles POST /webhooks/github requests.
func (h *Handler) HandleWebhook(c *gin.Context) {
	var event model.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		errorResponse(c, "INVALID_PAYLOAD", "invalid webhook payload", http.StatusBadRequest)
		return
	}

	result, err := h.service.HandleEvent(c.Request.Context(), &event)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmptyPayload),
			errors.Is(err, model.ErrMissingPullRequest),
			errors.Is(err, model.ErrMissingRepository),
			errors.Is(err, model.ErrMissingAuthor):
			errorResponse(c, "INVALID_PAYLOAD", err.Error(), http.StatusBadRequest)
			return
		default:
			h.logger.Errorw("webhook processing failed", "action", event.Action, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

// errorResponse writes a structured error response.
func errorResponse(c *gin.Context, code, message string, status int) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
