// Package handler provides HTTP handlers for user endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minhtri0795/github-dashboard-server/internal/timewindow"
	"github.com/minhtri0795/github-dashboard-server/internal/user/model"
	"github.com/minhtri0795/github-dashboard-server/internal/user/service"
)

// Handler handles HTTP requests for user endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetUsers handles GET /webhooks/github/users requests.
func (h *Handler) GetUsers(c *gin.Context) {
	start, end, err := timewindow.ParseRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		errorResponse(c, "INVALID_DATE", err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetUsers(c.Request.Context(), start, end)
	if err != nil {
		h.logger.Errorw("error listing users", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUserByLogin handles GET /webhooks/github/users/:login requests.
func (h *Handler) GetUserByLogin(c *gin.Context) {
	start, end, err := timewindow.ParseRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		errorResponse(c, "INVALID_DATE", err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetUserByLogin(c.Request.Context(), c.Param("login"), start, end)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error fetching user", "login", c.Param("login"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
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
