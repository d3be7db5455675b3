// Package router provides pullrequest module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minhtri0795/github-dashboard-server/internal/pullrequest/handler"
	"github.com/minhtri0795/github-dashboard-server/internal/pullrequest/repository"
)

// RegisterRoutes registers pullrequest maintenance routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	h := handler.New(repo, logger)

	r.POST("/webhooks/github/maintenance/duplicates", h.CleanupDuplicates)
}
