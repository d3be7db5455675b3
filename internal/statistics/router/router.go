// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minhtri0795/github-dashboard-server/internal/statistics/handler"
	"github.com/minhtri0795/github-dashboard-server/internal/statistics/repository"
	"github.com/minhtri0795/github-dashboard-server/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.GET("/webhooks/github/pull-requests", h.GetAllPullRequests)
	r.GET("/webhooks/github/statistics", h.GetPRStatistics)
	r.GET("/webhooks/github/repository-stats", h.GetPRsByRepository)
	r.GET("/webhooks/github/open-prs", h.GetOpenPRs)
	r.GET("/webhooks/github/closed-prs", h.GetClosedPRs)
	r.GET("/webhooks/github/commits", h.GetCommitsByDate)
	r.GET("/webhooks/github/commit-statistics", h.GetCommitStatistics)
	r.GET("/webhooks/github/self-merged-prs", h.GetSelfMergedPRs)
}
