// Package router provides webhook module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	commitRepository "github.com/minhtri0795/github-dashboard-server/internal/commit/repository"
	commitService "github.com/minhtri0795/github-dashboard-server/internal/commit/service"
	"github.com/minhtri0795/github-dashboard-server/internal/notifier"
	prRepository "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/repository"
	userRepository "github.com/minhtri0795/github-dashboard-server/internal/user/repository"
	userService "github.com/minhtri0795/github-dashboard-server/internal/user/service"
	"github.com/minhtri0795/github-dashboard-server/internal/webhook/handler"
	"github.com/minhtri0795/github-dashboard-server/internal/webhook/service"
)

// RegisterRoutes registers the webhook ingestion route.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, sink notifier.Notifier, logger *zap.SugaredLogger) {
	users := userService.New(userRepository.New(db, logger), logger)
	recorder := commitService.New(commitRepository.New(db, logger), users, logger)
	prs := prRepository.New(db, logger)

	svc := service.New(prs, users, recorder, sink, logger)
	h := handler.New(svc, logger)

	r.POST("/webhooks/github", h.HandleWebhook)
}
