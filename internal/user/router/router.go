// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minhtri0795/github-dashboard-server/internal/user/handler"
	"github.com/minhtri0795/github-dashboard-server/internal/user/repository"
	"github.com/minhtri0795/github-dashboard-server/internal/user/service"
)

// RegisterRoutes registers user module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.GET("/webhooks/github/users", h.GetUsers)
	r.GET("/webhooks/github/users/:login", h.GetUserByLogin)
}
