package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"plantya-platform/internal/core/auth"
	"plantya-platform/internal/core/config"
	"plantya-platform/internal/domain"
	mdw "plantya-platform/internal/transport/http/middleware"
)

// NewAdminEngine /admin/v1
func NewAdminEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, h config.HTTP, reg *Registry) *gin.Engine {
	r := base(l, db, h)

	admin := r.Group("/admin/v1")
	// 登录公开，其余要求 ADMIN
	reg.MountPublic(admin)
	admin.Use(mdw.AuthJWT(jwter, string(domain.RoleAdmin)))
	reg.MountAdmin(admin)

	return r
}
