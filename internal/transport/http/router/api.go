package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"plantya-platform/internal/core/auth"
	"plantya-platform/internal/core/config"
	mdw "plantya-platform/internal/transport/http/middleware"
)

// NewAPIEngine /api/v1：登录公开，其余需要有效令牌
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, h config.HTTP, reg *Registry) *gin.Engine {
	r := base(l, db, h)

	api := r.Group("/api/v1")
	reg.MountPublic(api)

	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter))
	reg.MountAPI(authed)

	return r
}
