package middleware

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"plantya-platform/internal/core/apperr"
	resp "plantya-platform/internal/transport/http/response"
)

// Recovery panic 记录堆栈后返回 500 problem
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return ginzap.CustomRecoveryWithZap(l, true, func(c *gin.Context, _ any) {
		resp.Abort(c, http.StatusInternalServerError, apperr.CodeInternal, "internal server error")
	})
}
