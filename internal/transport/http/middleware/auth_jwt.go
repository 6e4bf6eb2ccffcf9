package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"plantya-platform/internal/core/auth"
	resp "plantya-platform/internal/transport/http/response"
)

const (
	KeyClaims = "claims"
	KeyUserID = "userId"
	KeyRole   = "role"

	// CookieToken 浏览器端登录态
	CookieToken = "access_token"
)

// SetTokenCookie HttpOnly + SameSite=Strict
func SetTokenCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieToken, token, maxAge, "/", "", secure, true)
}

func ClearTokenCookie(c *gin.Context, secure bool) {
	SetTokenCookie(c, "", -1, secure)
}

// bearerToken Authorization 头优先，其次 cookie
func bearerToken(c *gin.Context) string {
	if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimPrefix(ah, "Bearer ")
	}
	if v, err := c.Cookie(CookieToken); err == nil {
		return v
	}
	return ""
}

// AuthJWT roles 为空时只要求登录
func AuthJWT(j *auth.JWTer, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearerToken(c)
		if tok == "" {
			resp.Abort(c, http.StatusUnauthorized, resp.CodeTokenMissing, "missing bearer token")
			return
		}
		claims, err := j.Parse(tok)
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, resp.CodeTokenInvalid, "invalid or expired token")
			return
		}
		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			resp.Abort(c, http.StatusForbidden, resp.CodeForbidden, "role "+claims.Role+" is not allowed")
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
