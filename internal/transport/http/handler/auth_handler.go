package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"plantya-platform/internal/core/apperr"
	"plantya-platform/internal/feature/auth"
	"plantya-platform/internal/feature/user"
	"plantya-platform/internal/transport/http/ez"
	mdw "plantya-platform/internal/transport/http/middleware"
	resp "plantya-platform/internal/transport/http/response"
)

type AuthHandler struct {
	svc          *auth.Service
	cookieSecure bool
}

func NewAuthHandler(svc *auth.Service, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieSecure: cookieSecure}
}

func (h *AuthHandler) Priority() int { return 0 }

// MountPublic /auth/login /auth/register /auth/logout 无需登录
func (h *AuthHandler) MountPublic(g *gin.RouterGroup) {
	e := ez.New(g)
	ez.Register(e, ez.Action[auth.LoginRequest, auth.LoginResponse]{
		Method: http.MethodPost, Path: "/auth/login", Binder: ez.BindJSON, BindCode: auth.CodeFieldRequired,
		Handler: func(c *gin.Context, in *auth.LoginRequest) (auth.LoginResponse, error) {
			out, err := h.svc.Login(c.Request.Context(), *in)
			if err != nil {
				return out, err
			}
			// 令牌同时写入 cookie，浏览器端无需自行保存
			mdw.SetTokenCookie(c, out.Token, int(time.Until(out.ExpiresAt).Seconds()), h.cookieSecure)
			return out, nil
		},
	})
	ez.Register(e, ez.Action[user.RegisterRequest, user.Response]{
		Method: http.MethodPost, Path: "/auth/register", Binder: ez.BindJSON, BindCode: user.CodeInvalidPayload,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *user.RegisterRequest) (user.Response, error) {
			return h.svc.Register(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[struct{}, ez.NoContent]{
		Method: http.MethodPost, Path: "/auth/logout", Binder: ez.BindNone, Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (ez.NoContent, error) {
			h.svc.Logout(c.Request.Context())
			mdw.ClearTokenCookie(c, h.cookieSecure)
			return ez.NoContent{}, nil
		},
	})
}

// MountAPI /me
func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	ez.Register(ez.New(g), ez.Action[struct{}, user.Response]{
		Method: http.MethodGet, Path: "/me", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (user.Response, error) {
			uid := c.GetString(mdw.KeyUserID)
			if uid == "" {
				return user.Response{}, apperr.Unauthorized(resp.CodeTokenMissing, "unauthorized")
			}
			return h.svc.Me(c.Request.Context(), uid)
		},
	})
}
