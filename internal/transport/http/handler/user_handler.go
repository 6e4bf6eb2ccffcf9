package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantya-platform/internal/feature/user"
	"plantya-platform/internal/query"
	"plantya-platform/internal/transport/http/ez"
)

type UserHandler struct{ svc *user.Service }

func NewUserHandler(svc *user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Priority() int { return 10 }

// MountAdmin /users...，分组已要求 ADMIN
func (h *UserHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)
	ez.Register(e, ez.Action[user.ListQuery, query.Page[user.Response]]{
		Method: http.MethodGet, Path: "/users", Binder: ez.BindQuery, BindCode: user.CodePagingInvalid,
		Handler: func(c *gin.Context, in *user.ListQuery) (query.Page[user.Response], error) {
			return h.svc.List(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[user.ListQuery, query.Page[user.Response]]{
		Method: http.MethodGet, Path: "/users/deleted", Binder: ez.BindQuery, BindCode: user.CodePagingInvalid,
		Handler: func(c *gin.Context, in *user.ListQuery) (query.Page[user.Response], error) {
			return h.svc.ListDeleted(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[struct{}, user.Response]{
		Method: http.MethodGet, Path: "/users/deleted/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (user.Response, error) {
			return h.svc.GetDeleted(c.Request.Context(), c.Param("id"))
		},
	})
	ez.Register(e, ez.Action[struct{}, user.Response]{
		Method: http.MethodGet, Path: "/users/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (user.Response, error) {
			return h.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})
	ez.Register(e, ez.Action[user.CreateRequest, user.Response]{
		Method: http.MethodPost, Path: "/users", Binder: ez.BindJSON, BindCode: user.CodeInvalidPayload,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *user.CreateRequest) (user.Response, error) {
			return h.svc.Create(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[user.PatchRequest, user.Response]{
		Method: http.MethodPatch, Path: "/users/:id", Binder: ez.BindJSON, BindCode: user.CodeInvalidPayload,
		Handler: func(c *gin.Context, in *user.PatchRequest) (user.Response, error) {
			return h.svc.Patch(c.Request.Context(), c.Param("id"), *in)
		},
	})
	ez.Register(e, ez.Action[struct{}, ez.NoContent]{
		Method: http.MethodDelete, Path: "/users/:id", Binder: ez.BindNone, Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (ez.NoContent, error) {
			return ez.NoContent{}, h.svc.Delete(c.Request.Context(), c.Param("id"))
		},
	})
	ez.Register(e, ez.Action[struct{}, user.Response]{
		Method: http.MethodPost, Path: "/users/:id/restore", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (user.Response, error) {
			return h.svc.Restore(c.Request.Context(), c.Param("id"))
		},
	})
}
