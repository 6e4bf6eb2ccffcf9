package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantya-platform/internal/feature/cluster"
	"plantya-platform/internal/query"
	"plantya-platform/internal/transport/http/ez"
)

type ClusterHandler struct{ svc *cluster.Service }

func NewClusterHandler(svc *cluster.Service) *ClusterHandler { return &ClusterHandler{svc: svc} }

func (h *ClusterHandler) Priority() int { return 30 }

// MountAPI /clusters...
func (h *ClusterHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)
	ez.Register(e, ez.Action[cluster.ListQuery, query.Page[cluster.Response]]{
		Method: http.MethodGet, Path: "/clusters", Binder: ez.BindQuery, BindCode: cluster.CodePagingInvalid,
		Handler: func(c *gin.Context, in *cluster.ListQuery) (query.Page[cluster.Response], error) {
			return h.svc.List(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[cluster.ListQuery, query.Page[cluster.Response]]{
		Method: http.MethodGet, Path: "/clusters/deleted", Binder: ez.BindQuery, BindCode: cluster.CodePagingInvalid,
		Handler: func(c *gin.Context, in *cluster.ListQuery) (query.Page[cluster.Response], error) {
			return h.svc.ListDeleted(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[struct{}, cluster.Response]{
		Method: http.MethodGet, Path: "/clusters/deleted/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (cluster.Response, error) {
			return h.svc.GetDeleted(c.Request.Context(), c.Param("id"))
		},
	})
	ez.Register(e, ez.Action[struct{}, cluster.Detail]{
		Method: http.MethodGet, Path: "/clusters/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (cluster.Detail, error) {
			return h.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})
	ez.Register(e, ez.Action[cluster.CreateRequest, cluster.Response]{
		Method: http.MethodPost, Path: "/clusters", Binder: ez.BindJSON, BindCode: cluster.CodeInvalidPayload,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *cluster.CreateRequest) (cluster.Response, error) {
			return h.svc.Create(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[cluster.PatchRequest, cluster.Response]{
		Method: http.MethodPatch, Path: "/clusters/:id", Binder: ez.BindJSON, BindCode: cluster.CodeInvalidPayload,
		Handler: func(c *gin.Context, in *cluster.PatchRequest) (cluster.Response, error) {
			return h.svc.Patch(c.Request.Context(), c.Param("id"), *in)
		},
	})
	ez.Register(e, ez.Action[struct{}, ez.NoContent]{
		Method: http.MethodDelete, Path: "/clusters/:id", Binder: ez.BindNone, Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (ez.NoContent, error) {
			return ez.NoContent{}, h.svc.Delete(c.Request.Context(), c.Param("id"))
		},
	})
	ez.Register(e, ez.Action[struct{}, cluster.Response]{
		Method: http.MethodPost, Path: "/clusters/:id/restore", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (cluster.Response, error) {
			return h.svc.Restore(c.Request.Context(), c.Param("id"))
		},
	})
}
