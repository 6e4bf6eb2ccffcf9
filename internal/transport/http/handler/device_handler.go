package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantya-platform/internal/feature/device"
	"plantya-platform/internal/query"
	"plantya-platform/internal/transport/http/ez"
)

type DeviceHandler struct{ svc *device.Service }

func NewDeviceHandler(svc *device.Service) *DeviceHandler { return &DeviceHandler{svc: svc} }

func (h *DeviceHandler) Priority() int { return 20 }

// MountAPI /devices...
func (h *DeviceHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)
	ez.Register(e, ez.Action[device.ListQuery, query.Page[device.Response]]{
		Method: http.MethodGet, Path: "/devices", Binder: ez.BindQuery, BindCode: device.CodePagingInvalid,
		Handler: func(c *gin.Context, in *device.ListQuery) (query.Page[device.Response], error) {
			return h.svc.List(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[device.ListQuery, query.Page[device.Response]]{
		Method: http.MethodGet, Path: "/devices/deleted", Binder: ez.BindQuery, BindCode: device.CodePagingInvalid,
		Handler: func(c *gin.Context, in *device.ListQuery) (query.Page[device.Response], error) {
			return h.svc.ListDeleted(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[struct{}, device.Response]{
		Method: http.MethodGet, Path: "/devices/deleted/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (device.Response, error) {
			return h.svc.GetDeleted(c.Request.Context(), c.Param("id"))
		},
	})
	ez.Register(e, ez.Action[struct{}, device.Response]{
		Method: http.MethodGet, Path: "/devices/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (device.Response, error) {
			return h.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})
	ez.Register(e, ez.Action[device.CreateRequest, device.Response]{
		Method: http.MethodPost, Path: "/devices", Binder: ez.BindJSON, BindCode: device.CodeInvalidPayload,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *device.CreateRequest) (device.Response, error) {
			return h.svc.Create(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[device.PatchRequest, device.Response]{
		Method: http.MethodPatch, Path: "/devices/:id", Binder: ez.BindJSON, BindCode: device.CodeInvalidPayload,
		Handler: func(c *gin.Context, in *device.PatchRequest) (device.Response, error) {
			return h.svc.Patch(c.Request.Context(), c.Param("id"), *in)
		},
	})
	ez.Register(e, ez.Action[struct{}, ez.NoContent]{
		Method: http.MethodDelete, Path: "/devices/:id", Binder: ez.BindNone, Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (ez.NoContent, error) {
			return ez.NoContent{}, h.svc.Delete(c.Request.Context(), c.Param("id"))
		},
	})
	ez.Register(e, ez.Action[struct{}, device.Response]{
		Method: http.MethodPost, Path: "/devices/:id/restore", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (device.Response, error) {
			return h.svc.Restore(c.Request.Context(), c.Param("id"))
		},
	})
}
