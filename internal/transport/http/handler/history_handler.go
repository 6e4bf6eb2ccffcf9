package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantya-platform/internal/feature/history"
	"plantya-platform/internal/transport/http/ez"
)

type HistoryHandler struct{ svc *history.Service }

func NewHistoryHandler(svc *history.Service) *HistoryHandler { return &HistoryHandler{svc: svc} }

func (h *HistoryHandler) Priority() int { return 40 }

// MountAPI /history 与 /history/latest，所有已登录角色可读
func (h *HistoryHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)
	ez.Register(e, ez.Action[history.RangeQuery, []history.Reading]{
		Method: http.MethodGet, Path: "/history", Binder: ez.BindQuery, BindCode: history.CodeInvalidPayload,
		Handler: func(c *gin.Context, in *history.RangeQuery) ([]history.Reading, error) {
			return h.svc.Range(c.Request.Context(), *in)
		},
	})
	ez.Register(e, ez.Action[history.LatestQuery, history.Reading]{
		Method: http.MethodGet, Path: "/history/latest", Binder: ez.BindQuery, BindCode: history.CodeInvalidPayload,
		Handler: func(c *gin.Context, in *history.LatestQuery) (history.Reading, error) {
			return h.svc.Latest(c.Request.Context(), in.DeviceID)
		},
	})
}
