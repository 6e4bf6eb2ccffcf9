// Package ez 一行注册的 gin 动作：绑定入参 → 调用 → 统一成功/错误响应。
package ez

import (
	"github.com/gin-gonic/gin"

	"plantya-platform/internal/core/apperr"
	resp "plantya-platform/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Method   string // GET / POST / PATCH / DELETE
	Path     string // 例："/devices/:id/restore"
	Binder   Binder
	BindCode string // 绑定失败时返回的错误码
	Status   int    // 成功状态码，默认 200
	Handler  func(c *gin.Context, in *I) (O, error)
}

// Register 在当前分组下注册动作
func Register[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			code := a.BindCode
			if code == "" {
				code = "INVALID_REQUEST_PAYLOAD"
			}
			resp.Error(c, apperr.BadRequest(code, "malformed request: "+bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			resp.Error(c, err)
			return
		}
		resp.OK(c, a.Status, out)
	}
	e.g.Handle(a.Method, a.Path, h)
}

// NoContent 删除类动作的占位出参
type NoContent struct{}
