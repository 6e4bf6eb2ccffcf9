package response

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"plantya-platform/internal/core/apperr"
)

// Problem 统一错误响应体
type Problem struct {
	Title     string    `json:"title"`
	Status    int       `json:"status"`
	Detail    string    `json:"detail"`
	Instance  string    `json:"instance"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

func NewProblem(c *gin.Context, status int, code, detail string) Problem {
	return Problem{
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    detail,
		Instance:  c.Request.URL.Path,
		Code:      code,
		Timestamp: time.Now().UTC(),
	}
}

// OK 成功响应；204 不写 body
func OK(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	if status == http.StatusNoContent {
		c.Status(status)
		return
	}
	c.JSON(status, data)
}

// Error 把任意错误写成 Problem；未知错误不暴露细节
func Error(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		Abort(c, http.StatusGatewayTimeout, CodeTimeout, "request timed out")
		return
	}
	ae := apperr.From(err)
	_ = c.Error(err)
	Abort(c, StatusOf(ae.Kind), ae.Code, ae.Detail)
}

func Abort(c *gin.Context, status int, code, detail string) {
	c.AbortWithStatusJSON(status, NewProblem(c, status, code, detail))
}
