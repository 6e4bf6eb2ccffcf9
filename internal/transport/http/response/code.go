package response

import (
	"net/http"

	"plantya-platform/internal/core/apperr"
)

// 中间件层直接返回的错误码（不经过 service）
const (
	CodeTokenMissing    = "AUTH_TOKEN_MISSING"
	CodeTokenInvalid    = "AUTH_TOKEN_INVALID"
	CodeForbidden       = "AUTH_FORBIDDEN"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeServerBusy      = "SERVER_BUSY"
	CodeBodyTooLarge    = "REQUEST_BODY_TOO_LARGE"
	CodeTimeout         = "REQUEST_TIMEOUT"
	CodeRouteNotFound   = "ROUTE_NOT_FOUND"
)

// StatusOf 错误类别 → HTTP 状态码
func StatusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
