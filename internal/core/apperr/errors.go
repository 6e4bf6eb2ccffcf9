package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误分类（传输层据此映射 HTTP 状态码）
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "InternalError"
	}
}

const CodeInternal = "INTERNAL_SERVER_ERROR"

// Error 业务错误：稳定的机器码 + 可读描述，Err 仅用于日志
type Error struct {
	Kind   Kind
	Code   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, detail string) *Error {
	return &Error{Kind: kind, Code: code, Detail: detail}
}

func BadRequest(code, detail string) *Error   { return New(KindBadRequest, code, detail) }
func Unauthorized(code, detail string) *Error { return New(KindUnauthorized, code, detail) }
func Forbidden(code, detail string) *Error    { return New(KindForbidden, code, detail) }
func NotFound(code, detail string) *Error     { return New(KindNotFound, code, detail) }
func Conflict(code, detail string) *Error     { return New(KindConflict, code, detail) }

// Internal 包装存储层等意外错误；detail 固定，不泄露内部信息
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Detail: "internal server error", Err: err}
}

// From 任意 error → *Error，未知错误一律视为 Internal
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

func KindOf(err error) Kind { return From(err).Kind }

// Is 判断错误码
func Is(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
