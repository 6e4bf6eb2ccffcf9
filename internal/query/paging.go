package query

import (
	"errors"
	"math"
)

var (
	ErrPagingIncomplete = errors.New("page and size must be provided together")
	ErrPagingInvalid    = errors.New("page and size must be >= 1 and page offset must fit in an int")
)

// Params 列表请求参数（gin 从 query string 绑定）
type Params struct {
	Page   *int   `form:"page"`
	Size   *int   `form:"size"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
	Order  string `form:"order"`
}

// Paging 分页决策；Enabled=false 表示返回整个分区
type Paging struct {
	Enabled bool
	Page    int
	Size    int
}

func ValidatePaging(page, size *int) (Paging, error) {
	switch {
	case page == nil && size == nil:
		return Paging{}, nil
	case page == nil || size == nil:
		return Paging{}, ErrPagingIncomplete
	case *page < 1 || *size < 1:
		return Paging{}, ErrPagingInvalid
	case *page-1 > math.MaxInt / *size:
		// 偏移量溢出
		return Paging{}, ErrPagingInvalid
	}
	return Paging{Enabled: true, Page: *page, Size: *size}, nil
}

// Offset 外部 1 起始，内部 0 起始
func (p Paging) Offset() int {
	if !p.Enabled {
		return 0
	}
	return (p.Page - 1) * p.Size
}

func TotalPages(count int64, size int) int {
	if size < 1 {
		return 0
	}
	n := count / int64(size)
	if count%int64(size) != 0 {
		n++
	}
	return int(n)
}

// Page 列表响应信封；CountData 恒为分区内总数
type Page[T any] struct {
	CountData  int64 `json:"countData"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"totalPages"`
	Items      []T   `json:"items"`
}

func NewPage[T any](items []T, total int64, p Paging) Page[T] {
	if items == nil {
		items = []T{}
	}
	if !p.Enabled {
		return Page[T]{CountData: total, Page: 1, Size: len(items), TotalPages: 1, Items: items}
	}
	return Page[T]{
		CountData:  total,
		Page:       p.Page,
		Size:       p.Size,
		TotalPages: TotalPages(total, p.Size),
		Items:      items,
	}
}

// MapPage 转换条目类型（实体 → 响应 DTO）
func MapPage[T, R any](in Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(in.Items))
	for _, it := range in.Items {
		out = append(out, fn(it))
	}
	return Page[R]{CountData: in.CountData, Page: in.Page, Size: in.Size, TotalPages: in.TotalPages, Items: out}
}
