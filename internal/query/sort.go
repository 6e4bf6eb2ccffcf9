package query

import (
	"errors"
	"strings"
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

var ErrInvalidOrder = errors.New("order must be ASC or DESC")

// SortPolicy 排序白名单。Fields: 请求 key → 列名（大小写敏感）
type SortPolicy struct {
	Fields       map[string]string
	DefaultField string
	DefaultOrder Direction
	// StrictOrder 为 true 时非 asc/desc 直接报错；否则一律按 DESC
	StrictOrder bool
}

// ResolveField 未知/空 key 静默回落到默认列
func (p SortPolicy) ResolveField(requested string) string {
	if col, ok := p.Fields[requested]; ok {
		return col
	}
	return p.DefaultField
}

func (p SortPolicy) ResolveOrder(requested string) (Direction, error) {
	r := strings.TrimSpace(requested)
	if r == "" {
		if p.DefaultOrder == "" {
			return Desc, nil
		}
		return p.DefaultOrder, nil
	}
	switch strings.ToUpper(r) {
	case string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	}
	if p.StrictOrder {
		return "", ErrInvalidOrder
	}
	return Desc, nil
}
