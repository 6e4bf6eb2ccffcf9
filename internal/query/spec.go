package query

import (
	"database/sql"
	"strings"

	"gorm.io/gorm"

	"plantya-platform/internal/domain"
)

const searchParam = "search"

type Op int

const (
	OpIsNull Op = iota
	OpNotNull
	OpEq
	OpLike // LOWER(col) LIKE @param
)

// Cond 单个谓词节点；Column 只能来自各资源的白名单常量
type Cond struct {
	Column string
	Op     Op
	Param  string
	Value  any
}

func (c Cond) render() string {
	switch c.Op {
	case OpIsNull:
		return c.Column + " IS NULL"
	case OpNotNull:
		return c.Column + " IS NOT NULL"
	case OpLike:
		return "LOWER(" + c.Column + ") LIKE @" + c.Param
	default:
		return c.Column + " = @" + c.Param
	}
}

// Spec 查询规格：分区基础条件 + 可选搜索 OR 组 + 精确过滤 AND + 排序
type Spec struct {
	base    *Cond
	search  []Cond
	pattern string
	filters []Cond
	sortCol string
	sortDir Direction
}

func New(part domain.Partition) *Spec {
	s := &Spec{}
	switch part {
	case domain.PartitionActive:
		s.base = &Cond{Column: "deleted_at", Op: OpIsNull}
	case domain.PartitionDeleted:
		s.base = &Cond{Column: "deleted_at", Op: OpNotNull}
	}
	return s
}

// Search 空白词忽略；所有分支共用一个 @search 参数
func (s *Spec) Search(term string, columns ...string) *Spec {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return s
	}
	s.pattern = "%" + strings.ToLower(term) + "%"
	s.search = s.search[:0]
	for _, col := range columns {
		s.search = append(s.search, Cond{Column: col, Op: OpLike, Param: searchParam})
	}
	return s
}

// Eq 精确匹配，参数排在搜索参数之后
func (s *Spec) Eq(column string, value any) *Spec {
	s.filters = append(s.filters, Cond{Column: column, Op: OpEq, Param: "eq_" + column, Value: value})
	return s
}

func (s *Spec) OrderBy(column string, dir Direction) *Spec {
	s.sortCol, s.sortDir = column, dir
	return s
}

// Where 渲染谓词模板与有序参数；无任何条件时返回空串
func (s *Spec) Where() (string, []any) {
	var parts []string
	var args []any
	if s.base != nil {
		parts = append(parts, s.base.render())
	}
	if len(s.search) > 0 {
		or := make([]string, 0, len(s.search))
		for _, c := range s.search {
			or = append(or, c.render())
		}
		parts = append(parts, "("+strings.Join(or, " OR ")+")")
		args = append(args, sql.Named(searchParam, s.pattern))
	}
	for _, f := range s.filters {
		parts = append(parts, f.render())
		args = append(args, sql.Named(f.Param, f.Value))
	}
	return strings.Join(parts, " AND "), args
}

// OrderClause 主排序 + id 升序兜底，保证分页稳定
func (s *Spec) OrderClause() string {
	if s.sortCol == "" {
		return "id ASC"
	}
	dir := s.sortDir
	if dir == "" {
		dir = Desc
	}
	return s.sortCol + " " + string(dir) + ", id ASC"
}

// Scope 仅附加 WHERE（计数用）
func (s *Spec) Scope(db *gorm.DB) *gorm.DB {
	if where, args := s.Where(); where != "" {
		db = db.Where(where, args...)
	}
	return db
}

// Ordered 附加 WHERE + ORDER BY（列表用）
func (s *Spec) Ordered(db *gorm.DB) *gorm.DB {
	return s.Scope(db).Order(s.OrderClause())
}

// Resource 一类资源的查询配置
type Resource struct {
	SearchColumns []string
	Sort          SortPolicy
}

// Build 由列表参数生成规格；排序方向非法时返回 ErrInvalidOrder（仅严格模式）
func (r Resource) Build(part domain.Partition, p Params) (*Spec, error) {
	dir, err := r.Sort.ResolveOrder(p.Order)
	if err != nil {
		return nil, err
	}
	return New(part).
		Search(p.Search, r.SearchColumns...).
		OrderBy(r.Sort.ResolveField(p.Sort), dir), nil
}
