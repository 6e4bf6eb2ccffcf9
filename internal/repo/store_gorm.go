package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plantya-platform/internal/core/database"
	"plantya-platform/internal/domain"
	"plantya-platform/internal/query"
)

var ErrDuplicate = errors.New("duplicate key")

// Store 通用生命周期仓储。key 为对外编号列（user_id / device_id / cluster_id）
type Store[T any] struct {
	db  *gorm.DB
	key string
}

func newStore[T any](db *gorm.DB, key string) Store[T] {
	return Store[T]{db: db, key: key}
}

func (s Store[T]) conn(ctx context.Context) *gorm.DB { return database.Conn(ctx, s.db) }

// DB 供事务边界使用
func (s Store[T]) DB() *gorm.DB { return s.db }

func inPartition(part domain.Partition) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch part {
		case domain.PartitionActive:
			return db.Where("deleted_at IS NULL")
		case domain.PartitionDeleted:
			return db.Where("deleted_at IS NOT NULL")
		}
		return db
	}
}

func (s Store[T]) Count(ctx context.Context, spec *query.Spec) (int64, error) {
	var n int64
	err := spec.Scope(s.conn(ctx).Model(new(T))).Count(&n).Error
	return n, err
}

func (s Store[T]) FindMany(ctx context.Context, spec *query.Spec, p query.Paging) ([]T, error) {
	q := spec.Ordered(s.conn(ctx).Model(new(T)))
	if p.Enabled {
		q = q.Offset(p.Offset()).Limit(p.Size)
	}
	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// List count + 分页读取；countData 永远是分区总数
func (s Store[T]) List(ctx context.Context, spec *query.Spec, p query.Paging) (query.Page[T], error) {
	total, err := s.Count(ctx, spec)
	if err != nil {
		return query.Page[T]{}, err
	}
	items, err := s.FindMany(ctx, spec, p)
	if err != nil {
		return query.Page[T]{}, err
	}
	return query.NewPage(items, total, p), nil
}

// FindOne 不存在返回 (nil, nil)
func (s Store[T]) FindOne(ctx context.Context, publicID string, part domain.Partition) (*T, error) {
	return s.findOne(s.conn(ctx), publicID, part)
}

// FindOneForShare 共享锁读取（SQLite 方言忽略锁子句）
func (s Store[T]) FindOneForShare(ctx context.Context, publicID string, part domain.Partition) (*T, error) {
	return s.findOne(s.conn(ctx).Clauses(clause.Locking{Strength: "SHARE"}), publicID, part)
}

func (s Store[T]) findOne(db *gorm.DB, publicID string, part domain.Partition) (*T, error) {
	var out T
	err := db.Scopes(inPartition(part)).Where(s.key+" = ?", publicID).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s Store[T]) Create(ctx context.Context, v *T) error {
	if err := s.conn(ctx).Create(v).Error; err != nil {
		if IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Update 仅作用于 active 行；返回受影响行数（0 = 不存在或已删除）
func (s Store[T]) Update(ctx context.Context, publicID string, fields map[string]any, at time.Time) (int64, error) {
	cols := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		cols[k] = v
	}
	cols["updated_at"] = at
	res := s.conn(ctx).Model(new(T)).
		Where(s.key+" = ? AND deleted_at IS NULL", publicID).
		Updates(cols)
	if res.Error != nil {
		if IsDuplicateKey(res.Error) {
			return 0, ErrDuplicate
		}
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// SoftDelete 条件更新：只命中 active 行
func (s Store[T]) SoftDelete(ctx context.Context, publicID string, at time.Time) (int64, error) {
	res := s.conn(ctx).Model(new(T)).
		Where(s.key+" = ? AND deleted_at IS NULL", publicID).
		Updates(map[string]any{"deleted_at": at, "updated_at": at})
	return res.RowsAffected, res.Error
}

// Restore 条件更新：只命中 deleted 行
func (s Store[T]) Restore(ctx context.Context, publicID string, at time.Time) (int64, error) {
	res := s.conn(ctx).Model(new(T)).
		Where(s.key+" = ? AND deleted_at IS NOT NULL", publicID).
		Updates(map[string]any{"deleted_at": nil, "updated_at": at})
	return res.RowsAffected, res.Error
}

// IsDuplicateKey 兼容未开启 TranslateError 的连接
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicate) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
