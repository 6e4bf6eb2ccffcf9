// Package lifecycle 实现 active / deleted 两态资源的通用读写流程：
// 分页列表、按编号读取、条件 patch、条件软删（可级联）与恢复。
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"plantya-platform/internal/core/apperr"
	"plantya-platform/internal/core/database"
	"plantya-platform/internal/core/events"
	"plantya-platform/internal/core/logger"
	"plantya-platform/internal/domain"
	"plantya-platform/internal/query"
	"plantya-platform/internal/repo"
)

type Repo[T any] interface {
	List(ctx context.Context, spec *query.Spec, p query.Paging) (query.Page[T], error)
	FindOne(ctx context.Context, publicID string, part domain.Partition) (*T, error)
	Update(ctx context.Context, publicID string, fields map[string]any, at time.Time) (int64, error)
	SoftDelete(ctx context.Context, publicID string, at time.Time) (int64, error)
	Restore(ctx context.Context, publicID string, at time.Time) (int64, error)
}

// Codes 各资源的错误码
type Codes struct {
	NotFound         string
	DeletedNotFound  string
	AlreadyDeleted   string
	AlreadyActive    string
	PatchEmpty       string
	Duplicate        string
	PagingIncomplete string
	PagingInvalid    string
	OrderInvalid     string
}

// Cascade 在软删同一事务内执行，返回级联产生的事件
type Cascade func(ctx context.Context, at time.Time) ([]events.Event, error)

// Guard 恢复前的业务校验（同一事务内），row 为待恢复的已删除记录
type Guard[T any] func(ctx context.Context, row *T) error

type Manager[T any] struct {
	Resource string // user / device / cluster
	Repo     Repo[T]
	DB       *gorm.DB
	Query    query.Resource
	Codes    Codes
	Events   events.Publisher
	Log      *zap.Logger
	Now      func() time.Time
}

func (m *Manager[T]) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

// List 分页校验 → 规格构造 → count + 列表
func (m *Manager[T]) List(ctx context.Context, part domain.Partition, p query.Params, filter func(*query.Spec)) (query.Page[T], error) {
	paging, err := query.ValidatePaging(p.Page, p.Size)
	switch {
	case errors.Is(err, query.ErrPagingIncomplete):
		return query.Page[T]{}, apperr.BadRequest(m.Codes.PagingIncomplete, "page and size must be provided together")
	case errors.Is(err, query.ErrPagingInvalid):
		return query.Page[T]{}, apperr.BadRequest(m.Codes.PagingInvalid, "page and size must be greater than or equal to 1")
	}
	spec, err := m.Query.Build(part, p)
	if err != nil {
		return query.Page[T]{}, apperr.BadRequest(m.Codes.OrderInvalid, "order must be ASC or DESC")
	}
	if filter != nil {
		filter(spec)
	}
	page, err := m.Repo.List(ctx, spec, paging)
	if err != nil {
		return query.Page[T]{}, apperr.Internal(err)
	}
	return page, nil
}

// Get deleted 记录对 active 查询不可见，反之亦然
func (m *Manager[T]) Get(ctx context.Context, id string, part domain.Partition) (*T, error) {
	row, err := m.Repo.FindOne(ctx, id, part)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if row == nil {
		code := m.Codes.NotFound
		if part == domain.PartitionDeleted {
			code = m.Codes.DeletedNotFound
		}
		return nil, apperr.NotFound(code, fmt.Sprintf("%s %s not found", m.Resource, id))
	}
	return row, nil
}

// Patch 条件更新 active 行；0 行时再区分不存在 / 已删除
func (m *Manager[T]) Patch(ctx context.Context, id string, fields map[string]any) (*T, error) {
	if len(fields) == 0 {
		err := apperr.BadRequest(m.Codes.PatchEmpty, "at least one field must be provided")
		m.record(ctx, "patch", id, err)
		return nil, err
	}
	at := m.now()
	var out *T
	err := database.WithinTx(ctx, m.DB, func(ctx context.Context) error {
		n, err := m.Repo.Update(ctx, id, fields, at)
		if errors.Is(err, repo.ErrDuplicate) {
			return apperr.Conflict(m.Codes.Duplicate, fmt.Sprintf("%s already exists", m.Resource))
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return m.resolve(ctx, id, m.Codes.NotFound, m.Codes.AlreadyDeleted, "is already deleted")
		}
		out, err = m.Repo.FindOne(ctx, id, domain.PartitionActive)
		return err
	})
	if err = m.record(ctx, "patch", id, err); err != nil {
		return nil, err
	}
	m.publish(ctx, events.Event{Type: events.Updated, Resource: m.Resource, ID: id, At: at})
	return out, nil
}

// SoftDelete 条件软删；cascade 非空时与自身软删处于同一事务
func (m *Manager[T]) SoftDelete(ctx context.Context, id string, cascade Cascade) error {
	at := m.now()
	var cascaded []events.Event
	err := database.WithinTx(ctx, m.DB, func(ctx context.Context) error {
		n, err := m.Repo.SoftDelete(ctx, id, at)
		if err != nil {
			return err
		}
		if n == 0 {
			return m.resolve(ctx, id, m.Codes.NotFound, m.Codes.AlreadyDeleted, "is already deleted")
		}
		if cascade != nil {
			cascaded, err = cascade(ctx, at)
		}
		return err
	})
	if err = m.record(ctx, "delete", id, err); err != nil {
		return err
	}
	if len(cascaded) > 0 {
		m.Log.Info("cascade soft delete",
			zap.String("resource", m.Resource), zap.String("id", id), zap.Int("children", len(cascaded)))
	}
	m.publish(ctx, append([]events.Event{{Type: events.Deleted, Resource: m.Resource, ID: id, At: at}}, cascaded...)...)
	return nil
}

// Restore 条件恢复；guard 非空时先读出已删除记录做校验
func (m *Manager[T]) Restore(ctx context.Context, id string, guard Guard[T]) (*T, error) {
	at := m.now()
	var out *T
	err := database.WithinTx(ctx, m.DB, func(ctx context.Context) error {
		if guard != nil {
			row, err := m.Repo.FindOne(ctx, id, domain.PartitionDeleted)
			if err != nil {
				return err
			}
			if row == nil {
				return m.resolve(ctx, id, m.Codes.DeletedNotFound, m.Codes.AlreadyActive, "is already active")
			}
			if err := guard(ctx, row); err != nil {
				return err
			}
		}
		n, err := m.Repo.Restore(ctx, id, at)
		if err != nil {
			return err
		}
		if n == 0 {
			return m.resolve(ctx, id, m.Codes.DeletedNotFound, m.Codes.AlreadyActive, "is already active")
		}
		out, err = m.Repo.FindOne(ctx, id, domain.PartitionActive)
		return err
	})
	if err = m.record(ctx, "restore", id, err); err != nil {
		return nil, err
	}
	m.publish(ctx, events.Event{Type: events.Restored, Resource: m.Resource, ID: id, At: at})
	return out, nil
}

// Created 创建成功/失败后由各资源服务调用
func (m *Manager[T]) Created(ctx context.Context, id string, at time.Time, err error) error {
	if err = m.record(ctx, "create", id, err); err != nil {
		return err
	}
	m.publish(ctx, events.Event{Type: events.Created, Resource: m.Resource, ID: id, At: at})
	return nil
}

// resolve 条件更新未命中：整表查不到 → NotFound，否则 → Conflict
func (m *Manager[T]) resolve(ctx context.Context, id, notFound, conflict, state string) error {
	row, err := m.Repo.FindOne(ctx, id, domain.PartitionAny)
	if err != nil {
		return err
	}
	if row == nil {
		return apperr.NotFound(notFound, fmt.Sprintf("%s %s not found", m.Resource, id))
	}
	return apperr.Conflict(conflict, fmt.Sprintf("%s %s %s", m.Resource, id, state))
}

// record 统一打点与日志，并把未知错误包装成 Internal
func (m *Manager[T]) record(ctx context.Context, transition, id string, err error) error {
	l := logger.For(ctx, m.Log).With(
		zap.String("resource", m.Resource),
		zap.String("transition", transition),
		zap.String("id", id),
	)
	if err == nil {
		observe(m.Resource, transition, outcomeOK)
		l.Info("lifecycle transition")
		return nil
	}
	ae := apperr.From(err)
	if ae.Kind == apperr.KindInternal {
		observe(m.Resource, transition, outcomeError)
		l.Error("lifecycle transition failed", zap.Error(err))
		return ae
	}
	observe(m.Resource, transition, outcomeRejected)
	l.Warn("lifecycle transition rejected", zap.String("code", ae.Code))
	return ae
}

// publish 尽力而为，失败只记日志
func (m *Manager[T]) publish(ctx context.Context, evs ...events.Event) {
	if m.Events == nil || len(evs) == 0 {
		return
	}
	if err := m.Events.Publish(context.WithoutCancel(ctx), evs...); err != nil {
		logger.For(ctx, m.Log).Warn("publish lifecycle events failed",
			zap.String("resource", m.Resource), zap.Int("events", len(evs)), zap.Error(err))
	}
}
