package device

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"plantya-platform/internal/core/apperr"
	"plantya-platform/internal/core/cache"
	"plantya-platform/internal/core/database"
	"plantya-platform/internal/core/events"
	"plantya-platform/internal/domain"
	"plantya-platform/internal/feature/lifecycle"
	"plantya-platform/internal/ids"
	"plantya-platform/internal/query"
	"plantya-platform/internal/repo"
)

const (
	maxNameLen = 128
	maxTypeLen = 64
)

var listQuery = query.Resource{
	SearchColumns: []string{"device_id", "device_name", "device_type", "cluster_id"},
	Sort: query.SortPolicy{
		Fields: map[string]string{
			"deviceId":   "device_id",
			"deviceName": "device_name",
			"deviceType": "device_type",
			"clusterId":  "cluster_id",
			"createdAt":  "created_at",
		},
		DefaultField: "created_at",
		DefaultOrder: query.Desc,
	},
}

type Service struct {
	db       *gorm.DB
	devices  *repo.DeviceRepo
	clusters *repo.ClusterRepo
	lc       *lifecycle.Manager[domain.Device]
	cache    *cache.Cache
	log      *zap.Logger
}

// NewService c 可为 nil（未启用缓存）
func NewService(db *gorm.DB, c *cache.Cache, pub events.Publisher, l *zap.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	l = l.Named("device")
	devices := repo.NewDeviceRepo(db)
	return &Service{
		db:       db,
		devices:  devices,
		clusters: repo.NewClusterRepo(db),
		lc: &lifecycle.Manager[domain.Device]{
			Resource: "device",
			Repo:     devices,
			DB:       db,
			Query:    listQuery,
			Codes: lifecycle.Codes{
				NotFound:         CodeNotFound,
				DeletedNotFound:  CodeDeletedNotFound,
				AlreadyDeleted:   CodeAlreadyDeleted,
				AlreadyActive:    CodeAlreadyActive,
				PatchEmpty:       CodeUpdateEmpty,
				Duplicate:        CodeAlreadyExists,
				PagingIncomplete: CodePagingIncomplete,
				PagingInvalid:    CodePagingInvalid,
				OrderInvalid:     CodeOrderInvalid,
			},
			Events: pub,
			Log:    l,
		},
		cache: c,
		log:   l,
	}
}

func (s *Service) List(ctx context.Context, q ListQuery) (query.Page[Response], error) {
	return s.list(ctx, domain.PartitionActive, q)
}

func (s *Service) ListDeleted(ctx context.Context, q ListQuery) (query.Page[Response], error) {
	return s.list(ctx, domain.PartitionDeleted, q)
}

func (s *Service) list(ctx context.Context, part domain.Partition, q ListQuery) (query.Page[Response], error) {
	var filter func(*query.Spec)
	if strings.TrimSpace(q.Status) != "" {
		st, err := domain.ParseDeviceStatus(q.Status)
		if err != nil {
			return query.Page[Response]{}, apperr.BadRequest(CodeInvalidStatus, "status must be ONLINE or OFFLINE")
		}
		filter = func(spec *query.Spec) { spec.Eq("status", st) }
	}
	page, err := s.lc.List(ctx, part, q.Params, filter)
	if err != nil {
		return query.Page[Response]{}, err
	}
	return query.MapPage(page, ToResponse), nil
}

func (s *Service) Get(ctx context.Context, deviceID string) (Response, error) {
	d, err := s.lc.Get(ctx, deviceID, domain.PartitionActive)
	if err != nil {
		return Response{}, err
	}
	return ToResponse(*d), nil
}

func (s *Service) GetDeleted(ctx context.Context, deviceID string) (Response, error) {
	d, err := s.lc.Get(ctx, deviceID, domain.PartitionDeleted)
	if err != nil {
		return Response{}, err
	}
	return ToResponse(*d), nil
}

// Create 新设备默认 OFFLINE；插入期间对所属集群加共享锁，避免与集群级联删除交错
func (s *Service) Create(ctx context.Context, in CreateRequest) (Response, error) {
	name, err := required("deviceName", in.DeviceName, maxNameLen)
	if err != nil {
		return Response{}, err
	}
	typ, err := required("deviceType", in.DeviceType, maxTypeLen)
	if err != nil {
		return Response{}, err
	}
	// clusterId 只校验非空，格式或长度不符的 id 一律按不存在处理
	clusterID := strings.TrimSpace(in.ClusterID)
	if clusterID == "" {
		return Response{}, apperr.BadRequest(CodeFieldRequired, "clusterId is required")
	}

	d := &domain.Device{
		DeviceID:   ids.New(),
		DeviceName: name,
		DeviceType: typ,
		ClusterID:  clusterID,
		Status:     domain.StatusOffline,
	}
	err = database.WithinTx(ctx, s.db, func(ctx context.Context) error {
		c, err := s.clusters.FindOneForShare(ctx, clusterID, domain.PartitionActive)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.NotFound(CodeClusterNotFound, fmt.Sprintf("cluster %s not found", clusterID))
		}
		return s.devices.Create(ctx, d)
	})
	if err = s.lc.Created(ctx, d.DeviceID, d.CreatedAt, err); err != nil {
		return Response{}, err
	}
	s.cache.Invalidate(ctx, cache.Key("cluster", clusterID))
	return ToResponse(*d), nil
}

func (s *Service) Patch(ctx context.Context, deviceID string, in PatchRequest) (Response, error) {
	if in.DeviceName == nil && in.DeviceType == nil && in.Status == nil {
		return Response{}, apperr.BadRequest(CodeUpdateEmpty, "at least one of deviceName, deviceType, status must be provided")
	}
	fields := map[string]any{}
	if in.DeviceName != nil {
		name, err := required("deviceName", *in.DeviceName, maxNameLen)
		if err != nil {
			return Response{}, err
		}
		fields["device_name"] = name
	}
	if in.DeviceType != nil {
		typ, err := required("deviceType", *in.DeviceType, maxTypeLen)
		if err != nil {
			return Response{}, err
		}
		fields["device_type"] = typ
	}
	if in.Status != nil {
		st, err := domain.ParseDeviceStatus(*in.Status)
		if err != nil {
			return Response{}, apperr.BadRequest(CodeInvalidStatus, "status must be ONLINE or OFFLINE")
		}
		fields["status"] = st
	}
	d, err := s.lc.Patch(ctx, deviceID, fields)
	if err != nil {
		return Response{}, err
	}
	s.cache.Invalidate(ctx, cache.Key("cluster", d.ClusterID))
	return ToResponse(*d), nil
}

func (s *Service) Delete(ctx context.Context, deviceID string) error {
	if err := s.lc.SoftDelete(ctx, deviceID, nil); err != nil {
		return err
	}
	s.invalidateCluster(ctx, deviceID)
	return nil
}

// Restore 所属集群必须处于 active
func (s *Service) Restore(ctx context.Context, deviceID string) (Response, error) {
	d, err := s.lc.Restore(ctx, deviceID, func(ctx context.Context, row *domain.Device) error {
		c, err := s.clusters.FindOneForShare(ctx, row.ClusterID, domain.PartitionActive)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.Conflict(CodeClusterInactive,
				fmt.Sprintf("cluster %s of device %s is not active", row.ClusterID, deviceID))
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	s.cache.Invalidate(ctx, cache.Key("cluster", d.ClusterID))
	return ToResponse(*d), nil
}

func (s *Service) invalidateCluster(ctx context.Context, deviceID string) {
	if s.cache == nil {
		return
	}
	d, err := s.devices.FindOne(ctx, deviceID, domain.PartitionAny)
	if err != nil || d == nil {
		s.log.Warn("resolve cluster for cache invalidation failed", zap.String("deviceId", deviceID), zap.Error(err))
		return
	}
	s.cache.Invalidate(ctx, cache.Key("cluster", d.ClusterID))
}

func required(field, raw string, maxLen int) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", apperr.BadRequest(CodeFieldRequired, field+" is required")
	}
	if utf8.RuneCountInString(v) > maxLen {
		return "", apperr.BadRequest(CodeInvalidPayload, fmt.Sprintf("%s must be at most %d characters", field, maxLen))
	}
	return v, nil
}
