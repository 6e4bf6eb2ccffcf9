package cluster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"plantya-platform/internal/core/apperr"
	"plantya-platform/internal/core/cache"
	"plantya-platform/internal/core/database"
	"plantya-platform/internal/core/events"
	"plantya-platform/internal/domain"
	"plantya-platform/internal/feature/device"
	"plantya-platform/internal/feature/lifecycle"
	"plantya-platform/internal/ids"
	"plantya-platform/internal/query"
	"plantya-platform/internal/repo"
)

const maxNameLen = 128

var listQuery = query.Resource{
	SearchColumns: []string{"cluster_id", "cluster_name"},
	Sort: query.SortPolicy{
		Fields: map[string]string{
			"clusterId":   "cluster_id",
			"clusterName": "cluster_name",
			"createdAt":   "created_at",
		},
		DefaultField: "created_at",
		DefaultOrder: query.Desc,
	},
}

type Service struct {
	db       *gorm.DB
	clusters *repo.ClusterRepo
	devices  *repo.DeviceRepo
	lc       *lifecycle.Manager[domain.Cluster]
	cache    *cache.Cache
	log      *zap.Logger
}

func NewService(db *gorm.DB, c *cache.Cache, pub events.Publisher, l *zap.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	l = l.Named("cluster")
	clusters := repo.NewClusterRepo(db)
	return &Service{
		db:       db,
		clusters: clusters,
		devices:  repo.NewDeviceRepo(db),
		lc: &lifecycle.Manager[domain.Cluster]{
			Resource: "cluster",
			Repo:     clusters,
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
	page, err := s.lc.List(ctx, part, q.Params, nil)
	if err != nil {
		return query.Page[Response]{}, err
	}
	return query.MapPage(page, ToResponse), nil
}

// Get 读穿缓存；写操作提交后失效
func (s *Service) Get(ctx context.Context, clusterID string) (Detail, error) {
	d, err := cache.GetOrLoadJSON(s.cache, ctx, cache.Key("cluster", clusterID), 0, func(ctx context.Context) (*Detail, error) {
		return s.load(ctx, clusterID)
	})
	if err != nil {
		return Detail{}, apperr.From(err)
	}
	return *d, nil
}

func (s *Service) load(ctx context.Context, clusterID string) (*Detail, error) {
	c, err := s.lc.Get(ctx, clusterID, domain.PartitionActive)
	if err != nil {
		return nil, err
	}
	rows, err := s.devices.ListActiveByCluster(ctx, clusterID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	devs := make([]device.Response, 0, len(rows))
	for _, d := range rows {
		devs = append(devs, device.ToResponse(d))
	}
	return &Detail{
		ClusterID:    c.ClusterID,
		ClusterName:  c.ClusterName,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		TotalDevices: len(devs),
		Devices:      devs,
	}, nil
}

func (s *Service) GetDeleted(ctx context.Context, clusterID string) (Response, error) {
	c, err := s.lc.Get(ctx, clusterID, domain.PartitionDeleted)
	if err != nil {
		return Response{}, err
	}
	return ToResponse(*c), nil
}

// Create 名称在 active + deleted 两个分区内唯一
func (s *Service) Create(ctx context.Context, in CreateRequest) (Response, error) {
	name, err := checkName(in.ClusterName)
	if err != nil {
		return Response{}, err
	}
	c := &domain.Cluster{ClusterID: ids.New(), ClusterName: name}
	err = database.WithinTx(ctx, s.db, func(ctx context.Context) error {
		exist, err := s.clusters.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if exist != nil {
			return s.nameTaken(name)
		}
		err = s.clusters.Create(ctx, c)
		if errors.Is(err, repo.ErrDuplicate) {
			return s.nameTaken(name)
		}
		return err
	})
	if err = s.lc.Created(ctx, c.ClusterID, c.CreatedAt, err); err != nil {
		return Response{}, err
	}
	return ToResponse(*c), nil
}

func (s *Service) Patch(ctx context.Context, clusterID string, in PatchRequest) (Response, error) {
	if in.ClusterName == nil {
		return Response{}, apperr.BadRequest(CodeUpdateEmpty, "clusterName must be provided")
	}
	name, err := checkName(*in.ClusterName)
	if err != nil {
		return Response{}, err
	}
	// 名称唯一由唯一索引兜底（含 deleted 分区）
	out, err := s.lc.Patch(ctx, clusterID, map[string]any{"cluster_name": name})
	if err != nil {
		return Response{}, err
	}
	s.cache.Invalidate(ctx, cache.Key("cluster", clusterID))
	return ToResponse(*out), nil
}

// Delete 集群与其下 active 设备在同一事务内软删
func (s *Service) Delete(ctx context.Context, clusterID string) error {
	err := s.lc.SoftDelete(ctx, clusterID, func(ctx context.Context, at time.Time) ([]events.Event, error) {
		deviceIDs, err := s.devices.SoftDeleteByCluster(ctx, clusterID, at)
		if err != nil {
			return nil, err
		}
		evs := make([]events.Event, 0, len(deviceIDs))
		for _, id := range deviceIDs {
			evs = append(evs, events.Event{
				Type:     events.Deleted,
				Resource: "device",
				ID:       id,
				At:       at,
				Cause:    "cluster/" + clusterID,
			})
		}
		return evs, nil
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.Key("cluster", clusterID))
	return nil
}

// Restore 只恢复集群本身，设备保持 deleted
func (s *Service) Restore(ctx context.Context, clusterID string) (Response, error) {
	c, err := s.lc.Restore(ctx, clusterID, nil)
	if err != nil {
		return Response{}, err
	}
	s.cache.Invalidate(ctx, cache.Key("cluster", clusterID))
	return ToResponse(*c), nil
}

func (s *Service) nameTaken(name string) error {
	return apperr.Conflict(CodeAlreadyExists, fmt.Sprintf("cluster name %q already exists", name))
}

func checkName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperr.BadRequest(CodeFieldRequired, "clusterName is required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", apperr.BadRequest(CodeInvalidPayload, fmt.Sprintf("clusterName must be at most %d characters", maxNameLen))
	}
	return name, nil
}
