package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plantya-platform/internal/domain"
)

type DeviceRepo struct {
	Store[domain.Device]
}

func NewDeviceRepo(db *gorm.DB) *DeviceRepo {
	return &DeviceRepo{Store: newStore[domain.Device](db, "device_id")}
}

// ListActiveByCluster 集群详情用，按创建时间升序
func (r *DeviceRepo) ListActiveByCluster(ctx context.Context, clusterID string) ([]domain.Device, error) {
	var out []domain.Device
	err := r.conn(ctx).
		Where("cluster_id = ? AND deleted_at IS NULL", clusterID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// SoftDeleteByCluster 级联软删集群下所有 active 设备，返回被删除的设备编号。
// 需在事务内调用：先锁行再更新，保证返回值与实际更新一致。
func (r *DeviceRepo) SoftDeleteByCluster(ctx context.Context, clusterID string, at time.Time) ([]string, error) {
	db := r.conn(ctx)
	var ids []string
	err := db.Model(&domain.Device{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cluster_id = ? AND deleted_at IS NULL", clusterID).
		Order("id ASC").
		Pluck("device_id", &ids).Error
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	err = db.Model(&domain.Device{}).
		Where("device_id IN ? AND deleted_at IS NULL", ids).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
