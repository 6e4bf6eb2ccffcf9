package repo

import (
	"context"

	"gorm.io/gorm"

	"plantya-platform/internal/domain"
)

type ClusterRepo struct {
	Store[domain.Cluster]
}

func NewClusterRepo(db *gorm.DB) *ClusterRepo {
	return &ClusterRepo{Store: newStore[domain.Cluster](db, "cluster_id")}
}

// FindByName 名称唯一性跨两个分区
func (r *ClusterRepo) FindByName(ctx context.Context, name string) (*domain.Cluster, error) {
	var c domain.Cluster
	res := r.conn(ctx).Where("cluster_name = ?", name).Limit(1).Find(&c)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &c, nil
}
