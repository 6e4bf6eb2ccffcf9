package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"plantya-platform/internal/core/database"
	"plantya-platform/internal/domain"
)

// HistoryRepo 传感器读数；按 (device_id, recorded_at) 索引查询
type HistoryRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) *HistoryRepo { return &HistoryRepo{db: db} }

func (r *HistoryRepo) conn(ctx context.Context) *gorm.DB { return database.Conn(ctx, r.db) }

func (r *HistoryRepo) Append(ctx context.Context, rows ...*domain.SensorDataLog) error {
	if len(rows) == 0 {
		return nil
	}
	// sqlite 以文本比较时间，统一存 UTC
	for _, row := range rows {
		row.RecordedAt = row.RecordedAt.UTC()
	}
	return r.conn(ctx).Create(rows).Error
}

// Range 闭区间 [from, to]，按时间升序
func (r *HistoryRepo) Range(ctx context.Context, deviceID string, from, to time.Time) ([]domain.SensorDataLog, error) {
	var out []domain.SensorDataLog
	err := r.conn(ctx).
		Where("device_id = ? AND recorded_at BETWEEN ? AND ?", deviceID, from.UTC(), to.UTC()).
		Order("recorded_at ASC").Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *HistoryRepo) Latest(ctx context.Context, deviceID string) (*domain.SensorDataLog, error) {
	var row domain.SensorDataLog
	res := r.conn(ctx).Where("device_id = ?", deviceID).
		Order("recorded_at DESC").Order("id DESC").
		Limit(1).Find(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}
