package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plantya-platform/internal/core/database"
	"plantya-platform/internal/domain"
)

const SeqUser = "user"

type SequenceRepo struct{ db *gorm.DB }

func NewSequenceRepo(db *gorm.DB) *SequenceRepo { return &SequenceRepo{db: db} }

// Next 行锁递增，首个值为 1；序号不回收
func (r *SequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	var next int64
	err := database.WithinTx(ctx, r.db, func(ctx context.Context) error {
		tx := database.Conn(ctx, r.db)
		// 首次使用时建行；并发建行由唯一主键兜底
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&domain.IDSequence{Name: name, Value: 0}).Error; err != nil {
			return err
		}
		var row domain.IDSequence
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).Take(&row).Error; err != nil {
			return err
		}
		next = row.Value + 1
		return tx.Model(&domain.IDSequence{}).
			Where("name = ?", name).
			Update("value", next).Error
	})
	return next, err
}
