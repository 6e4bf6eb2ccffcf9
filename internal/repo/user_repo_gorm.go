package repo

import (
	"context"

	"gorm.io/gorm"

	"plantya-platform/internal/domain"
)

type UserRepo struct {
	Store[domain.User]
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{Store: newStore[domain.User](db, "user_id")}
}

// FindByEmail email 唯一性跨 active/deleted 两个分区
func (r *UserRepo) FindByEmail(ctx context.Context, email string, part domain.Partition) (*domain.User, error) {
	var u domain.User
	res := r.conn(ctx).Scopes(inPartition(part)).Where("email = ?", email).Limit(1).Find(&u)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &u, nil
}

// CountByRole 首次启动判断是否需要创建管理员
func (r *UserRepo) CountByRole(ctx context.Context, role domain.UserRole) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&domain.User{}).
		Where("role = ? AND deleted_at IS NULL", role).
		Count(&n).Error
	return n, err
}
