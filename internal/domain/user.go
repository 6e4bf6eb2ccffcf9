package domain

import "time"

// User 平台账号；UserID 为对外业务编号（如 U00001），ID 仅内部使用
type User struct {
	ID           uint64     `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID       string     `gorm:"uniqueIndex;size:16;not null" json:"userId"`
	Email        string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string     `gorm:"size:64;not null" json:"name"`
	PasswordHash string     `gorm:"size:191;not null" json:"-"`
	Role         UserRole   `gorm:"size:16;not null;index" json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `gorm:"index" json:"deletedAt,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) Active() bool { return u.DeletedAt == nil }
