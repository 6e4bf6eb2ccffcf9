package domain

import "time"

type Cluster struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"-"`
	ClusterID   string     `gorm:"uniqueIndex;size:26;not null" json:"clusterId"`
	ClusterName string     `gorm:"uniqueIndex;size:128;not null" json:"clusterName"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `gorm:"index" json:"deletedAt,omitempty"`
}

func (Cluster) TableName() string { return "clusters" }

func (c *Cluster) Active() bool { return c.DeletedAt == nil }

// Models 自动迁移用
func Models() []any {
	return []any{&User{}, &Device{}, &Cluster{}, &IDSequence{}, &SensorDataLog{}}
}

// IDSequence 业务编号序列（如用户编号），按 Name 区分
type IDSequence struct {
	Name  string `gorm:"primaryKey;size:32"`
	Value int64  `gorm:"not null"`
}

func (IDSequence) TableName() string { return "id_sequences" }
