package domain

import "time"

type Device struct {
	ID         uint64       `gorm:"primaryKey;autoIncrement" json:"-"`
	DeviceID   string       `gorm:"uniqueIndex;size:26;not null" json:"deviceId"`
	DeviceName string       `gorm:"size:128;not null" json:"deviceName"`
	DeviceType string       `gorm:"size:64;not null" json:"deviceType"`
	ClusterID  string       `gorm:"size:26;not null;index" json:"clusterId"`
	Status     DeviceStatus `gorm:"size:16;not null;index" json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	DeletedAt  *time.Time   `gorm:"index" json:"deletedAt,omitempty"`
}

func (Device) TableName() string { return "devices" }

func (d *Device) Active() bool { return d.DeletedAt == nil }
