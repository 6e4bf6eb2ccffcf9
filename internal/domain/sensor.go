package domain

import "time"

// SensorDataLog 设备上报的一条传感器读数；只追加，不参与生命周期
type SensorDataLog struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	DeviceID     string    `gorm:"index:idx_sensor_device_time,priority:1;size:64;not null" json:"deviceId"`
	ClusterID    string    `gorm:"size:64;not null" json:"clusterId"`
	RecordedAt   time.Time `gorm:"index:idx_sensor_device_time,priority:2;not null" json:"recordedAt"`
	Temperature  *float64  `json:"temperature"`
	Humidity     *float64  `json:"humidity"`
	SoilMoisture *float64  `json:"soilMoisture"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (SensorDataLog) TableName() string { return "sensor_data_logs" }
