package history

import (
	"time"

	"plantya-platform/internal/domain"
)

// RangeQuery GET /history?deviceId=&from=&to=，日期格式 2006-01-02
type RangeQuery struct {
	DeviceID string `form:"deviceId"`
	From     string `form:"from"`
	To       string `form:"to"`
}

type LatestQuery struct {
	DeviceID string `form:"deviceId"`
}

// Reading 时间按配置时区输出
type Reading struct {
	Timestamp    time.Time `json:"timestamp"`
	DeviceID     string    `json:"deviceId"`
	ClusterID    string    `json:"clusterId"`
	Temperature  *float64  `json:"temperature"`
	Humidity     *float64  `json:"humidity"`
	SoilMoisture *float64  `json:"soilMoisture"`
}

func toReading(r domain.SensorDataLog, loc *time.Location) Reading {
	return Reading{
		Timestamp:    r.RecordedAt.In(loc),
		DeviceID:     r.DeviceID,
		ClusterID:    r.ClusterID,
		Temperature:  r.Temperature,
		Humidity:     r.Humidity,
		SoilMoisture: r.SoilMoisture,
	}
}
