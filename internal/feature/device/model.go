package device

import (
	"time"

	"plantya-platform/internal/domain"
	"plantya-platform/internal/query"
)

type ListQuery struct {
	query.Params
	Status string `form:"status"`
}

type CreateRequest struct {
	DeviceName string `json:"deviceName"`
	DeviceType string `json:"deviceType"`
	ClusterID  string `json:"clusterId"`
}

type PatchRequest struct {
	DeviceName *string `json:"deviceName"`
	DeviceType *string `json:"deviceType"`
	Status     *string `json:"status"`
}

type Response struct {
	DeviceID   string              `json:"deviceId"`
	DeviceName string              `json:"deviceName"`
	DeviceType string              `json:"deviceType"`
	ClusterID  string              `json:"clusterId"`
	Status     domain.DeviceStatus `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	DeletedAt  *time.Time          `json:"deletedAt,omitempty"`
}

func ToResponse(d domain.Device) Response {
	return Response{
		DeviceID:   d.DeviceID,
		DeviceName: d.DeviceName,
		DeviceType: d.DeviceType,
		ClusterID:  d.ClusterID,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		DeletedAt:  d.DeletedAt,
	}
}
