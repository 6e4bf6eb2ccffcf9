package cluster

import (
	"time"

	"plantya-platform/internal/domain"
	"plantya-platform/internal/feature/device"
	"plantya-platform/internal/query"
)

type ListQuery struct {
	query.Params
}

type CreateRequest struct {
	ClusterName string `json:"clusterName"`
}

type PatchRequest struct {
	ClusterName *string `json:"clusterName"`
}

type Response struct {
	ClusterID   string     `json:"clusterId"`
	ClusterName string     `json:"clusterName"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// Detail GET /clusters/{id}，含 active 设备
type Detail struct {
	ClusterID    string            `json:"clusterId"`
	ClusterName  string            `json:"clusterName"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	TotalDevices int               `json:"totalDevices"`
	Devices      []device.Response `json:"devices"`
}

func ToResponse(c domain.Cluster) Response {
	return Response{
		ClusterID:   c.ClusterID,
		ClusterName: c.ClusterName,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DeletedAt:   c.DeletedAt,
	}
}
