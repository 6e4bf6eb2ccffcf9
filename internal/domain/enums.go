package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidStatus = errors.New("invalid status")
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleStaff UserRole = "STAFF"
	RoleAdmin UserRole = "ADMIN"
)

// 角色 → 编号前缀（封闭表）
var rolePrefix = map[UserRole]byte{
	RoleUser:  'U',
	RoleStaff: 'S',
	RoleAdmin: 'A',
}

// ParseUserRole 大小写不敏感
func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := rolePrefix[r]; !ok {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r UserRole) Valid() bool {
	_, ok := rolePrefix[r]
	return ok
}

func (r UserRole) Prefix() (byte, bool) {
	p, ok := rolePrefix[r]
	return p, ok
}

type DeviceStatus string

const (
	StatusOnline  DeviceStatus = "ONLINE"
	StatusOffline DeviceStatus = "OFFLINE"
)

func ParseDeviceStatus(s string) (DeviceStatus, error) {
	switch st := DeviceStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusOnline, StatusOffline:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Partition 生命周期分区：active / deleted / 全部
type Partition int

const (
	PartitionActive Partition = iota
	PartitionDeleted
	PartitionAny
)

func (p Partition) String() string {
	switch p {
	case PartitionActive:
		return "active"
	case PartitionDeleted:
		return "deleted"
	default:
		return "any"
	}
}
