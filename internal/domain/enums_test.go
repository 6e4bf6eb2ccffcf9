package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserRole(t *testing.T) {
	r, err := ParseUserRole(" staff ")
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, r)

	p, ok := r.Prefix()
	assert.True(t, ok)
	assert.Equal(t, byte('S'), p)

	_, err = ParseUserRole("root")
	assert.ErrorIs(t, err, ErrInvalidRole)
	_, err = ParseUserRole("")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestParseDeviceStatus(t *testing.T) {
	s, err := ParseDeviceStatus("online")
	require.NoError(t, err)
	assert.Equal(t, StatusOnline, s)

	_, err = ParseDeviceStatus("BROKEN")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestActive(t *testing.T) {
	c := &Cluster{}
	assert.True(t, c.Active())
	now := c.CreatedAt
	c.DeletedAt = &now
	assert.False(t, c.Active())
}
