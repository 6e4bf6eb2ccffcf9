package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFieldIsCaseSensitive(t *testing.T) {
	p := SortPolicy{
		Fields:       map[string]string{"deviceName": "device_name", "createdAt": "created_at"},
		DefaultField: "created_at",
	}
	assert.Equal(t, "device_name", p.ResolveField("deviceName"))
	assert.Equal(t, "created_at", p.ResolveField("devicename"))
	assert.Equal(t, "created_at", p.ResolveField(""))
	assert.Equal(t, "created_at", p.ResolveField("device_name; DROP TABLE devices"))
}

func TestResolveOrderLenient(t *testing.T) {
	p := SortPolicy{DefaultOrder: Desc}
	for in, want := range map[string]Direction{
		"":        Desc,
		"asc":     Asc,
		"ASC":     Asc,
		"desc":    Desc,
		"upwards": Desc,
	} {
		got, err := p.ResolveOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestResolveOrderStrict(t *testing.T) {
	p := SortPolicy{DefaultOrder: Asc, StrictOrder: true}

	got, err := p.ResolveOrder("  ")
	require.NoError(t, err)
	assert.Equal(t, Asc, got)

	got, err = p.ResolveOrder("Desc")
	require.NoError(t, err)
	assert.Equal(t, Desc, got)

	_, err = p.ResolveOrder("random")
	assert.ErrorIs(t, err, ErrInvalidOrder)
}
