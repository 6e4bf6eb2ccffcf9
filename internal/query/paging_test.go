package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int) *int { return &v }

func TestValidatePaging(t *testing.T) {
	p, err := ValidatePaging(nil, nil)
	require.NoError(t, err)
	assert.False(t, p.Enabled)

	_, err = ValidatePaging(ptr(1), nil)
	assert.ErrorIs(t, err, ErrPagingIncomplete)
	_, err = ValidatePaging(nil, ptr(10))
	assert.ErrorIs(t, err, ErrPagingIncomplete)

	_, err = ValidatePaging(ptr(0), ptr(10))
	assert.ErrorIs(t, err, ErrPagingInvalid)
	_, err = ValidatePaging(ptr(1), ptr(-2))
	assert.ErrorIs(t, err, ErrPagingInvalid)

	// (page-1)*size 超出 int 范围
	_, err = ValidatePaging(ptr(4611686018427387905), ptr(4))
	assert.ErrorIs(t, err, ErrPagingInvalid)
	_, err = ValidatePaging(ptr(2), ptr(math.MaxInt))
	require.NoError(t, err)
	_, err = ValidatePaging(ptr(3), ptr(math.MaxInt))
	assert.ErrorIs(t, err, ErrPagingInvalid)
	p, err = ValidatePaging(ptr(math.MaxInt), ptr(1))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt-1, p.Offset())

	p, err = ValidatePaging(ptr(3), ptr(20))
	require.NoError(t, err)
	assert.True(t, p.Enabled)
	assert.Equal(t, 40, p.Offset())
}

func TestTotalPages(t *testing.T) {
	for size := 1; size <= 12; size++ {
		for count := int64(0); count <= 50; count++ {
			want := int(count) / size
			if int(count)%size != 0 {
				want++
			}
			assert.Equal(t, want, TotalPages(count, size), "count=%d size=%d", count, size)
		}
	}
	assert.Equal(t, 3, TotalPages(7, 3))
	assert.Equal(t, 1, TotalPages(5, math.MaxInt))
}

func TestNewPage(t *testing.T) {
	paged := NewPage([]string{"d", "e", "f"}, 7, Paging{Enabled: true, Page: 2, Size: 3})
	assert.Equal(t, Page[string]{CountData: 7, Page: 2, Size: 3, TotalPages: 3, Items: []string{"d", "e", "f"}}, paged)

	all := NewPage([]string{"a", "b"}, 2, Paging{})
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, 2, all.Size)
	assert.Equal(t, 1, all.TotalPages)
	assert.EqualValues(t, 2, all.CountData)

	empty := NewPage[string](nil, 0, Paging{})
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.Size)
}

func TestMapPage(t *testing.T) {
	in := NewPage([]int{1, 2}, 9, Paging{Enabled: true, Page: 1, Size: 2})
	out := MapPage(in, func(v int) string { return string(rune('a' + v)) })
	assert.Equal(t, []string{"b", "c"}, out.Items)
	assert.EqualValues(t, 9, out.CountData)
	assert.Equal(t, 5, out.TotalPages)
}
