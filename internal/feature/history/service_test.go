package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plantya-platform/internal/core/apperr"
	"plantya-platform/internal/core/database/dbtest"
	"plantya-platform/internal/domain"
	"plantya-platform/internal/repo"
)

// UTC+7，无夏令时
var jakarta = time.FixedZone("WIB", 7*3600)

func setup(t *testing.T) (*Service, *repo.HistoryRepo) {
	db := dbtest.Open(t)
	return NewService(db, jakarta, zap.NewNop()), repo.NewHistoryRepo(db)
}

func f64(v float64) *float64 { return &v }

func requireCode(t *testing.T, err error, kind apperr.Kind, code string) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.From(err)
	assert.Equal(t, kind, ae.Kind, ae.Error())
	assert.Equal(t, code, ae.Code)
}

func TestRangeUsesLocalDayBounds(t *testing.T) {
	s, logs := setup(t)
	ctx := context.Background()
	at := func(day, hour int) time.Time { return time.Date(2025, 3, day, hour, 0, 0, 0, jakarta) }

	require.NoError(t, logs.Append(ctx,
		// 3 月 1 日 23:00 本地，UTC 仍是 3 月 1 日
		&domain.SensorDataLog{DeviceID: "D1", ClusterID: "C1", RecordedAt: at(1, 23), Temperature: f64(20)},
		// 3 月 2 日 00:00 本地 = 3 月 1 日 17:00 UTC
		&domain.SensorDataLog{DeviceID: "D1", ClusterID: "C1", RecordedAt: at(2, 0), Temperature: f64(21)},
		&domain.SensorDataLog{DeviceID: "D1", ClusterID: "C1", RecordedAt: at(2, 6), Temperature: f64(22)},
		&domain.SensorDataLog{DeviceID: "D1", ClusterID: "C1", RecordedAt: at(3, 0), Temperature: f64(23)},
		&domain.SensorDataLog{DeviceID: "D2", ClusterID: "C1", RecordedAt: at(2, 1)},
	))

	got, err := s.Range(ctx, RangeQuery{DeviceID: "D1", From: "2025-03-02", To: "2025-03-02"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 21.0, *got[0].Temperature)
	assert.Equal(t, 22.0, *got[1].Temperature)
	assert.Equal(t, "C1", got[0].ClusterID)
	assert.Equal(t, jakarta, got[0].Timestamp.Location())
	assert.Equal(t, 0, got[0].Timestamp.Hour())

	got, err = s.Range(ctx, RangeQuery{DeviceID: " D1 ", From: "2025-03-01", To: "2025-03-03"})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	_, err = s.Range(ctx, RangeQuery{DeviceID: "D1", From: "2025-04-01", To: "2025-04-02"})
	requireCode(t, err, apperr.KindNotFound, CodeNotFound)
}

func TestRangeValidation(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()

	_, err := s.Range(ctx, RangeQuery{From: "2025-03-01", To: "2025-03-02"})
	requireCode(t, err, apperr.KindBadRequest, CodeFieldRequired)
	_, err = s.Range(ctx, RangeQuery{DeviceID: "D1", From: "2025-03-01"})
	requireCode(t, err, apperr.KindBadRequest, CodeFieldRequired)
	_, err = s.Range(ctx, RangeQuery{DeviceID: "D1", From: "01-03-2025", To: "2025-03-02"})
	requireCode(t, err, apperr.KindBadRequest, CodeInvalidDate)
	_, err = s.Range(ctx, RangeQuery{DeviceID: "D1", From: "2025-03-02", To: "2025-03-01"})
	requireCode(t, err, apperr.KindBadRequest, CodeRangeInvalid)

	// 30 天含两端可以，31 天不行
	_, err = s.Range(ctx, RangeQuery{DeviceID: "D1", From: "2025-03-01", To: "2025-03-30"})
	requireCode(t, err, apperr.KindNotFound, CodeNotFound)
	_, err = s.Range(ctx, RangeQuery{DeviceID: "D1", From: "2025-03-01", To: "2025-03-31"})
	requireCode(t, err, apperr.KindBadRequest, CodeRangeTooLong)
}

func TestLatest(t *testing.T) {
	s, logs := setup(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	_, err := s.Latest(ctx, " ")
	requireCode(t, err, apperr.KindBadRequest, CodeFieldRequired)
	_, err = s.Latest(ctx, "D1")
	requireCode(t, err, apperr.KindNotFound, CodeNotFound)

	require.NoError(t, logs.Append(ctx,
		&domain.SensorDataLog{DeviceID: "D1", ClusterID: "C1", RecordedAt: base.Add(time.Hour), SoilMoisture: f64(40)},
		&domain.SensorDataLog{DeviceID: "D1", ClusterID: "C1", RecordedAt: base, SoilMoisture: f64(35)},
	))
	got, err := s.Latest(ctx, "D1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, *got.SoilMoisture)
	assert.True(t, got.Timestamp.Equal(base.Add(time.Hour)))
	assert.Equal(t, 16, got.Timestamp.Hour())
}
