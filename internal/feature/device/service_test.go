package device

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"plantya-platform/internal/core/apperr"
	"plantya-platform/internal/core/database/dbtest"
	"plantya-platform/internal/core/events"
	"plantya-platform/internal/domain"
	"plantya-platform/internal/ids"
	"plantya-platform/internal/query"
	"plantya-platform/internal/repo"
)

type fixture struct {
	db  *gorm.DB
	svc *Service
	rec *events.Recorder
}

func newFixture(t *testing.T) fixture {
	db := dbtest.Open(t)
	rec := &events.Recorder{}
	return fixture{db: db, svc: NewService(db, nil, rec, zap.NewNop()), rec: rec}
}

func (f fixture) cluster(t *testing.T, name string) *domain.Cluster {
	t.Helper()
	c := &domain.Cluster{ClusterID: ids.New(), ClusterName: name}
	require.NoError(t, repo.NewClusterRepo(f.db).Create(context.Background(), c))
	return c
}

func strp(s string) *string { return &s }

func requireCode(t *testing.T, err error, kind apperr.Kind, code string) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.From(err)
	assert.Equal(t, kind, ae.Kind, ae.Error())
	assert.Equal(t, code, ae.Code)
}

func TestCreateAndSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cluster(t, "Greenhouse-A")

	d, err := f.svc.Create(ctx, CreateRequest{DeviceName: "sensor-1", DeviceType: "humidity", ClusterID: c.ClusterID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOffline, d.Status)
	assert.Len(t, d.DeviceID, 26)
	assert.Equal(t, c.ClusterID, d.ClusterID)

	_, err = f.svc.Create(ctx, CreateRequest{DeviceName: "pump-1", DeviceType: "actuator", ClusterID: c.ClusterID})
	require.NoError(t, err)

	page, err := f.svc.List(ctx, ListQuery{Params: query.Params{Search: "sensor"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, d.DeviceID, page.Items[0].DeviceID)
	assert.EqualValues(t, 1, page.CountData)

	assert.Len(t, f.rec.Of(events.Created), 2)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cluster(t, "Greenhouse-A")

	_, err := f.svc.Create(ctx, CreateRequest{DeviceName: " ", DeviceType: "t", ClusterID: c.ClusterID})
	requireCode(t, err, apperr.KindBadRequest, CodeFieldRequired)

	_, err = f.svc.Create(ctx, CreateRequest{DeviceName: "n", DeviceType: "t", ClusterID: ids.New()})
	requireCode(t, err, apperr.KindNotFound, CodeClusterNotFound)

	_, err = f.svc.Create(ctx, CreateRequest{DeviceName: "n", DeviceType: "t", ClusterID: " "})
	requireCode(t, err, apperr.KindBadRequest, CodeFieldRequired)

	// 超长 id 不可能存在，返回 404 而不是 400
	long := strings.Repeat("C", 27)
	_, err = f.svc.Create(ctx, CreateRequest{DeviceName: "n", DeviceType: "t", ClusterID: long})
	requireCode(t, err, apperr.KindNotFound, CodeClusterNotFound)
}

func TestCreateRejectsDeletedCluster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cluster(t, "Greenhouse-A")
	_, err := repo.NewClusterRepo(f.db).SoftDelete(ctx, c.ClusterID, time.Now().UTC())
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, CreateRequest{DeviceName: "n", DeviceType: "t", ClusterID: c.ClusterID})
	requireCode(t, err, apperr.KindNotFound, CodeClusterNotFound)
}

func TestStatusFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cluster(t, "Greenhouse-A")

	a, err := f.svc.Create(ctx, CreateRequest{DeviceName: "a", DeviceType: "t", ClusterID: c.ClusterID})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, CreateRequest{DeviceName: "b", DeviceType: "t", ClusterID: c.ClusterID})
	require.NoError(t, err)
	_, err = f.svc.Patch(ctx, a.DeviceID, PatchRequest{Status: strp("online")})
	require.NoError(t, err)

	page, err := f.svc.List(ctx, ListQuery{Status: "ONLINE"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, a.DeviceID, page.Items[0].DeviceID)

	_, err = f.svc.List(ctx, ListQuery{Status: "BROKEN"})
	requireCode(t, err, apperr.KindBadRequest, CodeInvalidStatus)
}

func TestLenientOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.List(context.Background(), ListQuery{Params: query.Params{Sort: "deviceName", Order: "sideways"}})
	assert.NoError(t, err)
}

func TestPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cluster(t, "Greenhouse-A")
	d, err := f.svc.Create(ctx, CreateRequest{DeviceName: "sensor-1", DeviceType: "humidity", ClusterID: c.ClusterID})
	require.NoError(t, err)

	_, err = f.svc.Patch(ctx, d.DeviceID, PatchRequest{})
	requireCode(t, err, apperr.KindBadRequest, CodeUpdateEmpty)

	_, err = f.svc.Patch(ctx, d.DeviceID, PatchRequest{Status: strp("LOST")})
	requireCode(t, err, apperr.KindBadRequest, CodeInvalidStatus)

	got, err := f.svc.Patch(ctx, d.DeviceID, PatchRequest{DeviceName: strp("sensor-2")})
	require.NoError(t, err)
	assert.Equal(t, "sensor-2", got.DeviceName)
	assert.Equal(t, "humidity", got.DeviceType)

	_, err = f.svc.Patch(ctx, ids.New(), PatchRequest{DeviceName: strp("x")})
	requireCode(t, err, apperr.KindNotFound, CodeNotFound)
}

func TestDeleteRestoreCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cluster(t, "Greenhouse-A")
	d, err := f.svc.Create(ctx, CreateRequest{DeviceName: "sensor-1", DeviceType: "humidity", ClusterID: c.ClusterID})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, d.DeviceID))
	requireCode(t, f.svc.Delete(ctx, d.DeviceID), apperr.KindConflict, CodeAlreadyDeleted)

	_, err = f.svc.Get(ctx, d.DeviceID)
	requireCode(t, err, apperr.KindNotFound, CodeNotFound)
	deleted, err := f.svc.GetDeleted(ctx, d.DeviceID)
	require.NoError(t, err)
	assert.NotNil(t, deleted.DeletedAt)

	restored, err := f.svc.Restore(ctx, d.DeviceID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	_, err = f.svc.Restore(ctx, d.DeviceID)
	requireCode(t, err, apperr.KindConflict, CodeAlreadyActive)
	_, err = f.svc.Restore(ctx, ids.New())
	requireCode(t, err, apperr.KindNotFound, CodeDeletedNotFound)

	assert.Len(t, f.rec.Of(events.Deleted), 1)
	assert.Len(t, f.rec.Of(events.Restored), 1)
}

func TestRestoreRequiresActiveCluster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cluster(t, "Greenhouse-A")
	d, err := f.svc.Create(ctx, CreateRequest{DeviceName: "sensor-1", DeviceType: "humidity", ClusterID: c.ClusterID})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, d.DeviceID))

	_, err = repo.NewClusterRepo(f.db).SoftDelete(ctx, c.ClusterID, time.Now().UTC())
	require.NoError(t, err)

	_, err = f.svc.Restore(ctx, d.DeviceID)
	requireCode(t, err, apperr.KindConflict, CodeClusterInactive)

	// 仍处于 deleted
	_, err = f.svc.GetDeleted(ctx, d.DeviceID)
	assert.NoError(t, err)
}
