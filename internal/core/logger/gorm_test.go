package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObserved(level string, slow time.Duration) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, slow), logs
}

func sqlFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestTraceErrorCarriesRequestID(t *testing.T) {
	g, logs := newObserved("warn", 0)
	ctx := WithRequestID(context.Background(), "rid-1")

	g.Trace(ctx, time.Now(), sqlFn("UPDATE devices SET ...", 0), errors.New("boom"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "rid-1", entry.ContextMap()["request_id"])
	assert.Equal(t, "UPDATE devices SET ...", entry.ContextMap()["sql"])
}

func TestTraceIgnoresRecordNotFound(t *testing.T) {
	g, logs := newObserved("info", 0)
	g.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 0), gormlogger.ErrRecordNotFound)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.InfoLevel, logs.All()[0].Level)
}

func TestTraceSlowQuery(t *testing.T) {
	g, logs := newObserved("warn", time.Millisecond)
	g.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT pg_sleep(1)", 1), nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "slow sql", logs.All()[0].Message)
}

func TestTraceRespectsLevel(t *testing.T) {
	g, logs := newObserved("warn", 0)
	g.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 1), nil)
	assert.Equal(t, 0, logs.Len())

	silent := g.LogMode(gormlogger.Silent)
	silent.Error(context.Background(), "x %d", 1)
	assert.Equal(t, 0, logs.Len())
}

func TestForWithoutRequestID(t *testing.T) {
	l := zap.NewNop()
	assert.Same(t, l, For(context.Background(), l))
}
