// Package dbtest 提供测试用的内存 SQLite 数据库与 sqlmock 数据库。
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"plantya-platform/internal/core/logger"
	"plantya-platform/internal/domain"
)

var seq atomic.Int64

// Open 每个测试独立的共享缓存内存库，已完成迁移
func Open(t testing.TB, models ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:plantya_test_%d?mode=memory&cache=shared", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.NewGormLogger(zap.NewNop(), "silent", 0),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库多连接写会 "table is locked"，串行化即可
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) == 0 {
		models = domain.Models()
	}
	require.NoError(t, db.AutoMigrate(models...))
	return db
}

// Mock gorm(postgres 方言) + sqlmock，用于断言渲染出的 SQL 与模拟存储故障
func Mock(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger:                 logger.NewGormLogger(zap.NewNop(), "silent", 0),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}
