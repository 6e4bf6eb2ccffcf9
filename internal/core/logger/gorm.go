package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger 把 gorm 的日志转到 zap（SQL trace / 慢查询 / 错误）
type GormLogger struct {
	l             *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	// 记录不存在是正常分支（如按编号查不到），默认不打 error
	ignoreNotFound bool
}

func NewGormLogger(l *zap.Logger, level string, slow time.Duration) *GormLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &GormLogger{
		l:              l.WithOptions(zap.AddCallerSkip(3)).Named("gorm"),
		level:          ParseGormLevel(level),
		slowThreshold:  slow,
		ignoreNotFound: true,
	}
}

func ParseGormLevel(s string) gormlogger.LogLevel {
	switch s {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Info {
		For(ctx, g.l).Info(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Warn {
		For(ctx, g.l).Warn(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Error {
		For(ctx, g.l).Error(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}
	l := For(ctx, g.l)

	switch {
	case err != nil && g.level >= gormlogger.Error &&
		!(g.ignoreNotFound && errors.Is(err, gormlogger.ErrRecordNotFound)):
		l.Error("sql error", append(fields, zap.Error(err))...)
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		l.Warn("slow sql", append(fields, zap.Duration("threshold", g.slowThreshold))...)
	case g.level >= gormlogger.Info:
		l.Info("sql", fields...)
	}
}
