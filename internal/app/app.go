// Package app 两个二进制共用的依赖装配：日志、数据库、缓存、事件、JWT。
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"plantya-platform/internal/core/auth"
	"plantya-platform/internal/core/cache"
	"plantya-platform/internal/core/config"
	"plantya-platform/internal/core/database"
	"plantya-platform/internal/core/events"
	"plantya-platform/internal/core/logger"
	"plantya-platform/internal/domain"
)

type App struct {
	Cfg    *config.Config
	Log    *zap.Logger
	DB     *gorm.DB
	JWT    *auth.JWTer
	Cache  *cache.Cache     // redis.addr 为空时为 nil
	Events events.Publisher // mqtt.broker 为空时为 Nop

	closers []func()
}

// NewLogger 按配置决定是否写文件切割
func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	r := cfg.Log.Rotate
	if r.Enable {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Filename:   r.Filename,
			MaxSizeMB:  r.MaxSizeMB,
			MaxBackups: r.MaxBackups,
			MaxAgeDays: r.MaxAgeDays,
			Compress:   r.Compress,
		})
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	a := &App{Cfg: cfg, Log: l}
	a.closers = append(a.closers, logger.RedirectStdLog(l, zapcore.InfoLevel))

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		SlowThreshold:      time.Duration(cfg.DB.SlowThresholdMs) * time.Millisecond,
		Logger:             l,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(domain.Models()...); err != nil {
			a.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}

	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.TTLSec)*time.Second, l.Named("cache"))
		if err := c.Ping(ctx); err != nil {
			// 缓存不可用时降级为直接读库
			l.Warn("redis unreachable, cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = c.Close()
		} else {
			a.Cache = c
			a.closers = append(a.closers, func() { _ = c.Close() })
		}
	}

	a.Events = events.Nop{}
	if cfg.MQTT.Broker != "" {
		m, err := events.NewMQTT(events.MQTTOptions{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			Username:    cfg.MQTT.Username,
			Password:    cfg.MQTT.Password,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			QoS:         cfg.MQTT.QoS,
		}, l.Named("events"))
		if err != nil {
			l.Warn("mqtt unavailable, lifecycle events disabled", zap.Error(err))
		} else {
			a.Events = m
			a.closers = append(a.closers, m.Close)
		}
	}

	a.JWT = auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	return a, nil
}

// Close 逆序释放
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
