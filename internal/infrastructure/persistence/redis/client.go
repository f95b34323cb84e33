package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/libros/internal/infrastructure/config"
)

// startupRetries 启动探测的重试次数
// Redis只是可选缓存,不可达时尽快失败而不是按默认策略重试
const startupRetries = 1

const defaultPingTimeout = 5 * time.Second

// NewClient 创建Redis客户端并探测连接
// 探测失败时关闭客户端并返回错误,启动流程据此中止
func NewClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(options(cfg.Redis))

	timeout := cfg.Redis.DialTimeout + cfg.Redis.ReadTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败(%s): %w", cfg.Redis.Addr(), err)
	}

	log.Info("Redis连接成功",
		zap.String("addr", cfg.Redis.Addr()),
		zap.Int("db", cfg.Redis.DB),
		zap.Duration("book_ttl", cfg.Redis.BookTTL),
	)
	return client, nil
}

// options 配置 → 客户端参数
func options(rc config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         rc.Addr(),
		Password:     rc.Password,
		DB:           rc.DB,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
		DialTimeout:  rc.DialTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
		MaxRetries:   startupRetries,
	}
}
