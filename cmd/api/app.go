package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/libros/internal/application/book"
	"github.com/xiebiao/libros/internal/infrastructure/config"
	"github.com/xiebiao/libros/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/libros/pkg/circuitbreaker"
	"github.com/xiebiao/libros/pkg/mq"
	"github.com/xiebiao/libros/pkg/tracing"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Log    *zap.Logger
	Server *http.Server
}

func newApp(cfg *config.Config, log *zap.Logger, server *http.Server) *App {
	return &App{
		Config: cfg,
		Log:    log,
		Server: server,
	}
}

// provideServer HTTP服务器,超时取自配置
func provideServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// provideBookCache redis.enabled时使用带熔断的Redis缓存,否则使用空实现
func provideBookCache(cfg *config.Config, log *zap.Logger) (appbook.BookCache, func(), error) {
	if !cfg.Redis.Enabled {
		return appbook.NopBookCache{}, func() {}, nil
	}

	client, err := redis.NewClient(context.Background(), cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Warn("关闭Redis连接失败", zap.Error(err))
		}
	}

	breaker := circuitbreaker.New("redis", circuitbreaker.Settings{
		ReadyToTrip:  circuitbreaker.ConsecutiveFailures(cfg.Redis.BreakerFailures),
		Timeout:      cfg.Redis.BreakerTimeout,
		IsSuccessful: appbook.CacheCallSucceeded,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("缓存熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return appbook.NewGuardedBookCache(redis.NewBookCache(client, cfg.Redis.BookTTL), breaker), cleanup, nil
}

// provideEventPublisher mq.enabled时发布到RabbitMQ,否则丢弃事件
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (appbook.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return appbook.NopEventPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn("关闭MQ连接失败", zap.Error(err))
		}
	}
	return publisher, cleanup, nil
}

// provideTracing tracing.enabled时初始化OTLP导出
// 未启用时返回otel默认的no-op Provider
func provideTracing(cfg *config.Config, log *zap.Logger) (trace.TracerProvider, func(), error) {
	if !cfg.Tracing.Enabled {
		return otel.GetTracerProvider(), func() {}, nil
	}

	shutdown, err := tracing.InitTracer(context.Background(), cfg.Server.Name, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	if err != nil {
		return nil, nil, err
	}
	log.Info("链路追踪已启用",
		zap.String("endpoint", cfg.Tracing.Endpoint),
		zap.Float64("sample_ratio", cfg.Tracing.SampleRatio),
	)

	cleanup := func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("关闭TracerProvider失败", zap.Error(err))
		}
	}
	return otel.GetTracerProvider(), cleanup, nil
}
