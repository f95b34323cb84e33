package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xiebiao/libros/internal/domain/book"
	apperrors "github.com/xiebiao/libros/pkg/errors"
	"github.com/xiebiao/libros/pkg/metrics"
	"github.com/xiebiao/libros/pkg/tracing"
)

const tracerName = "libros/application/book"

// 操作名,用作metrics标签和Span名
const (
	opList   = "list"
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
	opSearch = "search"
)

// startOperation 开始一次用例调用:创建Span并记录开始时间
// 返回的finish在用例返回前调用,记录结果指标并结束Span
func startOperation(ctx context.Context, op, spanName string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, spanName)

	return ctx, func(err error) {
		metrics.ObserveBookOperation(op, resultOf(err), start)
		if err != nil && !apperrors.IsNotFound(err) && !book.IsValidationError(err) {
			tracing.RecordError(span, err)
		}
		span.End()
	}
}

// resultOf 错误 → 指标result标签
func resultOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.IsNotFound(err):
		return "not_found"
	case book.IsValidationError(err):
		return "invalid"
	default:
		return "error"
	}
}

// publishEvent 发布事件,失败只记录日志,不影响请求结果
func publishEvent(ctx context.Context, publisher EventPublisher, log *zap.Logger, routingKey string, event BookEvent) {
	err := publisher.Publish(ctx, routingKey, event)
	metrics.IncMessagePublished(routingKey, err)
	if err != nil {
		tracing.RecordError(trace.SpanFromContext(ctx), err)
		log.Warn("发布图书事件失败",
			zap.String("routing_key", routingKey),
			zap.Uint("book_id", event.ID),
			zap.Error(err),
		)
	}
}

// evictCache 删除缓存,失败只记录日志(缓存最终由TTL过期)
func evictCache(ctx context.Context, cache BookCache, log *zap.Logger, id uint) {
	if err := cache.Delete(ctx, id); err != nil {
		log.Warn("删除图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
}
