// Package tracing 基于OpenTelemetry的分布式追踪
//
// HTTP中间件为每个请求创建根Span,应用层用例在其下创建子Span,
// 数据库/缓存/消息错误通过RecordError记录到当前Span。
// Span经OTLP gRPC批量导出到Collector(如Jaeger的4317端口)。
// 未启用时使用otel默认的no-op Provider,StartSpan开销可以忽略。
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局TracerProvider
//
// 参数：
//
//	serviceName: 服务名(Jaeger UI中显示)
//	endpoint: OTLP gRPC地址,如localhost:4317
//	sampleRatio: 采样率,1表示全部采样
//
// 返回的shutdown必须在程序退出前调用,否则可能丢失最后一批Span
func InitTracer(ctx context.Context, serviceName, endpoint string, sampleRatio float64) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// 1. 创建OTLP gRPC Exporter(非阻塞,Collector不可达时不会报错)
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Provider并设置为全局
	tp, err := NewProvider(ctx, serviceName, sampleRatio, sdktrace.WithBatcher(exporter))
	if err != nil {
		return nil, err
	}
	Install(tp)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// NewProvider 创建TracerProvider
// processor决定Span的去向:生产用WithBatcher(otlp),测试用WithSyncer(内存exporter)
func NewProvider(ctx context.Context, serviceName string, sampleRatio float64, processor sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(
		ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// ParentBased: 上游已决定采样时沿用上游决定
	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))

	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		processor,
		sdktrace.WithResource(res),
	), nil
}

// Install 设置全局TracerProvider与W3C上下文传播器
func Install(tp trace.TracerProvider) {
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, // W3C Trace Context
			propagation.Baggage{},
		),
	)
}

// StartSpan 创建Span
// ctx中有父Span时新Span自动成为子Span
func StartSpan(ctx context.Context, tracerName, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, opts...)
}

// RecordError 在Span上记录错误并标记状态
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// ExtractTraceID 从context提取TraceID(用于日志关联)
func ExtractTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// ExtractSpanID 从context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}
