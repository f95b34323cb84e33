// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三类:
//   - HTTP: 请求数、耗时、处理中的请求数(由middleware.Metrics记录)
//   - 图书操作: 每个用例的调用结果与耗时(由application/book记录)
//   - 外部依赖: 缓存命中率、事件发布结果
//
// 所有指标通过promauto注册到默认Registry,由/metrics端点(promhttp)暴露。
//
// 命名规范:
//   - Counter以_total结尾
//   - Histogram以单位结尾(_seconds)
//   - 标签只用有限取值的维度(method、status、operation),不用图书ID
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "libros"

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method、path（路由模板，如/libros/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BookOperationsTotal 图书操作总数（Counter）
	// 标签：operation（list/get/create/update/delete/search）、result（success/not_found/invalid/error）
	BookOperationsTotal *prometheus.CounterVec

	// BookOperationDuration 图书操作耗时（Histogram）
	BookOperationDuration *prometheus.HistogramVec

	// 缓存指标

	// CacheRequestsTotal 图书缓存读取总数（Counter）
	// 标签：result（hit/miss/error）
	CacheRequestsTotal *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 可重复调用,只注册一次
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP请求耗时（秒）",
				// 1ms、10ms、100ms、500ms、1s、5s、10s
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_progress",
				Help:      "正在处理的HTTP请求数",
			},
		)

		BookOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "book_operations_total",
				Help:      "图书操作总数",
			},
			[]string{"operation", "result"},
		)

		BookOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "book_operation_duration_seconds",
				Help:      "图书操作耗时（秒）",
				// SQLite本地文件,大部分操作在毫秒级
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		)

		CacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "图书缓存读取总数",
			},
			[]string{"result"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_published_total",
				Help:      "消息发布总数",
			},
			[]string{"routing_key", "result"},
		)
	})
}

// ObserveBookOperation 记录一次图书操作的结果与耗时
func ObserveBookOperation(operation, result string, start time.Time) {
	InitMetrics()
	BookOperationsTotal.With(prometheus.Labels{"operation": operation, "result": result}).Inc()
	BookOperationDuration.With(prometheus.Labels{"operation": operation}).Observe(time.Since(start).Seconds())
}

// IncCacheRequest 记录一次缓存读取(hit/miss/error)
func IncCacheRequest(result string) {
	InitMetrics()
	CacheRequestsTotal.With(prometheus.Labels{"result": result}).Inc()
}

// IncMessagePublished 记录一次事件发布
func IncMessagePublished(routingKey string, err error) {
	InitMetrics()
	result := "success"
	if err != nil {
		result = "failure"
	}
	MessagesPublishedTotal.With(prometheus.Labels{"routing_key": routingKey, "result": result}).Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
