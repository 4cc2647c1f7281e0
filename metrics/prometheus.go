package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusCollector Prometheus 指标收集器实现.
type PrometheusCollector struct {
	config *Config

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	grpcRequestsTotal   *prometheus.CounterVec
	grpcRequestDuration *prometheus.HistogramVec

	localeResolutions *prometheus.CounterVec
	panicTotal        *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewPrometheus 创建 Prometheus 指标收集器.
//
// 每个收集器使用独立的注册表，并附带 Go 运行时和进程指标.
func NewPrometheus(cfg *Config) (*PrometheusCollector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultConfig().Namespace
	}

	c := &PrometheusCollector{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}

	c.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	c.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	c.grpcRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Total number of gRPC requests",
		},
		[]string{"method", "status_code"},
	)

	c.grpcRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "gRPC request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	c.localeResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "locale",
			Name:      "resolutions_total",
			Help:      "Total number of locale resolutions by channel and effective locale",
		},
		[]string{"channel", "locale"},
	)

	c.panicTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "system",
			Name:      "panic_total",
			Help:      "Total number of panics recovered",
		},
		[]string{"method", "path"},
	)

	collectors := []prometheus.Collector{
		c.httpRequestsTotal,
		c.httpRequestDuration,
		c.grpcRequestsTotal,
		c.grpcRequestDuration,
		c.localeResolutions,
		c.panicTotal,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{Namespace: namespace}),
	}

	for _, collector := range collectors {
		if err := c.registry.Register(collector); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRegisterMetric, err)
		}
	}

	return c, nil
}

// RecordHTTPRequest 记录 HTTP 请求指标.
func (c *PrometheusCollector) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGRPCRequest 记录 gRPC 请求指标.
func (c *PrometheusCollector) RecordGRPCRequest(method, statusCode string, duration time.Duration) {
	c.grpcRequestsTotal.WithLabelValues(method, statusCode).Inc()
	c.grpcRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordLocaleResolution 记录语言协商结果.
//
// 实现 locale.Observer，可直接传给 locale.WithObserver.
func (c *PrometheusCollector) RecordLocaleResolution(channel, locale string) {
	c.localeResolutions.WithLabelValues(channel, locale).Inc()
}

// RecordPanic 记录 panic 事件.
func (c *PrometheusCollector) RecordPanic(method, path string) {
	c.panicTotal.WithLabelValues(method, path).Inc()
}

// GetHandler 返回 metrics 的 HTTP 处理器.
func (c *PrometheusCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// GetPath 返回 metrics 路径.
func (c *PrometheusCollector) GetPath() string {
	if c.config.Path == "" {
		return "/metrics"
	}
	return c.config.Path
}
