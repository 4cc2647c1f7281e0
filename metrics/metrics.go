// Package metrics 提供 Prometheus 指标收集功能.
package metrics

import (
	"net/http"
	"time"
)

// Collector 指标收集器接口.
type Collector interface {
	RecordHTTPRequest(method, path, statusCode string, duration time.Duration)
	RecordGRPCRequest(method, statusCode string, duration time.Duration)

	// RecordLocaleResolution 记录一次语言协商，channel 为命中的渠道.
	RecordLocaleResolution(channel, locale string)
	RecordPanic(method, path string)

	GetHandler() http.Handler
	GetPath() string
}

var _ Collector = (*PrometheusCollector)(nil)

// NewMetrics 创建指标收集器.
func NewMetrics(cfg *Config) (*PrometheusCollector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	return NewPrometheus(cfg)
}

// MustNewMetrics 创建指标收集器，失败时 panic.
func MustNewMetrics(cfg *Config) *PrometheusCollector {
	c, err := NewMetrics(cfg)
	if err != nil {
		panic(err)
	}
	return c
}
