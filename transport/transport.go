// Package transport 定义服务器的公共接口和配置.
package transport

import (
	"context"
	"time"
)

// Server 服务器接口，由 app.Application 统一管理生命周期.
type Server interface {
	// Start 启动服务器，阻塞直到 ctx 取消或服务出错.
	Start(ctx context.Context) error
	// Stop 优雅停止服务器.
	Stop(ctx context.Context) error
	Name() string
	Addr() string
}

// HTTPConfig HTTP 服务器配置.
type HTTPConfig struct {
	Name         string        `json:"name" yaml:"name" mapstructure:"name"`
	Addr         string        `json:"addr" yaml:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout" yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// GRPCConfig gRPC 服务器配置，Addr 为空表示不启动.
type GRPCConfig struct {
	Name             string        `json:"name" yaml:"name" mapstructure:"name"`
	Addr             string        `json:"addr" yaml:"addr" mapstructure:"addr"`
	EnableReflection bool          `json:"enable_reflection" yaml:"enable_reflection" mapstructure:"enable_reflection"`
	KeepaliveTime    time.Duration `json:"keepalive_time" yaml:"keepalive_time" mapstructure:"keepalive_time"`
	KeepaliveTimeout time.Duration `json:"keepalive_timeout" yaml:"keepalive_timeout" mapstructure:"keepalive_timeout"`
}
