// Package server 提供 gRPC 服务器实现.
//
// 服务器内置标准 grpc.health.v1 健康检查服务，
// 所有服务（包括健康检查）都经过配置的拦截器链.
package server

import (
	"context"
	"errors"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"github.com/Tsukikage7/localekit/transport"
)

// Registrar gRPC 服务注册器接口.
type Registrar interface {
	RegisterGRPC(server *grpc.Server)
}

// Server gRPC 服务器.
type Server struct {
	opts   *options
	health *health.Server

	mu       sync.Mutex
	server   *grpc.Server
	listener net.Listener
}

// New 创建 gRPC 服务器，如果未设置 logger 会 panic.
func New(opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		panic("grpc server: 必须设置 logger")
	}

	return &Server{
		opts:   o,
		health: health.NewServer(),
	}
}

// Register 注册 gRPC 服务，支持链式调用，需在 Start 前调用.
func (s *Server) Register(services ...Registrar) *Server {
	s.opts.services = append(s.opts.services, services...)
	return s
}

// GRPCServer 返回底层 grpc.Server，未启动时返回 nil.
func (s *Server) GRPCServer() *grpc.Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server
}

// Health 返回健康检查服务，可用于设置单个服务的状态.
func (s *Server) Health() *health.Server {
	return s.health
}

// Start 启动 gRPC 服务器，阻塞直到 ctx 取消或服务出错.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.addr)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(s.buildServerOptions()...)
	for _, service := range s.opts.services {
		service.RegisterGRPC(srv)
	}
	healthpb.RegisterHealthServer(srv, s.health)
	if s.opts.enableReflection {
		reflection.Register(srv)
	}

	s.mu.Lock()
	s.server = srv
	s.listener = listener
	s.mu.Unlock()
	s.health.Resume()

	s.opts.logger.Infof("[%s] 服务器启动 [addr:%s]", s.opts.name, listener.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
	case <-ctx.Done():
	}
	return nil
}

// Stop 停止 gRPC 服务器，ctx 超时后强制关闭.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.opts.logger.Infof("[%s] 服务器停止中", s.opts.name)
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		srv.Stop()
		return ctx.Err()
	}
}

// Name 返回服务器名称.
func (s *Server) Name() string {
	return s.opts.name
}

// Addr 返回服务器地址，启动后为实际监听地址.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.addr
}

func (s *Server) buildServerOptions() []grpc.ServerOption {
	opts := []grpc.ServerOption{
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             s.opts.minPingInterval,
			PermitWithoutStream: true,
		}),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    s.opts.keepaliveTime,
			Timeout: s.opts.keepaliveTimeout,
		}),
	}

	if len(s.opts.unaryInterceptors) > 0 {
		opts = append(opts, grpc.ChainUnaryInterceptor(s.opts.unaryInterceptors...))
	}
	if len(s.opts.streamInterceptors) > 0 {
		opts = append(opts, grpc.ChainStreamInterceptor(s.opts.streamInterceptors...))
	}

	return append(opts, s.opts.serverOptions...)
}

var _ transport.Server = (*Server)(nil)
