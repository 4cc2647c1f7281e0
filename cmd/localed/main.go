// Command localed 运行语言协商服务.
//
// HTTP 端口提供 "/"（返回协商结果）、"/v1/locale"（经 grpc-gateway 协商）
// 和 Prometheus 指标；gRPC 端口提供经语言拦截器的健康检查服务.
//
// 用法:
//
//	localed -config configs/localed.yaml
//	LOCALED_LOCALE_SUPPORTED=en,ja LOCALED_LOCALE_DEFAULT=ja localed
package main

import (
	"flag"
	"fmt"
	"os"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/Tsukikage7/localekit/app"
	"github.com/Tsukikage7/localekit/locale"
	"github.com/Tsukikage7/localekit/logger"
	"github.com/Tsukikage7/localekit/metrics"
	"github.com/Tsukikage7/localekit/trace"
	grpcserver "github.com/Tsukikage7/localekit/transport/grpc/server"
	httpserver "github.com/Tsukikage7/localekit/transport/http/server"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径，为空时只读取环境变量")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "localed:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}

	tp, err := trace.NewTracer(&cfg.Trace, cfg.App.Name, cfg.App.Version)
	if err != nil {
		_ = log.Close()
		return err
	}

	collector, err := metrics.NewMetrics(&cfg.Metrics)
	if err != nil {
		_ = log.Close()
		return err
	}

	handler, err := newHTTPHandler(cfg, log, collector)
	if err != nil {
		_ = log.Close()
		return err
	}

	application := app.New(
		app.Name(cfg.App.Name),
		app.Version(cfg.App.Version),
		app.Logger(log),
		app.GracefulTimeout(cfg.App.GracefulTimeout),
		app.RegisterCleanup("tracer", tp.Shutdown, 0),
		app.RegisterCloser("logger", log, 100),
	)

	application.Use(httpserver.New(handler,
		httpserver.WithConfig(cfg.HTTP),
		httpserver.WithLogger(log),
	))
	if cfg.GRPC.Addr != "" {
		application.Use(newGRPCServer(cfg, log, collector))
	}

	return application.Run()
}

// newGRPCServer 创建 gRPC 服务器，拦截器顺序为指标、语言协商.
func newGRPCServer(cfg *AppConfig, log logger.Logger, collector metrics.Collector) *grpcserver.Server {
	localeOpts := []locale.Option{
		locale.WithConfig(cfg.Locale),
		locale.WithLogger(log),
		locale.WithObserver(collector),
	}

	return grpcserver.New(
		grpcserver.WithConfig(cfg.GRPC),
		grpcserver.WithLogger(log),
		grpcserver.WithServerOption(grpc.StatsHandler(otelgrpc.NewServerHandler())),
		grpcserver.WithUnaryInterceptor(
			metrics.UnaryServerInterceptor(collector),
			locale.UnaryServerInterceptor(localeOpts...),
		),
		grpcserver.WithStreamInterceptor(
			metrics.StreamServerInterceptor(collector),
			locale.StreamServerInterceptor(localeOpts...),
		),
	)
}
