package main

import (
	"time"

	"github.com/Tsukikage7/localekit/config"
	"github.com/Tsukikage7/localekit/locale"
	"github.com/Tsukikage7/localekit/logger"
	"github.com/Tsukikage7/localekit/metrics"
	"github.com/Tsukikage7/localekit/trace"
	"github.com/Tsukikage7/localekit/transport"
)

// envPrefix 环境变量前缀，LOCALED_LOCALE_DEFAULT 对应 locale.default.
const envPrefix = "LOCALED"

// AppConfig localed 服务配置.
type AppConfig struct {
	App     AppInfo              `json:"app" yaml:"app" mapstructure:"app"`
	HTTP    transport.HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`
	GRPC    transport.GRPCConfig `json:"grpc" yaml:"grpc" mapstructure:"grpc"`
	Log     logger.Config        `json:"log" yaml:"log" mapstructure:"log"`
	Trace   trace.Config         `json:"trace" yaml:"trace" mapstructure:"trace"`
	Metrics metrics.Config       `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
	Locale  locale.Config        `json:"locale" yaml:"locale" mapstructure:"locale"`
}

// AppInfo 应用信息.
type AppInfo struct {
	Name            string        `json:"name" yaml:"name" mapstructure:"name"`
	Version         string        `json:"version" yaml:"version" mapstructure:"version"`
	GracefulTimeout time.Duration `json:"graceful_timeout" yaml:"graceful_timeout" mapstructure:"graceful_timeout"`
}

// Validate 补齐默认值并验证配置，由 config.Load 在解析后调用.
func (c *AppConfig) Validate() error {
	c.Locale.ApplyDefaults()
	if err := c.Locale.Validate(); err != nil {
		return err
	}

	if c.Log.ServiceName == "" {
		c.Log.ServiceName = c.App.Name
	}
	c.Log.ApplyDefaults()
	return c.Log.Validate()
}

// defaults 列出所有配置键，环境变量只能覆盖这里出现的键.
func defaults() map[string]any {
	lc := locale.DefaultConfig()
	return map[string]any{
		"app.name":             "localed",
		"app.version":          "dev",
		"app.graceful_timeout": "30s",

		"http.name":          "HTTP",
		"http.addr":          ":8080",
		"http.read_timeout":  "30s",
		"http.write_timeout": "30s",
		"http.idle_timeout":  "120s",

		"grpc.name":              "gRPC",
		"grpc.addr":              ":9090",
		"grpc.enable_reflection": false,
		"grpc.keepalive_time":    "60s",
		"grpc.keepalive_timeout": "20s",

		"log.level":         logger.LevelInfo,
		"log.format":        logger.FormatJSON,
		"log.output":        logger.OutputConsole,
		"log.service_name":  "",
		"log.enable_caller": false,

		"trace.enabled":       false,
		"trace.sampling_rate": 1.0,
		"trace.otlp.endpoint": "localhost:4318",

		"metrics.path":      "/metrics",
		"metrics.namespace": "localekit",

		"locale.params_key":       lc.ParamsKey,
		"locale.cookie_key":       lc.CookieKey,
		"locale.supported":        []string{"en"},
		"locale.default":          "",
		"locale.cookie.lifetime":  lc.Cookie.Lifetime.String(),
		"locale.cookie.domain":    lc.Cookie.Domain,
		"locale.cookie.path":      lc.Cookie.Path,
		"locale.cookie.http_only": lc.Cookie.HTTPOnly,
		"locale.cookie.secure":    lc.Cookie.Secure,
		"locale.cookie.same_site": string(lc.Cookie.SameSite),
	}
}

// loadConfig 加载配置；path 为空时只读取默认值和环境变量.
func loadConfig(path string) (*AppConfig, error) {
	opts := []config.Option{
		config.WithEnvPrefix(envPrefix),
		config.WithDefaults(defaults()),
	}
	if path == "" {
		return config.LoadEnv[AppConfig](opts...)
	}
	return config.Load[AppConfig](path, opts...)
}
