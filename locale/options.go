package locale

import (
	"slices"
	"time"

	"github.com/Tsukikage7/localekit/logger"
)

// Observer 协商结果观察者，通常由指标收集器实现.
type Observer interface {
	RecordLocaleResolution(channel, locale string)
}

// Option 中间件配置选项.
type Option func(*options)

type options struct {
	config   Config
	logger   logger.Logger
	observer Observer
	now      func() time.Time
}

func defaultOptions() *options {
	return &options{
		config: DefaultConfig(),
		now:    time.Now,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	o.config.ApplyDefaults()
	return o
}

// WithConfig 使用完整配置.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		cfg.Supported = slices.Clone(cfg.Supported)
		o.config = cfg
	}
}

// WithParamsKey 设置查询参数名.
func WithParamsKey(key string) Option {
	return func(o *options) {
		o.config.ParamsKey = key
	}
}

// WithCookieKey 设置 Cookie 名.
func WithCookieKey(key string) Option {
	return func(o *options) {
		o.config.CookieKey = key
	}
}

// WithSupported 设置受支持的语言列表.
func WithSupported(tags ...string) Option {
	return func(o *options) {
		o.config.Supported = slices.Clone(tags)
	}
}

// WithDefault 设置默认语言.
func WithDefault(tag string) Option {
	return func(o *options) {
		o.config.Default = tag
	}
}

// WithCookie 设置 Cookie 属性.
func WithCookie(cookie CookieConfig) Option {
	return func(o *options) {
		o.config.Cookie = cookie
	}
}

// WithLogger 设置日志记录器，协商结果以 debug 级别输出.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// WithObserver 设置协商结果观察者.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// withClock 替换时钟，仅用于测试.
func withClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
