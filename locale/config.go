package locale

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// 默认配置常量.
const (
	DefaultParamsKey      = "locale"
	DefaultCookieKey      = "locale"
	DefaultCookiePath     = "/"
	DefaultCookieLifetime = 365 * 24 * time.Hour
)

// 预定义错误.
var (
	// ErrNoSupported 未配置受支持的语言.
	ErrNoSupported = errors.New("locale: 未配置受支持的语言")

	// ErrDefaultUnsupported 默认语言不在受支持列表中.
	ErrDefaultUnsupported = errors.New("locale: 默认语言不在受支持列表中")
)

// ConfigError 配置错误.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("locale config error [%s]: %s", e.Field, e.Message)
}

// Config 语言协商配置.
type Config struct {
	// ParamsKey 显式选择语言的查询参数名，默认 "locale"
	ParamsKey string `json:"params_key" yaml:"params_key" mapstructure:"params_key"`

	// CookieKey 记忆语言的 Cookie 名，默认 "locale"
	CookieKey string `json:"cookie_key" yaml:"cookie_key" mapstructure:"cookie_key"`

	// Supported 受支持的语言列表（有序）
	Supported []string `json:"supported" yaml:"supported" mapstructure:"supported"`

	// Default 无任何匹配时使用的语言
	Default string `json:"default" yaml:"default" mapstructure:"default"`

	// Cookie 记忆 Cookie 的属性
	Cookie CookieConfig `json:"cookie" yaml:"cookie" mapstructure:"cookie"`
}

// DefaultConfig 返回默认配置.
func DefaultConfig() Config {
	return Config{
		ParamsKey: DefaultParamsKey,
		CookieKey: DefaultCookieKey,
		Cookie:    DefaultCookieConfig(),
	}
}

// ApplyDefaults 应用默认值.
//
// 布尔字段 (HTTPOnly/Secure) 按原值使用，不做覆盖.
func (c *Config) ApplyDefaults() {
	if c.ParamsKey == "" {
		c.ParamsKey = DefaultParamsKey
	}
	if c.CookieKey == "" {
		c.CookieKey = DefaultCookieKey
	}
	if c.Default == "" && len(c.Supported) > 0 {
		c.Default = c.Supported[0]
	}
	if c.Cookie.Path == "" {
		c.Cookie.Path = DefaultCookiePath
	}
	if c.Cookie.Lifetime == 0 {
		c.Cookie.Lifetime = DefaultCookieLifetime
	}
}

// Validate 验证配置.
//
// 仅用于启动阶段，请求处理过程中不会调用.
func (c *Config) Validate() error {
	if c == nil {
		return &ConfigError{Field: "config", Message: "config cannot be nil"}
	}

	if len(c.Supported) == 0 {
		return ErrNoSupported
	}

	for _, tag := range c.Supported {
		if err := validateTag(tag); err != nil {
			return &ConfigError{Field: "supported", Message: err.Error()}
		}
	}

	if c.Default != "" && !slices.Contains(c.Supported, c.Default) {
		return fmt.Errorf("%w: %s", ErrDefaultUnsupported, c.Default)
	}

	if c.Cookie.Lifetime < 0 {
		return &ConfigError{Field: "cookie.lifetime", Message: "lifetime cannot be negative"}
	}

	if !c.Cookie.SameSite.valid() {
		return &ConfigError{Field: "cookie.same_site", Message: "invalid same_site: " + string(c.Cookie.SameSite)}
	}

	return nil
}

// validateTag 检查标签是否为格式正确的 BCP 47 标签.
//
// 未知但格式正确的子标签 (如 "en-UK") 视为有效.
func validateTag(tag string) error {
	if tag == "" || strings.TrimSpace(tag) != tag || !isTag(tag) {
		return fmt.Errorf("invalid locale tag %q", tag)
	}
	if _, err := language.Parse(tag); err != nil {
		var ve language.ValueError
		if errors.As(err, &ve) {
			return nil
		}
		return fmt.Errorf("invalid locale tag %q: %v", tag, err)
	}
	return nil
}
