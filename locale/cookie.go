package locale

import (
	"net/http"
	"strings"
	"time"
)

// SameSite Cookie 的 SameSite 属性.
type SameSite string

// SameSite 常量，空值表示不输出该属性.
const (
	SameSiteUnset  SameSite = ""
	SameSiteLax    SameSite = "lax"
	SameSiteStrict SameSite = "strict"
	SameSiteNone   SameSite = "none"
)

func (s SameSite) valid() bool {
	switch SameSite(strings.ToLower(string(s))) {
	case SameSiteUnset, SameSiteLax, SameSiteStrict, SameSiteNone:
		return true
	}
	return false
}

// mode 转换为 http.SameSite，未设置时返回零值（不输出）.
func (s SameSite) mode() http.SameSite {
	switch SameSite(strings.ToLower(string(s))) {
	case SameSiteLax:
		return http.SameSiteLaxMode
	case SameSiteStrict:
		return http.SameSiteStrictMode
	case SameSiteNone:
		return http.SameSiteNoneMode
	}
	return 0
}

// CookieConfig 记忆 Cookie 的属性.
type CookieConfig struct {
	// Lifetime 有效期，默认 1 年；<= 0 时不输出 Expires
	Lifetime time.Duration `json:"lifetime" yaml:"lifetime" mapstructure:"lifetime"`

	// Domain 可选，空值时不输出
	Domain string `json:"domain" yaml:"domain" mapstructure:"domain"`

	// Path 默认 "/"
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// HTTPOnly 默认 true
	HTTPOnly bool `json:"http_only" yaml:"http_only" mapstructure:"http_only"`

	// Secure 默认 true
	Secure bool `json:"secure" yaml:"secure" mapstructure:"secure"`

	// SameSite 可选: lax, strict, none
	SameSite SameSite `json:"same_site" yaml:"same_site" mapstructure:"same_site"`
}

// DefaultCookieConfig 返回默认 Cookie 属性.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		Lifetime: DefaultCookieLifetime,
		Path:     DefaultCookiePath,
		HTTPOnly: true,
		Secure:   true,
	}
}

// Cookie 构造记忆 Cookie，过期时间从 now 起算.
func (c CookieConfig) Cookie(key, value string, now time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     c.Path,
		Domain:   c.Domain,
		HttpOnly: c.HTTPOnly,
		Secure:   c.Secure,
		SameSite: c.SameSite.mode(),
	}
	if c.Lifetime > 0 {
		cookie.Expires = now.Add(c.Lifetime).UTC()
	}
	return cookie
}
