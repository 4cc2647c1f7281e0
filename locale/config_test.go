package locale

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "locale", cfg.ParamsKey)
	assert.Equal(t, "locale", cfg.CookieKey)
	assert.Equal(t, 365*24*time.Hour, cfg.Cookie.Lifetime)
	assert.Equal(t, "/", cfg.Cookie.Path)
	assert.True(t, cfg.Cookie.HTTPOnly)
	assert.True(t, cfg.Cookie.Secure)
	assert.Empty(t, cfg.Cookie.Domain)
	assert.Equal(t, SameSiteUnset, cfg.Cookie.SameSite)
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Supported: []string{"ja", "en"}}
	cfg.ApplyDefaults()

	assert.Equal(t, "locale", cfg.ParamsKey)
	assert.Equal(t, "locale", cfg.CookieKey)
	assert.Equal(t, "ja", cfg.Default)
	assert.Equal(t, "/", cfg.Cookie.Path)
	assert.Equal(t, DefaultCookieLifetime, cfg.Cookie.Lifetime)
	assert.False(t, cfg.Cookie.HTTPOnly)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
		field   string
	}{
		{
			name: "valid",
			cfg:  &Config{Supported: []string{"en", "ja", "en-UK", "zh-Hans-CN"}, Default: "ja"},
		},
		{
			name:  "nil",
			cfg:   nil,
			field: "config",
		},
		{
			name:    "no supported",
			cfg:     &Config{Default: "en"},
			wantErr: ErrNoSupported,
		},
		{
			name:    "default not supported",
			cfg:     &Config{Supported: []string{"en"}, Default: "ja"},
			wantErr: ErrDefaultUnsupported,
		},
		{
			name:  "malformed tag",
			cfg:   &Config{Supported: []string{"en US"}},
			field: "supported",
		},
		{
			name:  "wildcard tag",
			cfg:   &Config{Supported: []string{"*"}},
			field: "supported",
		},
		{
			name:  "ill formed subtag",
			cfg:   &Config{Supported: []string{"en-abcdefghi"}},
			field: "supported",
		},
		{
			name:  "negative lifetime",
			cfg:   &Config{Supported: []string{"en"}, Cookie: CookieConfig{Lifetime: -time.Second}},
			field: "cookie.lifetime",
		},
		{
			name:  "invalid same site",
			cfg:   &Config{Supported: []string{"en"}, Cookie: CookieConfig{SameSite: "sometimes"}},
			field: "cookie.same_site",
		},
		{
			name: "same site case insensitive",
			cfg:  &Config{Supported: []string{"en"}, Cookie: CookieConfig{SameSite: "Lax"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.field != "":
				var cfgErr *ConfigError
				if assert.ErrorAs(t, err, &cfgErr) {
					assert.Equal(t, tt.field, cfgErr.Field)
				}
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestSameSite_Mode(t *testing.T) {
	assert.Equal(t, SameSite("").mode(), SameSiteUnset.mode())
	assert.EqualValues(t, 0, SameSiteUnset.mode())
	assert.Equal(t, http.SameSiteLaxMode, SameSiteLax.mode())
	assert.Equal(t, http.SameSiteStrictMode, SameSite("STRICT").mode())
	assert.Equal(t, http.SameSiteNoneMode, SameSiteNone.mode())
}
