package locale

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeSource 测试用 Source.
type fakeSource struct {
	query  map[string]string
	cookie map[string]string
	accept string
}

func (s fakeSource) Query(key string) string  { return s.query[key] }
func (s fakeSource) Cookie(key string) string { return s.cookie[key] }
func (s fakeSource) AcceptLanguage() string   { return s.accept }

func newTestResolver() *Resolver {
	return NewResolver(Config{
		Supported: []string{"en", "ja"},
		Default:   "ja",
	})
}

func TestResolver_ChannelPriority(t *testing.T) {
	r := NewResolver(Config{Supported: []string{"en", "ja", "fr"}, Default: "en"})

	res := r.Resolve(fakeSource{
		query:  map[string]string{"locale": "ja"},
		cookie: map[string]string{"locale": "fr"},
		accept: "en",
	})

	assert.Equal(t, "ja", res.Locale)
	assert.Equal(t, "ja", res.Explicit)
	assert.Equal(t, ChannelQuery, res.Channel)
}

func TestResolver_FallbackChain(t *testing.T) {
	r := NewResolver(Config{Supported: []string{"en", "ja", "fr"}, Default: "en"})

	t.Run("query unsupported falls to cookie", func(t *testing.T) {
		res := r.Resolve(fakeSource{
			query:  map[string]string{"locale": "de"},
			cookie: map[string]string{"locale": "fr"},
			accept: "ja",
		})
		assert.Equal(t, Result{Locale: "fr", Channel: ChannelCookie}, res)
		assert.False(t, res.HasExplicit())
	})

	t.Run("cookie unsupported falls to header", func(t *testing.T) {
		res := r.Resolve(fakeSource{
			cookie: map[string]string{"locale": "de"},
			accept: "ja-JP",
		})
		assert.Equal(t, Result{Locale: "ja", Channel: ChannelHeader}, res)
	})

	t.Run("nothing matches", func(t *testing.T) {
		res := r.Resolve(fakeSource{accept: "de"})
		assert.Equal(t, Result{Locale: "en", Channel: ChannelDefault}, res)
	})

	t.Run("nil source", func(t *testing.T) {
		res := r.Resolve(nil)
		assert.Equal(t, Result{Locale: "en", Channel: ChannelDefault}, res)
	})
}

func TestResolver_ExplicitKeepsRawTag(t *testing.T) {
	r := NewResolver(Config{Supported: []string{"en"}, Default: "en"})

	res := r.Resolve(fakeSource{query: map[string]string{"locale": "en-US"}})

	assert.Equal(t, "en", res.Locale)
	assert.Equal(t, "en-US", res.Explicit)
}

func TestResolver_ExplicitIsFirstMatchingEntry(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(fakeSource{query: map[string]string{"locale": "fr, ja-JP;q=0.8, en;q=0.5"}})

	assert.Equal(t, "ja", res.Locale)
	assert.Equal(t, "ja-JP", res.Explicit)
}

func TestResolver_CustomKeys(t *testing.T) {
	r := NewResolver(Config{
		ParamsKey: "lang",
		CookieKey: "hl",
		Supported: []string{"en", "ja"},
		Default:   "en",
	})

	res := r.Resolve(fakeSource{query: map[string]string{"locale": "ja", "lang": "en"}})
	assert.Equal(t, ChannelQuery, res.Channel)
	assert.Equal(t, "en", res.Locale)

	res = r.Resolve(fakeSource{cookie: map[string]string{"locale": "en", "hl": "ja"}})
	assert.Equal(t, ChannelCookie, res.Channel)
	assert.Equal(t, "ja", res.Locale)
}

func TestResolver_DefaultsToFirstSupported(t *testing.T) {
	r := NewResolver(Config{Supported: []string{"ja", "en"}})

	assert.Equal(t, "ja", r.Default())
	assert.Equal(t, []string{"ja", "en"}, r.Supported())
}

func TestResolver_ConfigIsCopied(t *testing.T) {
	supported := []string{"en", "ja"}
	r := NewResolver(Config{Supported: supported, Default: "en"})

	supported[1] = "fr"

	assert.Equal(t, "ja", r.Resolve(fakeSource{accept: "ja"}).Locale)
	assert.Equal(t, []string{"en", "ja"}, r.Supported())
}

// 各通道在相同输入下的期望结果.
func TestResolver_Channels(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"en", "en"},
		{"ja", "ja"},
		{"ja-JP", "ja"},
		{"en-US", "en"},
		{"en-UK", "en"},
		{"ja-JP,ja", "ja"},
		{"en-US,en", "en"},
		{"en-UK,en", "en"},
		{"en-UK,en-US,en", "en"},
		{"ja-JP,en-US", "ja"},
		{"en-US,ja-JP", "en"},
		{"en-UK, fr;q=0.9, zh;q=0.8, de;q=0.7, *;q=0.5", "en"},
		{",en", "en"},
		{"en;q=0, fr", "en"},
		{"fr", "ja"},
		{"fr;q=0.9, zh;q=0.8, de;q=0.7, *;q=0.5", "ja"},
		{"", "ja"},
	}

	r := newTestResolver()

	for _, tt := range tests {
		t.Run("query "+tt.raw, func(t *testing.T) {
			res := r.Resolve(fakeSource{query: map[string]string{"locale": tt.raw}})
			assert.Equal(t, tt.want, res.Locale)
			if res.Channel == ChannelQuery {
				assert.NotEmpty(t, res.Explicit)
				assert.Equal(t, tt.want, Fold(res.Explicit))
			} else {
				assert.Empty(t, res.Explicit)
			}
		})

		t.Run("cookie "+tt.raw, func(t *testing.T) {
			res := r.Resolve(fakeSource{cookie: map[string]string{"locale": tt.raw}})
			assert.Equal(t, tt.want, res.Locale)
			assert.Empty(t, res.Explicit)
		})

		t.Run("header "+tt.raw, func(t *testing.T) {
			res := r.Resolve(fakeSource{accept: tt.raw})
			assert.Equal(t, tt.want, res.Locale)
			assert.Empty(t, res.Explicit)
		})
	}
}

func TestResolver_ZeroQualityHeaderMatches(t *testing.T) {
	res := newTestResolver().Resolve(fakeSource{accept: "en;q=0, fr"})

	assert.Equal(t, Result{Locale: "en", Channel: ChannelHeader}, res)
}

func TestRequestSource(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?locale="+url.QueryEscape("en-US"), nil)
	req.AddCookie(&http.Cookie{Name: "locale", Value: "ja"})
	req.Header.Set("Accept-Language", "fr;q=0.8")

	src := RequestSource(req)

	assert.Equal(t, "en-US", src.Query("locale"))
	assert.Equal(t, "", src.Query("missing"))
	assert.Equal(t, "ja", src.Cookie("locale"))
	assert.Equal(t, "", src.Cookie("missing"))
	assert.Equal(t, "fr;q=0.8", src.AcceptLanguage())
}

func TestResolver_ResolveRequest(t *testing.T) {
	r := newTestResolver()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	assert.Equal(t, Result{Locale: "en", Channel: ChannelHeader}, r.ResolveRequest(req))
	assert.Equal(t, Result{Locale: "ja", Channel: ChannelDefault}, r.ResolveRequest(nil))
}
