package locale

import (
	"slices"
	"strconv"
	"strings"
)

// Preference 带权重的语言偏好.
type Preference struct {
	Tag     string  // 客户端提供的原始标签 (如 "en-US")
	Quality float64 // 质量值 (0.0 - 1.0)
}

// ParseAcceptLanguage 解析 Accept-Language 风格的字符串.
//
// 返回结果按质量值从高到低稳定排序，质量值相同的条目保持原始顺序.
// 通配符 "*"、空标签以及格式错误的条目会被丢弃，解析本身不会失败.
// q=0 的条目保留并排在最后，仍参与匹配.
func ParseAcceptLanguage(raw string) []Preference {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	prefs := make([]Preference, 0, len(parts))
	for _, part := range parts {
		if pref, ok := parsePreference(part); ok {
			prefs = append(prefs, pref)
		}
	}

	slices.SortStableFunc(prefs, func(a, b Preference) int {
		switch {
		case a.Quality > b.Quality:
			return -1
		case a.Quality < b.Quality:
			return 1
		}
		return 0
	})

	return prefs
}

// parsePreference 解析单个 tag[;q=weight] 条目.
func parsePreference(s string) (Preference, bool) {
	params := strings.Split(s, ";")
	pref := Preference{
		Tag:     strings.TrimSpace(params[0]),
		Quality: 1.0,
	}

	if pref.Tag == "" || pref.Tag == "*" || !isTag(pref.Tag) {
		return Preference{}, false
	}

	for _, param := range params[1:] {
		key, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || q < 0 || q > 1 {
			return Preference{}, false
		}
		pref.Quality = q
	}

	return pref, true
}

// isTag 检查标签只包含字母、数字和 "-"，且不以 "-" 开头或结尾.
func isTag(s string) bool {
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}

// Fold 返回标签的基础语言 (截断到第一个 "-").
//
//	Fold("en-US") // "en"
//	Fold("en")    // "en"
func Fold(tag string) string {
	if i := strings.IndexByte(tag, '-'); i > 0 {
		return tag[:i]
	}
	return tag
}

// set 受支持的语言集合.
type set map[string]struct{}

func newSet(tags []string) set {
	s := make(set, len(tags))
	for _, tag := range tags {
		if tag != "" {
			s[tag] = struct{}{}
		}
	}
	return s
}

// match 在 raw 中查找第一个受支持的偏好.
//
// 返回集合中的成员 (可能是折叠后的基础语言) 以及命中的原始标签.
// 比较区分大小写，仅支持完全相同或基础语言折叠两种匹配.
func (s set) match(raw string) (member, tag string, ok bool) {
	if len(s) == 0 {
		return "", "", false
	}
	for _, pref := range ParseAcceptLanguage(raw) {
		if _, hit := s[pref.Tag]; hit {
			return pref.Tag, pref.Tag, true
		}
		if base := Fold(pref.Tag); base != pref.Tag {
			if _, hit := s[base]; hit {
				return base, pref.Tag, true
			}
		}
	}
	return "", "", false
}

// Match 返回 raw 中第一个受支持的语言，未命中时 ok 为 false.
//
//	Match("ja;q=0.5, en-US;q=0.9", "en", "ja") // "en", true
func Match(raw string, supported ...string) (string, bool) {
	member, _, ok := newSet(supported).match(raw)
	return member, ok
}
