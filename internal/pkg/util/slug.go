package util

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 生成 url-safe 的 slug
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ShortSuffix 取 uuid 前 6 位作为短随机后缀
func ShortSuffix() string {
	return uuid.NewString()[:6]
}

// SanitizeBaseName 去掉扩展名并清理为 key 安全的文件名主体
func SanitizeBaseName(filename string) string {
	base := filename
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	base = Slugify(base)
	if base == "" {
		base = "file"
	}
	return base
}
