package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9._]{1,30}$`)

// NormalizeUsername 标准化用户名
// 支持 "@name"、"name/"、"https://www.instagram.com/name/?hl=en" 等输入
func NormalizeUsername(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "instagram.com") {
		if !strings.Contains(s, "://") {
			s = "https://" + s
		}
		if u, err := url.Parse(s); err == nil {
			parts := strings.Split(strings.Trim(u.Path, "/"), "/")
			s = parts[0]
		}
	}

	s = strings.TrimPrefix(s, "@")
	s = strings.Trim(s, "/")
	return strings.ToLower(s)
}

// IsValidUsername 判断是否符合Instagram用户名规则
func IsValidUsername(name string) bool {
	return usernameRegex.MatchString(name)
}

// SplitUsernames 按空白切分表单输入并标准化，空项被丢弃，顺序与重复项保留
func SplitUsernames(input string) []string {
	fields := strings.Fields(input)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if name := NormalizeUsername(f); name != "" {
			names = append(names, name)
		}
	}
	return names
}
