package lifecycle

import "strings"

// MatchesQuery 对给定文本字段做大小写不敏感的子串匹配；空查询匹配一切。
func MatchesQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter 保留 fields(record) 中任一字段匹配 query 的记录，保持原有顺序。
// 总是返回新切片，不修改入参。
func Filter[T any](records []T, query string, fields func(T) []string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if MatchesQuery(query, fields(r)...) {
			out = append(out, r)
		}
	}
	return out
}
