package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration 解析 ISO 8601 时长字符串（PT#H#M#S）为秒数
// 宽松解析：不以 PT 开头或任何一段解析失败都返回 0，绝不返回部分结果。
// 排序引擎和偏好学习共用此函数，两边结果必须一致。
func ParseDuration(s string) int {
	if !strings.HasPrefix(s, "PT") {
		return 0
	}
	rest := s[2:]
	total := 0

	// 按 H、M、S 固定顺序依次切分
	if i := strings.Index(rest, "H"); i >= 0 {
		hours, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0
		}
		total += hours * 3600
		rest = rest[i+1:]
	}
	if i := strings.Index(rest, "M"); i >= 0 {
		minutes, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0
		}
		total += minutes * 60
		rest = rest[i+1:]
	}
	if i := strings.Index(rest, "S"); i >= 0 {
		seconds, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0
		}
		total += seconds
	}

	return total
}

// parsePublishedAt 解析 RFC3339 发布时间，失败返回零值
func parsePublishedAt(publishedAt string) (time.Time, bool) {
	if publishedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// VideoAgeDays 计算视频发布至今的天数，时间缺失或无效返回 -1
func VideoAgeDays(publishedAt string) int {
	t, ok := parsePublishedAt(publishedAt)
	if !ok {
		return -1
	}
	return int(time.Since(t).Hours() / 24)
}

// IsVideoTooOld 判断视频是否超过最大年龄限制
// 时间缺失或无效视为"不算太旧"，放行。
func IsVideoTooOld(publishedAt string, maxAgeDays int) bool {
	t, ok := parsePublishedAt(publishedAt)
	if !ok {
		return false
	}
	return time.Since(t) > time.Duration(maxAgeDays)*24*time.Hour
}
