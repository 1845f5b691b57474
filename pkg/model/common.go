// Package model 定义排班助手的核心数据模型
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout 日期格式
const DateLayout = "2006-01-02"

// ClockLayout 时刻格式
const ClockLayout = "15:04"

// DaysPerWeek 每周天数
const DaysPerWeek = 7

// WeekdayIndex 返回日期对应的星期索引（周一=0，周日=6）
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// NormalizeWeekStart 将任意日期归一化到所在周的周一（零点）
func NormalizeWeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -WeekdayIndex(day))
}

// SlotDate 计算周起始日期加星期偏移后的具体日期
func SlotDate(weekStart time.Time, dayOfWeek int) string {
	return weekStart.AddDate(0, 0, dayOfWeek).Format(DateLayout)
}

// ParseClock 解析 HH:MM 时刻为当日分钟数
func ParseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("无效的时刻格式: %s", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("无效的小时: %s", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("无效的分钟: %s", clock)
	}
	return hour*60 + minute, nil
}

// ClockRangesOverlap 检查两个 HH:MM 时段是否重叠
// 结束时刻不晚于开始时刻视为跨天班次（结束时刻 +24 小时）
func ClockRangesOverlap(start1, end1, start2, end2 string) bool {
	s1, err1 := ParseClock(start1)
	e1, err2 := ParseClock(end1)
	s2, err3 := ParseClock(start2)
	e2, err4 := ParseClock(end2)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}

	if e1 <= s1 {
		e1 += 24 * 60
	}
	if e2 <= s2 {
		e2 += 24 * 60
	}

	return s1 < e2 && s2 < e1
}

// ValidDayOfWeek 检查星期索引是否合法
func ValidDayOfWeek(day int) bool {
	return day >= 0 && day < DaysPerWeek
}
