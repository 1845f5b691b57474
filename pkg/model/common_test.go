package model

import (
	"testing"
	"time"
)

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{"周一", time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), 0},
		{"周三", time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), 2},
		{"周日", time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := WeekdayIndex(tt.date); result != tt.expected {
				t.Errorf("WeekdayIndex() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestNormalizeWeekStart(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{"周一保持不变", time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), "2026-01-12"},
		{"周四归到周一", time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC), "2026-01-12"},
		{"周日归到周一", time.Date(2026, 1, 18, 23, 59, 0, 0, time.UTC), "2026-01-12"},
		{"跨月归一化", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), "2026-01-26"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeWeekStart(tt.date)
			if got := result.Format(DateLayout); got != tt.expected {
				t.Errorf("NormalizeWeekStart() = %v, expected %v", got, tt.expected)
			}
			if h, m, s := result.Clock(); h != 0 || m != 0 || s != 0 {
				t.Errorf("归一化结果应该是零点, 实际 %02d:%02d:%02d", h, m, s)
			}
		})
	}
}

func TestSlotDate(t *testing.T) {
	weekStart := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	if d := SlotDate(weekStart, 0); d != "2026-01-12" {
		t.Errorf("周一日期 = %v", d)
	}
	if d := SlotDate(weekStart, 6); d != "2026-01-18" {
		t.Errorf("周日日期 = %v", d)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name     string
		clock    string
		expected int
		hasError bool
	}{
		{"早上九点", "09:00", 540, false},
		{"午夜", "00:00", 0, false},
		{"一天最后一分钟", "23:59", 1439, false},
		{"缺少分钟", "09", 0, true},
		{"小时越界", "24:00", 0, true},
		{"分钟越界", "10:60", 0, true},
		{"非数字", "ab:cd", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseClock(tt.clock)
			if tt.hasError {
				if err == nil {
					t.Errorf("期望解析失败，实际成功: %v", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("解析失败: %v", err)
			}
			if result != tt.expected {
				t.Errorf("ParseClock() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestClockRangesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a        [2]string
		b        [2]string
		expected bool
	}{
		{"完全重叠", [2]string{"09:00", "14:00"}, [2]string{"09:00", "14:00"}, true},
		{"部分重叠", [2]string{"09:00", "14:00"}, [2]string{"13:00", "19:00"}, true},
		{"首尾相接不算重叠", [2]string{"09:00", "14:00"}, [2]string{"14:00", "19:00"}, false},
		{"完全分离", [2]string{"09:00", "12:00"}, [2]string{"14:00", "19:00"}, false},
		{"包含关系", [2]string{"08:00", "20:00"}, [2]string{"10:00", "12:00"}, true},
		{"跨天夜班与晚班重叠", [2]string{"22:00", "06:00"}, [2]string{"20:00", "23:00"}, true},
		{"跨天夜班与早班分离", [2]string{"22:00", "06:00"}, [2]string{"09:00", "14:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClockRangesOverlap(tt.a[0], tt.a[1], tt.b[0], tt.b[1])
			if result != tt.expected {
				t.Errorf("ClockRangesOverlap(%v, %v) = %v, expected %v", tt.a, tt.b, result, tt.expected)
			}
			// 重叠检查应该对称
			if reverse := ClockRangesOverlap(tt.b[0], tt.b[1], tt.a[0], tt.a[1]); reverse != result {
				t.Errorf("重叠检查不对称: %v vs %v", result, reverse)
			}
		})
	}
}
