// Package model 定义排班助手的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// ShiftTemplate 每周循环的班次模板
type ShiftTemplate struct {
	ID                     uuid.UUID      `json:"id" db:"id"`
	Name                   string         `json:"name" db:"name"`
	DaysOfWeek             []int          `json:"days_of_week" db:"days_of_week"` // [0,1,2,3,4] 表示周一到周五
	StartTime              string         `json:"start_time" db:"start_time"`     // HH:MM
	EndTime                string         `json:"end_time" db:"end_time"`         // HH:MM
	RequiredStaff          int            `json:"required_staff" db:"required_staff"`
	RequiredQualifications map[string]int `json:"required_qualifications" db:"required_qualifications"` // 资质 -> 最少人数
	IsActive               bool           `json:"is_active" db:"is_active"`
	CreatedAt              time.Time      `json:"created_at" db:"created_at"`
}

// HasDay 检查模板是否在指定星期循环
func (t *ShiftTemplate) HasDay(day int) bool {
	for _, d := range t.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// OverlapsTime 检查两个模板的时段是否重叠
func (t *ShiftTemplate) OverlapsTime(other *ShiftTemplate) bool {
	return ClockRangesOverlap(t.StartTime, t.EndTime, other.StartTime, other.EndTime)
}

// DurationMinutes 返回班次时长（分钟），跨天班次按 +24 小时计算
func (t *ShiftTemplate) DurationMinutes() int {
	start, err1 := ParseClock(t.StartTime)
	end, err2 := ParseClock(t.EndTime)
	if err1 != nil || err2 != nil {
		return 0
	}
	if end <= start {
		end += 24 * 60
	}
	return end - start
}

// Slot 一周中某天需要排人的具体班次（仅在一次排班运行内存在，不落库）
type Slot struct {
	Template  *ShiftTemplate `json:"template"`
	Date      string         `json:"date"` // YYYY-MM-DD
	DayOfWeek int            `json:"day_of_week"`
}

// Key 返回槽位标识（模板ID-日期）
func (s *Slot) Key() string {
	return s.Template.ID.String() + "-" + s.Date
}
