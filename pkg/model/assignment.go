// Package model 定义排班助手的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignment 某周某天的班次分配记录
// (staff, template, week_start_date, day_of_week) 全局唯一，由存储层唯一索引保证
type Assignment struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TemplateID    uuid.UUID `json:"shift_template_id" db:"shift_template_id"`
	StaffID       uuid.UUID `json:"staff_id" db:"staff_id"`
	WeekStartDate string    `json:"week_start_date" db:"week_start_date"` // 周一，YYYY-MM-DD
	DayOfWeek     int       `json:"day_of_week" db:"day_of_week"`
	AssignedAt    time.Time `json:"assigned_at" db:"assigned_at"`
}

// Date 返回分配对应的具体日期
func (a *Assignment) Date() string {
	t, err := time.Parse(DateLayout, a.WeekStartDate)
	if err != nil {
		return a.WeekStartDate
	}
	return SlotDate(t, a.DayOfWeek)
}

// FairnessMetric 员工在统计周期内的公平性指标
// 按需计算，默认不落库
type FairnessMetric struct {
	ID                         uuid.UUID `json:"id,omitempty" db:"id"`
	StaffID                    uuid.UUID `json:"staff_id" db:"staff_id"`
	PeriodStart                time.Time `json:"period_start" db:"period_start"`
	PeriodEnd                  time.Time `json:"period_end" db:"period_end"`
	TotalShifts                int       `json:"total_shifts" db:"total_shifts"`
	PreferredShiftsCount       int       `json:"preferred_shifts_count" db:"preferred_shifts_count"`
	AvoidedShiftsCount         int       `json:"avoided_shifts_count" db:"avoided_shifts_count"`
	PreferenceFulfillmentScore float64   `json:"preference_fulfillment_score" db:"preference_fulfillment_score"`
}
