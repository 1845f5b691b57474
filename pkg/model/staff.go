// Package model 定义排班助手的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// Staff 员工档案
type Staff struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Qualifications   []string  `json:"qualifications" db:"qualifications"`
	MaxShiftsPerWeek int       `json:"max_shifts_per_week" db:"max_shifts_per_week"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// HasQualification 检查员工是否持有某资质
func (s *Staff) HasQualification(tag string) bool {
	for _, q := range s.Qualifications {
		if q == tag {
			return true
		}
	}
	return false
}

// AvailabilityRule 可用性规则
// TemplateID 为空表示该星期对所有班次生效
// 没有规则等价于 Available=true
type AvailabilityRule struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	StaffID    uuid.UUID  `json:"staff_id" db:"staff_id"`
	DayOfWeek  int        `json:"day_of_week" db:"day_of_week"`
	TemplateID *uuid.UUID `json:"shift_template_id,omitempty" db:"shift_template_id"`
	Available  bool       `json:"is_available" db:"is_available"`
}

// PreferenceRule 偏好规则
// Score 取值 [-1.0, 1.0]：正数偏好，负数回避，0 中性
// 同一 (员工, 星期, 班次) 至多一条生效规则，由存储层替换写入保证
type PreferenceRule struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	StaffID    uuid.UUID  `json:"staff_id" db:"staff_id"`
	DayOfWeek  int        `json:"day_of_week" db:"day_of_week"`
	TemplateID *uuid.UUID `json:"shift_template_id,omitempty" db:"shift_template_id"`
	Score      float64    `json:"preference_score" db:"preference_score"`
}
