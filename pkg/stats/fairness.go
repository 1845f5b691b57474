// Package stats 提供排班统计分析功能
package stats

import (
	"time"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// Period 公平性统计周期（闭区间，日粒度）
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains 判断日期是否落在周期内
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// ResolvePeriod 解析统计周期参数
// 优先级：显式 start/end > 尾随 periodDays > 默认全部历史
// end 早于 start 时返回 InvalidPeriod 错误
func ResolvePeriod(periodDays *int, startDate, endDate *time.Time, now time.Time) (Period, error) {
	if startDate != nil || endDate != nil {
		p := Period{End: now}
		if startDate != nil {
			p.Start = *startDate
		}
		if endDate != nil {
			p.End = *endDate
		}
		if p.End.Before(p.Start) {
			return Period{}, errors.InvalidPeriod("统计周期结束日期早于开始日期")
		}
		return p, nil
	}
	if periodDays != nil {
		if *periodDays < 0 {
			return Period{}, errors.InvalidPeriod("统计天数不能为负")
		}
		return Period{Start: now.AddDate(0, 0, -*periodDays), End: now}, nil
	}
	// 默认统计全部历史数据
	return Period{Start: time.Time{}, End: now}, nil
}

// FairnessAnalyzer 公平性分析器
// 基于历史分配与偏好规则计算每名员工的公平性指标
type FairnessAnalyzer struct {
	preferences map[prefKey]float64
}

// prefKey 偏好规则索引键，template 为 uuid.Nil 表示日级规则
type prefKey struct {
	staff    uuid.UUID
	day      int
	template uuid.UUID
}

// NewFairnessAnalyzer 创建公平性分析器
func NewFairnessAnalyzer(preferences []*model.PreferenceRule) *FairnessAnalyzer {
	a := &FairnessAnalyzer{preferences: make(map[prefKey]float64, len(preferences))}
	for _, r := range preferences {
		k := prefKey{staff: r.StaffID, day: r.DayOfWeek}
		if r.TemplateID != nil {
			k.template = *r.TemplateID
		}
		a.preferences[k] = r.Score
	}
	return a
}

// preferenceFor 查询某分配对应的偏好分数
// 精确规则 (day, template) 优先于日级规则；无规则视为中性 0.0
func (a *FairnessAnalyzer) preferenceFor(staffID uuid.UUID, day int, templateID uuid.UUID) float64 {
	if score, ok := a.preferences[prefKey{staff: staffID, day: day, template: templateID}]; ok {
		return score
	}
	if score, ok := a.preferences[prefKey{staff: staffID, day: day}]; ok {
		return score
	}
	return 0.0
}

// Analyze 计算单名员工在周期内的公平性指标
// 无偏好规则匹配的班次按中性 0.0 计入平均值
// 周期内零分配时所有指标为零值
func (a *FairnessAnalyzer) Analyze(staffID uuid.UUID, assignments []*model.Assignment, period Period) *model.FairnessMetric {
	metric := &model.FairnessMetric{
		StaffID:     staffID,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
	}

	var scoreSum float64
	for _, assign := range assignments {
		if assign.StaffID != staffID {
			continue
		}
		date, err := time.Parse(model.DateLayout, assign.Date())
		if err != nil || !period.Contains(date) {
			continue
		}

		metric.TotalShifts++
		score := a.preferenceFor(staffID, assign.DayOfWeek, assign.TemplateID)
		scoreSum += score
		if score > 0 {
			metric.PreferredShiftsCount++
		} else if score < 0 {
			metric.AvoidedShiftsCount++
		}
	}

	if metric.TotalShifts > 0 {
		metric.PreferenceFulfillmentScore = scoreSum / float64(metric.TotalShifts)
	}
	return metric
}

// AnalyzeAll 计算多名员工的公平性指标，顺序与输入员工列表一致
func (a *FairnessAnalyzer) AnalyzeAll(staff []*model.Staff, assignments []*model.Assignment, period Period) []*model.FairnessMetric {
	metrics := make([]*model.FairnessMetric, 0, len(staff))
	for _, s := range staff {
		metrics = append(metrics, a.Analyze(s.ID, assignments, period))
	}
	return metrics
}
