// Package scheduler 提供排班引擎核心算法
package scheduler

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/pkg/logger"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// 未满足槽位的原因
const (
	ReasonPoolExhausted = "pool_exhausted" // 合格候选不足
	ReasonQuotaUnmet    = "quota_unmet"    // 资质配额无法满足
)

// UnmetSlot 未完全满足的槽位诊断信息
type UnmetSlot struct {
	TemplateID    uuid.UUID `json:"template_id"`
	TemplateName  string    `json:"template_name"`
	Date          string    `json:"date"`
	DayOfWeek     int       `json:"day_of_week"`
	Required      int       `json:"required"`
	Assigned      int       `json:"assigned"`
	Shortage      int       `json:"shortage"`
	Qualification string    `json:"qualification,omitempty"`
	Reason        string    `json:"reason"`
	Message       string    `json:"message"`
}

// Statistics 排班运行统计
type Statistics struct {
	TotalSlots       int     `json:"total_slots"`
	FilledSlots      int     `json:"filled_slots"`
	FillRate         float64 `json:"fill_rate"`
	TotalAssignments int     `json:"total_assignments"`
}

// Result 排班运行结果
type Result struct {
	Assignments []*model.Assignment `json:"assignments"`
	Unmet       []UnmetSlot         `json:"unmet"`
	Statistics  *Statistics         `json:"statistics"`
	Duration    time.Duration       `json:"-"`
}

// GreedySolver 贪心排班求解器
// 按固定槽位顺序单遍扫描，每个槽位先满足资质配额再填满剩余人数
// 不做回溯，局部选择即最终结果
type GreedySolver struct {
	log *logger.SchedulerLogger
}

// NewGreedySolver 创建贪心求解器
func NewGreedySolver() *GreedySolver {
	return &GreedySolver{log: logger.NewSchedulerLogger()}
}

// Solve 对目标周生成排班
// 相同输入必然产生相同输出，排班失败不返回错误而是记入 Unmet 诊断
func (s *GreedySolver) Solve(ctx context.Context, sc *Context) (*Result, error) {
	start := time.Now()
	weekStart := sc.WeekStart.Format(model.DateLayout)
	slots := ExpandSlots(sc.WeekStart, sc.Templates)

	s.log.StartRun(weekStart, len(sc.Staff), len(slots))

	result := &Result{
		Assignments: make([]*model.Assignment, 0),
		Unmet:       make([]UnmetSlot, 0),
	}

	filled := 0
	for _, slot := range slots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		unmet := s.fillSlot(sc, slot)
		if len(unmet) == 0 {
			filled++
		}
		for _, u := range unmet {
			s.log.UnmetSlot(u.TemplateName, u.Date, u.Reason)
		}
		result.Unmet = append(result.Unmet, unmet...)
	}

	result.Assignments = sc.Created()
	result.Statistics = &Statistics{
		TotalSlots:       len(slots),
		FilledSlots:      filled,
		TotalAssignments: len(result.Assignments),
	}
	if len(slots) > 0 {
		result.Statistics.FillRate = float64(filled) / float64(len(slots))
	}
	result.Duration = time.Since(start)

	s.log.RunComplete(weekStart, len(result.Assignments), len(result.Unmet), result.Duration)
	return result, nil
}

// fillSlot 填充单个槽位，返回诊断信息（空表示完全满足）
func (s *GreedySolver) fillSlot(sc *Context, slot *model.Slot) []UnmetSlot {
	tmpl := slot.Template
	pool := sc.rankCandidates(sc.EligibleStaff(slot), slot)

	selected := make([]*model.Staff, 0, tmpl.RequiredStaff)
	inSelected := make(map[uuid.UUID]bool)
	var unmet []UnmetSlot

	// 配额阶段：按资质标签的字典序依次满足最低人数要求
	// 已入选者持有的资质计入配额，避免重复占用名额
	tags := make([]string, 0, len(tmpl.RequiredQualifications))
	for tag := range tmpl.RequiredQualifications {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	quotaShortage := 0
	for _, tag := range tags {
		need := tmpl.RequiredQualifications[tag]
		have := 0
		for _, st := range selected {
			if st.HasQualification(tag) {
				have++
			}
		}
		for _, cand := range pool {
			if have >= need || len(selected) >= tmpl.RequiredStaff {
				break
			}
			if inSelected[cand.ID] || !cand.HasQualification(tag) {
				continue
			}
			selected = append(selected, cand)
			inSelected[cand.ID] = true
			have++
		}
		if have < need {
			quotaShortage += need - have
			unmet = append(unmet, s.quotaDiagnostic(slot, tag, need, have))
		}
	}

	// 填充阶段：按评分顺序补齐剩余人数
	// 未满足的配额名额保持空置，不用无资质候选顶替
	fillLimit := tmpl.RequiredStaff - quotaShortage
	if fillLimit < len(selected) {
		fillLimit = len(selected)
	}
	for _, cand := range pool {
		if len(selected) >= fillLimit {
			break
		}
		if inSelected[cand.ID] {
			continue
		}
		selected = append(selected, cand)
		inSelected[cand.ID] = true
	}

	if len(selected) < fillLimit {
		unmet = append(unmet, s.shortageDiagnostic(slot, len(selected)))
	}

	now := time.Now()
	for _, st := range selected {
		sc.AddAssignment(&model.Assignment{
			ID:            uuid.New(),
			TemplateID:    tmpl.ID,
			StaffID:       st.ID,
			WeekStartDate: sc.WeekStart.Format(model.DateLayout),
			DayOfWeek:     slot.DayOfWeek,
			AssignedAt:    now,
		})
	}

	return unmet
}

// quotaDiagnostic 构造资质配额未满足的诊断
func (s *GreedySolver) quotaDiagnostic(slot *model.Slot, tag string, need, have int) UnmetSlot {
	return UnmetSlot{
		TemplateID:    slot.Template.ID,
		TemplateName:  slot.Template.Name,
		Date:          slot.Date,
		DayOfWeek:     slot.DayOfWeek,
		Required:      need,
		Assigned:      have,
		Shortage:      need - have,
		Qualification: tag,
		Reason:        ReasonQuotaUnmet,
		Message:       "资质 " + tag + " 的配额无法满足",
	}
}

// shortageDiagnostic 构造人数不足的诊断
func (s *GreedySolver) shortageDiagnostic(slot *model.Slot, assigned int) UnmetSlot {
	return UnmetSlot{
		TemplateID:   slot.Template.ID,
		TemplateName: slot.Template.Name,
		Date:         slot.Date,
		DayOfWeek:    slot.DayOfWeek,
		Required:     slot.Template.RequiredStaff,
		Assigned:     assigned,
		Shortage:     slot.Template.RequiredStaff - assigned,
		Reason:       ReasonPoolExhausted,
		Message:      "合格候选不足，槽位未填满",
	}
}
