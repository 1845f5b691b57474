// Package scheduler 提供排班引擎核心算法
package scheduler

import (
	"fmt"

	"github.com/shiftorg/shiftorg/pkg/model"
)

// Eligible 判断员工能否填入某槽位（硬约束）
// 依次检查：可用性规则、周班次上限、同日时段冲突
// 资质不是单人准入条件，配额在求解器层面按槽位聚合满足
func (c *Context) Eligible(staff *model.Staff, slot *model.Slot) (bool, string) {
	// 显式 available=false 规则（精确或日级）排除该员工
	if !c.availableFor(staff.ID, slot.DayOfWeek, slot.Template.ID) {
		return false, fmt.Sprintf("员工 %s 在星期%d 不可用", staff.Name, slot.DayOfWeek)
	}

	// 周上限：已有分配 + 本次运行分配 + 本次候选 不得超过 max_shifts_per_week
	if c.Load(staff.ID)+1 > staff.MaxShiftsPerWeek {
		return false, fmt.Sprintf("员工 %s 已达周班次上限 %d", staff.Name, staff.MaxShiftsPerWeek)
	}

	// 同日冲突：同一模板重复分配，或不同模板时段重叠
	for _, tmplID := range c.templatesOnDay(staff.ID, slot.DayOfWeek) {
		if tmplID == slot.Template.ID {
			return false, fmt.Sprintf("员工 %s 当天已分配该班次", staff.Name)
		}
		other := c.GetTemplate(tmplID)
		if other != nil && other.OverlapsTime(slot.Template) {
			return false, fmt.Sprintf("员工 %s 当天已有时段重叠的班次 %s", staff.Name, other.Name)
		}
	}

	return true, ""
}

// EligibleStaff 返回槽位的全部合格候选
// 候选顺序与 c.Staff 一致，排序由评分阶段完成
func (c *Context) EligibleStaff(slot *model.Slot) []*model.Staff {
	var pool []*model.Staff
	for _, s := range c.Staff {
		if ok, _ := c.Eligible(s, slot); ok {
			pool = append(pool, s)
		}
	}
	return pool
}
