// Package scheduler 提供排班引擎核心算法
package scheduler

import (
	"sort"

	"github.com/shiftorg/shiftorg/pkg/model"
)

// Score 计算 (员工, 槽位) 的期望分数
// score = 偏好分数（默认 0.0）− 负载惩罚 × 当前负载
// 负载惩罚随已排班次数单调递增，其他条件相同时优先选择排班较少的员工
func (c *Context) Score(staff *model.Staff, slot *model.Slot) float64 {
	pref := c.preferenceFor(staff.ID, slot.DayOfWeek, slot.Template.ID)
	return pref - c.LoadPenalty*float64(c.Load(staff.ID))
}

// rankCandidates 按分数降序排列候选，分数相同时按员工ID升序
// 固定的平分决胜保证重复运行结果可复现
func (c *Context) rankCandidates(pool []*model.Staff, slot *model.Slot) []*model.Staff {
	ranked := make([]*model.Staff, len(pool))
	copy(ranked, pool)

	scores := make(map[string]float64, len(ranked))
	for _, s := range ranked {
		scores[s.ID.String()] = c.Score(s, slot)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].ID.String()], scores[ranked[j].ID.String()]
		if si != sj {
			return si > sj
		}
		return ranked[i].ID.String() < ranked[j].ID.String()
	})

	return ranked
}
