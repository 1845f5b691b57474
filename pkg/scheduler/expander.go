// Package scheduler 提供排班引擎核心算法
package scheduler

import (
	"sort"
	"time"

	"github.com/shiftorg/shiftorg/pkg/model"
)

// ExpandSlots 将活跃班次模板展开为目标周的具体槽位
// 排序固定为：星期升序，同一天内按模板ID升序
// 相同输入必然产生相同的槽位序列，保证重复运行结果可复现
func ExpandSlots(weekStart time.Time, templates []*model.ShiftTemplate) []*model.Slot {
	weekStart = model.NormalizeWeekStart(weekStart)

	active := make([]*model.ShiftTemplate, 0, len(templates))
	for _, t := range templates {
		if t.IsActive {
			active = append(active, t)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].ID.String() < active[j].ID.String()
	})

	var slots []*model.Slot
	for day := 0; day < model.DaysPerWeek; day++ {
		for _, t := range active {
			if !t.HasDay(day) {
				continue
			}
			slots = append(slots, &model.Slot{
				Template:  t,
				Date:      model.SlotDate(weekStart, day),
				DayOfWeek: day,
			})
		}
	}

	return slots
}
