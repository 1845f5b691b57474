package scheduler

import (
	"testing"

	"github.com/shiftorg/shiftorg/pkg/model"
)

// TestEligible_DefaultAvailable 测试无规则时默认可用
func TestEligible_DefaultAvailable(t *testing.T) {
	morning := newTemplate("早班", []int{0}, "08:00", "16:00", 1, nil)
	a := newStaff("张三", nil, 5)
	sc := NewContext(testWeekStart, []*model.Staff{a},
		[]*model.ShiftTemplate{morning}, nil, nil, nil)

	slot := &model.Slot{Template: morning, Date: "2026-01-05", DayOfWeek: 0}
	if ok, reason := sc.Eligible(a, slot); !ok {
		t.Errorf("无规则应默认可用: %s", reason)
	}
}

// TestEligible_ExactRuleOverridesDayRule 测试精确规则优先于日级规则
func TestEligible_ExactRuleOverridesDayRule(t *testing.T) {
	morning := newTemplate("早班", []int{0}, "08:00", "16:00", 1, nil)
	evening := newTemplate("晚班", []int{0}, "16:00", "23:00", 1, nil)
	a := newStaff("张三", nil, 5)

	// 日级不可用，但早班有精确的可用规则
	sc := NewContext(testWeekStart, []*model.Staff{a},
		[]*model.ShiftTemplate{morning, evening},
		[]*model.AvailabilityRule{
			newAvailability(a.ID, 0, nil, false),
			newAvailability(a.ID, 0, &morning.ID, true),
		},
		nil, nil)

	morningSlot := &model.Slot{Template: morning, Date: "2026-01-05", DayOfWeek: 0}
	if ok, reason := sc.Eligible(a, morningSlot); !ok {
		t.Errorf("精确可用规则应覆盖日级不可用: %s", reason)
	}

	eveningSlot := &model.Slot{Template: evening, Date: "2026-01-05", DayOfWeek: 0}
	if ok, _ := sc.Eligible(a, eveningSlot); ok {
		t.Error("无精确规则的晚班应遵循日级不可用")
	}
}

// TestEligible_WeeklyCapWithRunLoad 测试本次运行的分配即时计入周上限
func TestEligible_WeeklyCapWithRunLoad(t *testing.T) {
	morning := newTemplate("早班", []int{0, 1}, "08:00", "16:00", 1, nil)
	a := newStaff("张三", nil, 1)
	sc := NewContext(testWeekStart, []*model.Staff{a},
		[]*model.ShiftTemplate{morning}, nil, nil, nil)

	day0 := &model.Slot{Template: morning, Date: "2026-01-05", DayOfWeek: 0}
	if ok, _ := sc.Eligible(a, day0); !ok {
		t.Fatal("首个槽位应合格")
	}

	sc.AddAssignment(&model.Assignment{
		TemplateID: morning.ID, StaffID: a.ID,
		WeekStartDate: "2026-01-05", DayOfWeek: 0,
	})

	day1 := &model.Slot{Template: morning, Date: "2026-01-06", DayOfWeek: 1}
	if ok, _ := sc.Eligible(a, day1); ok {
		t.Error("运行内分配后应立即达到周上限")
	}
}

// TestEligible_SameDayConflicts 测试同日同模板与时段重叠冲突
func TestEligible_SameDayConflicts(t *testing.T) {
	early := newTemplate("早班", []int{0}, "08:00", "16:00", 1, nil)
	mid := newTemplate("中班", []int{0}, "12:00", "20:00", 1, nil)
	night := newTemplate("夜班", []int{0}, "22:00", "06:00", 1, nil)
	a := newStaff("张三", nil, 5)

	sc := NewContext(testWeekStart, []*model.Staff{a},
		[]*model.ShiftTemplate{early, mid, night}, nil, nil, nil)
	sc.AddAssignment(&model.Assignment{
		TemplateID: early.ID, StaffID: a.ID,
		WeekStartDate: "2026-01-05", DayOfWeek: 0,
	})

	cases := []struct {
		名称   string
		slot *model.Slot
		合格   bool
	}{
		{"同模板重复", &model.Slot{Template: early, Date: "2026-01-05", DayOfWeek: 0}, false},
		{"时段重叠", &model.Slot{Template: mid, Date: "2026-01-05", DayOfWeek: 0}, false},
		{"无重叠夜班", &model.Slot{Template: night, Date: "2026-01-05", DayOfWeek: 0}, true},
	}

	for _, tc := range cases {
		t.Run(tc.名称, func(t *testing.T) {
			if ok, reason := sc.Eligible(a, tc.slot); ok != tc.合格 {
				t.Errorf("期望合格=%v，实际=%v (%s)", tc.合格, ok, reason)
			}
		})
	}
}

// TestEligibleStaff_Pool 测试候选池只含合格员工
func TestEligibleStaff_Pool(t *testing.T) {
	morning := newTemplate("早班", []int{0}, "08:00", "16:00", 2, nil)
	a := newStaff("张三", nil, 5)
	b := newStaff("李四", nil, 0) // 上限为 0
	c := newStaff("王五", nil, 5)

	sc := NewContext(testWeekStart, []*model.Staff{a, b, c},
		[]*model.ShiftTemplate{morning},
		[]*model.AvailabilityRule{
			newAvailability(c.ID, 0, &morning.ID, false),
		},
		nil, nil)

	slot := &model.Slot{Template: morning, Date: "2026-01-05", DayOfWeek: 0}
	pool := sc.EligibleStaff(slot)

	if len(pool) != 1 || pool[0].Name != "张三" {
		t.Errorf("候选池应只含张三，实际 %d 人", len(pool))
	}
}
