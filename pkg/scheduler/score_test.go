package scheduler

import (
	"math"
	"testing"

	"github.com/shiftorg/shiftorg/pkg/model"
)

// TestScore_PreferenceAndLoad 测试分数 = 偏好 − 负载惩罚 × 负载
func TestScore_PreferenceAndLoad(t *testing.T) {
	morning := newTemplate("早班", []int{0}, "08:00", "16:00", 1, nil)
	a := newStaff("张三", nil, 5)

	sc := NewContext(testWeekStart, []*model.Staff{a},
		[]*model.ShiftTemplate{morning},
		nil,
		[]*model.PreferenceRule{newPreference(a.ID, 0, &morning.ID, 0.5)},
		nil)

	slot := &model.Slot{Template: morning, Date: "2026-01-05", DayOfWeek: 0}
	if got := sc.Score(a, slot); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("零负载时分数应为 0.5，实际 %f", got)
	}

	sc.AddAssignment(&model.Assignment{
		TemplateID: morning.ID, StaffID: a.ID,
		WeekStartDate: "2026-01-05", DayOfWeek: 1,
	})
	if got := sc.Score(a, slot); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("负载 1 时分数应为 0.4，实际 %f", got)
	}
}

// TestScore_ExactPreferenceOverridesDayLevel 测试精确偏好优先于日级偏好
func TestScore_ExactPreferenceOverridesDayLevel(t *testing.T) {
	morning := newTemplate("早班", []int{0}, "08:00", "16:00", 1, nil)
	evening := newTemplate("晚班", []int{0}, "16:00", "23:00", 1, nil)
	a := newStaff("张三", nil, 5)

	sc := NewContext(testWeekStart, []*model.Staff{a},
		[]*model.ShiftTemplate{morning, evening},
		nil,
		[]*model.PreferenceRule{
			newPreference(a.ID, 0, nil, -0.3),
			newPreference(a.ID, 0, &morning.ID, 0.8),
		},
		nil)

	morningSlot := &model.Slot{Template: morning, Date: "2026-01-05", DayOfWeek: 0}
	if got := sc.Score(a, morningSlot); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("精确偏好应生效，期望 0.8，实际 %f", got)
	}

	eveningSlot := &model.Slot{Template: evening, Date: "2026-01-05", DayOfWeek: 0}
	if got := sc.Score(a, eveningSlot); math.Abs(got-(-0.3)) > 1e-9 {
		t.Errorf("日级偏好应生效，期望 -0.3，实际 %f", got)
	}
}

// TestScore_NeutralDefault 测试无偏好规则时分数为中性 0
func TestScore_NeutralDefault(t *testing.T) {
	morning := newTemplate("早班", []int{0}, "08:00", "16:00", 1, nil)
	a := newStaff("张三", nil, 5)
	sc := NewContext(testWeekStart, []*model.Staff{a},
		[]*model.ShiftTemplate{morning}, nil, nil, nil)

	slot := &model.Slot{Template: morning, Date: "2026-01-05", DayOfWeek: 0}
	if got := sc.Score(a, slot); got != 0 {
		t.Errorf("无规则应为中性 0，实际 %f", got)
	}
}

// TestRankCandidates_TieBreakByID 测试平分时按员工ID升序决胜
func TestRankCandidates_TieBreakByID(t *testing.T) {
	morning := newTemplate("早班", []int{0}, "08:00", "16:00", 1, nil)
	a := newStaff("张三", nil, 5)
	b := newStaff("李四", nil, 5)
	c := newStaff("王五", nil, 5)

	sc := NewContext(testWeekStart, []*model.Staff{a, b, c},
		[]*model.ShiftTemplate{morning},
		nil,
		[]*model.PreferenceRule{newPreference(b.ID, 0, nil, 0.5)},
		nil)

	slot := &model.Slot{Template: morning, Date: "2026-01-05", DayOfWeek: 0}
	ranked := sc.rankCandidates([]*model.Staff{a, b, c}, slot)

	if ranked[0].ID != b.ID {
		t.Fatal("偏好最高的李四应排首位")
	}
	// 张三与王五同为 0 分，按ID升序
	if ranked[1].ID.String() > ranked[2].ID.String() {
		t.Error("平分候选未按员工ID升序排列")
	}
}
