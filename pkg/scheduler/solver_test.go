package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/pkg/model"
)

var testWeekStart = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // 周一

// newStaff 测试用员工构造
func newStaff(name string, quals []string, maxShifts int) *model.Staff {
	return &model.Staff{
		ID:               uuid.New(),
		Name:             name,
		Qualifications:   quals,
		MaxShiftsPerWeek: maxShifts,
		CreatedAt:        time.Now(),
	}
}

// newTemplate 测试用班次模板构造
func newTemplate(name string, days []int, start, end string, required int, quals map[string]int) *model.ShiftTemplate {
	return &model.ShiftTemplate{
		ID:                     uuid.New(),
		Name:                   name,
		DaysOfWeek:             days,
		StartTime:              start,
		EndTime:                end,
		RequiredStaff:          required,
		RequiredQualifications: quals,
		IsActive:               true,
		CreatedAt:              time.Now(),
	}
}

// newPreference 测试用偏好规则构造
func newPreference(staffID uuid.UUID, day int, templateID *uuid.UUID, score float64) *model.PreferenceRule {
	return &model.PreferenceRule{
		ID:         uuid.New(),
		StaffID:    staffID,
		DayOfWeek:  day,
		TemplateID: templateID,
		Score:      score,
	}
}

// newAvailability 测试用可用性规则构造
func newAvailability(staffID uuid.UUID, day int, templateID *uuid.UUID, available bool) *model.AvailabilityRule {
	return &model.AvailabilityRule{
		ID:         uuid.New(),
		StaffID:    staffID,
		DayOfWeek:  day,
		TemplateID: templateID,
		Available:  available,
	}
}

// staffNames 按分配记录取出员工姓名集合
func staffNames(sc *Context, assignments []*model.Assignment) map[string]int {
	names := make(map[string]int)
	for _, a := range assignments {
		if s := sc.GetStaff(a.StaffID); s != nil {
			names[s.Name]++
		}
	}
	return names
}

// TestSolve_PreferenceOrdering 测试偏好高者优先：早班需2人，偏好 +0.5 和中性者入选，回避者落选
func TestSolve_PreferenceOrdering(t *testing.T) {
	morning := newTemplate("早班", []int{0}, "08:00", "16:00", 2, nil)
	a := newStaff("张三", nil, 5)
	b := newStaff("李四", nil, 5)
	c := newStaff("王五", nil, 5)

	sc := NewContext(testWeekStart,
		[]*model.Staff{a, b, c},
		[]*model.ShiftTemplate{morning},
		nil,
		[]*model.PreferenceRule{
			newPreference(a.ID, 0, &morning.ID, 0.5),
			newPreference(b.ID, 0, &morning.ID, -0.5),
		},
		nil,
	)

	result, err := NewGreedySolver().Solve(context.Background(), sc)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	if len(result.Assignments) != 2 {
		t.Fatalf("期望 2 条分配，得到 %d", len(result.Assignments))
	}
	names := staffNames(sc, result.Assignments)
	if names["张三"] != 1 || names["王五"] != 1 {
		t.Errorf("期望张三和王五入选，实际: %v", names)
	}
	if names["李四"] != 0 {
		t.Error("回避班次的李四不应入选")
	}
	if len(result.Unmet) != 0 {
		t.Errorf("槽位应完全满足，诊断: %v", result.Unmet)
	}
}

// TestSolve_WeeklyCap 测试周上限：上限为1的员工在同一次运行中不会被二次选中
func TestSolve_WeeklyCap(t *testing.T) {
	morning := newTemplate("早班", []int{0, 1}, "08:00", "16:00", 1, nil)
	a := newStaff("张三", nil, 1)
	b := newStaff("李四", nil, 5)

	sc := NewContext(testWeekStart,
		[]*model.Staff{a, b},
		[]*model.ShiftTemplate{morning},
		nil,
		[]*model.PreferenceRule{
			// 张三对两天都有最高偏好，但上限只允许一次
			newPreference(a.ID, 0, nil, 1.0),
			newPreference(a.ID, 1, nil, 1.0),
		},
		nil,
	)

	result, err := NewGreedySolver().Solve(context.Background(), sc)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	names := staffNames(sc, result.Assignments)
	if names["张三"] != 1 {
		t.Errorf("张三应恰好分配 1 次，实际 %d", names["张三"])
	}
	if names["李四"] != 1 {
		t.Errorf("李四应填补第二个槽位，实际 %d", names["李四"])
	}
}

// TestSolve_ExistingLoadCountsTowardCap 测试已有分配计入周上限
func TestSolve_ExistingLoadCountsTowardCap(t *testing.T) {
	morning := newTemplate("早班", []int{1}, "08:00", "16:00", 1, nil)
	a := newStaff("张三", nil, 1)

	existing := &model.Assignment{
		ID:            uuid.New(),
		TemplateID:    morning.ID,
		StaffID:       a.ID,
		WeekStartDate: "2026-01-05",
		DayOfWeek:     0,
		AssignedAt:    time.Now(),
	}

	sc := NewContext(testWeekStart,
		[]*model.Staff{a},
		[]*model.ShiftTemplate{morning},
		nil, nil,
		[]*model.Assignment{existing},
	)

	result, err := NewGreedySolver().Solve(context.Background(), sc)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	if len(result.Assignments) != 0 {
		t.Errorf("已达上限的员工不应再被分配，实际 %d 条", len(result.Assignments))
	}
	if len(result.Unmet) != 1 || result.Unmet[0].Reason != ReasonPoolExhausted {
		t.Errorf("期望 pool_exhausted 诊断，实际: %v", result.Unmet)
	}
}

// TestSolve_QuotaSatisfied 测试资质配额：至少 N 名持证者入选
func TestSolve_QuotaSatisfied(t *testing.T) {
	shift := newTemplate("病房班", []int{0}, "08:00", "20:00", 3, map[string]int{"nurse": 2})
	n1 := newStaff("张护士", []string{"nurse"}, 5)
	n2 := newStaff("李护士", []string{"nurse"}, 5)
	h1 := newStaff("王助理", nil, 5)
	h2 := newStaff("赵助理", nil, 5)

	sc := NewContext(testWeekStart,
		[]*model.Staff{n1, n2, h1, h2},
		[]*model.ShiftTemplate{shift},
		nil,
		[]*model.PreferenceRule{
			// 助理偏好更高，但配额保证两名护士入选
			newPreference(h1.ID, 0, nil, 1.0),
			newPreference(h2.ID, 0, nil, 1.0),
		},
		nil,
	)

	result, err := NewGreedySolver().Solve(context.Background(), sc)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	if len(result.Assignments) != 3 {
		t.Fatalf("期望 3 条分配，得到 %d", len(result.Assignments))
	}
	nurses := 0
	for _, a := range result.Assignments {
		if sc.GetStaff(a.StaffID).HasQualification("nurse") {
			nurses++
		}
	}
	if nurses < 2 {
		t.Errorf("配额要求至少 2 名护士，实际 %d", nurses)
	}
	if len(result.Unmet) != 0 {
		t.Errorf("配额应满足，诊断: %v", result.Unmet)
	}
}

// TestSolve_QuotaUnmet 测试配额失败：唯一候选无护士资质时槽位零分配并报告 quota_unmet
func TestSolve_QuotaUnmet(t *testing.T) {
	shift := newTemplate("病房班", []int{0}, "08:00", "20:00", 1, map[string]int{"nurse": 1})
	h := newStaff("王助理", nil, 5)

	sc := NewContext(testWeekStart,
		[]*model.Staff{h},
		[]*model.ShiftTemplate{shift},
		nil, nil, nil,
	)

	result, err := NewGreedySolver().Solve(context.Background(), sc)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	if len(result.Assignments) != 0 {
		t.Errorf("配额无法满足时不应产生分配，实际 %d 条", len(result.Assignments))
	}
	if len(result.Unmet) != 1 {
		t.Fatalf("期望 1 条诊断，得到 %d", len(result.Unmet))
	}
	u := result.Unmet[0]
	if u.Reason != ReasonQuotaUnmet || u.Qualification != "nurse" || u.Shortage != 1 {
		t.Errorf("配额诊断内容错误: %+v", u)
	}
}

// TestSolve_NoSameDayOverlap 测试同日时段重叠的班次不会分给同一员工
func TestSolve_NoSameDayOverlap(t *testing.T) {
	early := newTemplate("早班", []int{0}, "08:00", "16:00", 1, nil)
	mid := newTemplate("中班", []int{0}, "12:00", "20:00", 1, nil)
	a := newStaff("张三", nil, 5)
	b := newStaff("李四", nil, 5)

	sc := NewContext(testWeekStart,
		[]*model.Staff{a, b},
		[]*model.ShiftTemplate{early, mid},
		nil,
		[]*model.PreferenceRule{
			newPreference(a.ID, 0, nil, 1.0),
		},
		nil,
	)

	result, err := NewGreedySolver().Solve(context.Background(), sc)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	if len(result.Assignments) != 2 {
		t.Fatalf("期望 2 条分配，得到 %d", len(result.Assignments))
	}
	names := staffNames(sc, result.Assignments)
	if names["张三"] != 1 || names["李四"] != 1 {
		t.Errorf("重叠班次应分给不同员工，实际: %v", names)
	}
}

// TestSolve_AvailabilityExcludes 测试显式不可用规则排除员工
func TestSolve_AvailabilityExcludes(t *testing.T) {
	morning := newTemplate("早班", []int{0}, "08:00", "16:00", 1, nil)
	a := newStaff("张三", nil, 5)
	b := newStaff("李四", nil, 5)

	sc := NewContext(testWeekStart,
		[]*model.Staff{a, b},
		[]*model.ShiftTemplate{morning},
		[]*model.AvailabilityRule{
			newAvailability(a.ID, 0, nil, false), // 张三周一全天不可用
		},
		[]*model.PreferenceRule{
			newPreference(a.ID, 0, nil, 1.0),
		},
		nil,
	)

	result, err := NewGreedySolver().Solve(context.Background(), sc)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	names := staffNames(sc, result.Assignments)
	if names["张三"] != 0 || names["李四"] != 1 {
		t.Errorf("不可用的张三不应入选，实际: %v", names)
	}
}

// TestSolve_Deterministic 测试相同输入两次运行产生相同的员工-槽位映射
func TestSolve_Deterministic(t *testing.T) {
	morning := newTemplate("早班", []int{0, 1, 2}, "08:00", "16:00", 2, nil)
	evening := newTemplate("晚班", []int{0, 1, 2}, "16:00", "23:00", 1, nil)
	staff := []*model.Staff{
		newStaff("张三", nil, 3),
		newStaff("李四", nil, 3),
		newStaff("王五", nil, 3),
		newStaff("赵六", nil, 3),
	}
	prefs := []*model.PreferenceRule{
		newPreference(staff[0].ID, 0, nil, 0.3),
		newPreference(staff[1].ID, 1, nil, -0.2),
		newPreference(staff[2].ID, 2, &evening.ID, 0.8),
	}

	run := func() map[string]string {
		sc := NewContext(testWeekStart, staff,
			[]*model.ShiftTemplate{morning, evening}, nil, prefs, nil)
		result, err := NewGreedySolver().Solve(context.Background(), sc)
		if err != nil {
			t.Fatalf("求解失败: %v", err)
		}
		mapping := make(map[string]string)
		for _, a := range result.Assignments {
			key := a.TemplateID.String() + "-" + a.Date() + "-" + a.StaffID.String()
			mapping[key] = a.StaffID.String()
		}
		return mapping
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("两次运行分配数不同: %d vs %d", len(first), len(second))
	}
	for key := range first {
		if _, ok := second[key]; !ok {
			t.Errorf("第二次运行缺少分配 %s", key)
		}
	}
}

// TestSolve_LoadPenaltySpreadsShifts 测试负载惩罚使班次分散到空闲员工
func TestSolve_LoadPenaltySpreadsShifts(t *testing.T) {
	daily := newTemplate("日班", []int{0, 1, 2, 3}, "08:00", "16:00", 1, nil)
	a := newStaff("张三", nil, 10)
	b := newStaff("李四", nil, 10)

	sc := NewContext(testWeekStart,
		[]*model.Staff{a, b},
		[]*model.ShiftTemplate{daily},
		nil, nil, nil,
	)

	result, err := NewGreedySolver().Solve(context.Background(), sc)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	names := staffNames(sc, result.Assignments)
	// 4 个槽位在两名中性员工间平分
	if names["张三"] != 2 || names["李四"] != 2 {
		t.Errorf("期望各分配 2 次，实际: %v", names)
	}
}

// TestSolve_Statistics 测试运行统计数字
func TestSolve_Statistics(t *testing.T) {
	morning := newTemplate("早班", []int{0, 1}, "08:00", "16:00", 2, nil)
	a := newStaff("张三", nil, 5)

	sc := NewContext(testWeekStart,
		[]*model.Staff{a},
		[]*model.ShiftTemplate{morning},
		nil, nil, nil,
	)

	result, err := NewGreedySolver().Solve(context.Background(), sc)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	stats := result.Statistics
	if stats.TotalSlots != 2 {
		t.Errorf("总槽位数错误: %d", stats.TotalSlots)
	}
	if stats.FilledSlots != 0 {
		t.Errorf("两个槽位均未满员，FilledSlots 应为 0，实际 %d", stats.FilledSlots)
	}
	if stats.TotalAssignments != 2 {
		t.Errorf("总分配数错误: %d", stats.TotalAssignments)
	}
	if stats.FillRate != 0 {
		t.Errorf("填充率错误: %f", stats.FillRate)
	}
}

// TestSolve_ContextCancelled 测试上下文取消时求解中止
func TestSolve_ContextCancelled(t *testing.T) {
	morning := newTemplate("早班", []int{0}, "08:00", "16:00", 1, nil)
	sc := NewContext(testWeekStart,
		[]*model.Staff{newStaff("张三", nil, 5)},
		[]*model.ShiftTemplate{morning},
		nil, nil, nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewGreedySolver().Solve(ctx, sc); err == nil {
		t.Error("取消的上下文应返回错误")
	}
}
