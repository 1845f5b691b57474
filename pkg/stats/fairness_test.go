package stats

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
)

var analyzerNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

// newAssignment 测试用分配记录构造
func newAssignment(staffID, templateID uuid.UUID, weekStart string, day int) *model.Assignment {
	return &model.Assignment{
		ID:            uuid.New(),
		TemplateID:    templateID,
		StaffID:       staffID,
		WeekStartDate: weekStart,
		DayOfWeek:     day,
		AssignedAt:    time.Now(),
	}
}

// TestResolvePeriod 测试周期参数解析
func TestResolvePeriod(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	days := 30
	negative := -1

	t.Run("显式起止日期", func(t *testing.T) {
		p, err := ResolvePeriod(nil, &start, &end, analyzerNow)
		if err != nil {
			t.Fatalf("解析失败: %v", err)
		}
		if !p.Start.Equal(start) || !p.End.Equal(end) {
			t.Errorf("周期错误: %v - %v", p.Start, p.End)
		}
	})

	t.Run("结束早于开始", func(t *testing.T) {
		_, err := ResolvePeriod(nil, &end, &start, analyzerNow)
		if err == nil {
			t.Fatal("应返回错误")
		}
		if !errors.Is(err, errors.CodeInvalidPeriod) {
			t.Errorf("期望 InvalidPeriod 错误，实际: %v", err)
		}
	})

	t.Run("尾随天数", func(t *testing.T) {
		p, err := ResolvePeriod(&days, nil, nil, analyzerNow)
		if err != nil {
			t.Fatalf("解析失败: %v", err)
		}
		if !p.Start.Equal(analyzerNow.AddDate(0, 0, -30)) || !p.End.Equal(analyzerNow) {
			t.Errorf("周期错误: %v - %v", p.Start, p.End)
		}
	})

	t.Run("负天数", func(t *testing.T) {
		if _, err := ResolvePeriod(&negative, nil, nil, analyzerNow); err == nil {
			t.Error("负天数应返回错误")
		}
	})

	t.Run("默认全部历史", func(t *testing.T) {
		p, err := ResolvePeriod(nil, nil, nil, analyzerNow)
		if err != nil {
			t.Fatalf("解析失败: %v", err)
		}
		if !p.Start.IsZero() || !p.End.Equal(analyzerNow) {
			t.Errorf("默认周期应覆盖全部历史: %v - %v", p.Start, p.End)
		}
	})
}

// TestAnalyze_ZeroAssignments 测试周期内零分配时所有指标为零
func TestAnalyze_ZeroAssignments(t *testing.T) {
	staffID := uuid.New()
	analyzer := NewFairnessAnalyzer(nil)
	period := Period{End: analyzerNow}

	m := analyzer.Analyze(staffID, nil, period)

	if m.TotalShifts != 0 || m.PreferredShiftsCount != 0 || m.AvoidedShiftsCount != 0 {
		t.Errorf("计数应全为零: %+v", m)
	}
	if m.PreferenceFulfillmentScore != 0.0 {
		t.Errorf("履约分数应为 0.0，实际 %f", m.PreferenceFulfillmentScore)
	}
	if m.StaffID != staffID {
		t.Error("指标员工ID错误")
	}
}

// TestAnalyze_PreferenceCounts 测试偏好/回避班次计数与平均履约分数
func TestAnalyze_PreferenceCounts(t *testing.T) {
	staffID := uuid.New()
	tmplID := uuid.New()
	otherTmpl := uuid.New()

	prefs := []*model.PreferenceRule{
		{ID: uuid.New(), StaffID: staffID, DayOfWeek: 0, TemplateID: &tmplID, Score: 0.8},
		{ID: uuid.New(), StaffID: staffID, DayOfWeek: 1, TemplateID: nil, Score: -0.4},
	}
	analyzer := NewFairnessAnalyzer(prefs)

	assignments := []*model.Assignment{
		newAssignment(staffID, tmplID, "2026-01-05", 0),    // 精确匹配 +0.8
		newAssignment(staffID, tmplID, "2026-01-05", 1),    // 日级匹配 -0.4
		newAssignment(staffID, otherTmpl, "2026-01-05", 2), // 无规则，中性 0.0 计入平均
	}
	period := Period{End: analyzerNow}

	m := analyzer.Analyze(staffID, assignments, period)

	if m.TotalShifts != 3 {
		t.Fatalf("总班次应为 3，实际 %d", m.TotalShifts)
	}
	if m.PreferredShiftsCount != 1 {
		t.Errorf("偏好班次应为 1，实际 %d", m.PreferredShiftsCount)
	}
	if m.AvoidedShiftsCount != 1 {
		t.Errorf("回避班次应为 1，实际 %d", m.AvoidedShiftsCount)
	}
	want := (0.8 - 0.4 + 0.0) / 3
	if math.Abs(m.PreferenceFulfillmentScore-want) > 1e-9 {
		t.Errorf("履约分数期望 %f，实际 %f", want, m.PreferenceFulfillmentScore)
	}
}

// TestAnalyze_PeriodFilter 测试周期外与他人的分配被排除
func TestAnalyze_PeriodFilter(t *testing.T) {
	staffID := uuid.New()
	otherStaff := uuid.New()
	tmplID := uuid.New()
	analyzer := NewFairnessAnalyzer(nil)

	assignments := []*model.Assignment{
		newAssignment(staffID, tmplID, "2026-01-05", 0),   // 周期内
		newAssignment(staffID, tmplID, "2025-12-01", 0),   // 周期前
		newAssignment(otherStaff, tmplID, "2026-01-05", 0), // 他人
	}
	period := Period{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   analyzerNow,
	}

	m := analyzer.Analyze(staffID, assignments, period)
	if m.TotalShifts != 1 {
		t.Errorf("周期过滤后应剩 1 条，实际 %d", m.TotalShifts)
	}
}

// TestAnalyzeAll 测试批量计算顺序与员工列表一致
func TestAnalyzeAll(t *testing.T) {
	a := &model.Staff{ID: uuid.New(), Name: "张三"}
	b := &model.Staff{ID: uuid.New(), Name: "李四"}
	tmplID := uuid.New()
	analyzer := NewFairnessAnalyzer(nil)

	assignments := []*model.Assignment{
		newAssignment(a.ID, tmplID, "2026-01-05", 0),
		newAssignment(a.ID, tmplID, "2026-01-05", 1),
		newAssignment(b.ID, tmplID, "2026-01-05", 2),
	}
	period := Period{End: analyzerNow}

	metrics := analyzer.AnalyzeAll([]*model.Staff{a, b}, assignments, period)

	if len(metrics) != 2 {
		t.Fatalf("期望 2 条指标，得到 %d", len(metrics))
	}
	if metrics[0].StaffID != a.ID || metrics[0].TotalShifts != 2 {
		t.Errorf("张三指标错误: %+v", metrics[0])
	}
	if metrics[1].StaffID != b.ID || metrics[1].TotalShifts != 1 {
		t.Errorf("李四指标错误: %+v", metrics[1])
	}
}
