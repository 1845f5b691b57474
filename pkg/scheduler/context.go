// Package scheduler 提供排班引擎核心算法
package scheduler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// DefaultLoadPenalty 默认负载惩罚系数（每已排一个班次扣减的分数）
const DefaultLoadPenalty = 0.1

// ruleKey 规则索引键，template 为 uuid.Nil 表示对任意班次生效
type ruleKey struct {
	staff    uuid.UUID
	day      int
	template uuid.UUID
}

// dayKey 员工某天的分配索引键
type dayKey struct {
	staff uuid.UUID
	day   int
}

// Context 一次排班运行的内存快照
// 所有数据在运行开始前一次性载入，算法过程中不做任何 I/O
type Context struct {
	// 输入数据
	WeekStart    time.Time // 已归一化到周一零点
	Staff        []*model.Staff
	Templates    []*model.ShiftTemplate
	Availability []*model.AvailabilityRule
	Preferences  []*model.PreferenceRule
	Existing     []*model.Assignment // 目标周已有的分配（未清除时计入周上限）

	// 负载惩罚系数
	LoadPenalty float64

	// 索引缓存
	staffMap     map[uuid.UUID]*model.Staff
	templateMap  map[uuid.UUID]*model.ShiftTemplate
	availability map[ruleKey]bool    // 显式规则：key -> is_available
	preference   map[ruleKey]float64 // 显式规则：key -> score
	existingLoad map[uuid.UUID]int
	runLoad      map[uuid.UUID]int
	dayTemplates map[dayKey][]uuid.UUID // 员工某天已占用的班次模板（已有+本次运行）

	// 本次运行产生的分配
	created []*model.Assignment
}

// NewContext 创建排班上下文并建立索引
func NewContext(
	weekStart time.Time,
	staff []*model.Staff,
	templates []*model.ShiftTemplate,
	availability []*model.AvailabilityRule,
	preferences []*model.PreferenceRule,
	existing []*model.Assignment,
) *Context {
	c := &Context{
		WeekStart:    model.NormalizeWeekStart(weekStart),
		Staff:        staff,
		Templates:    templates,
		Availability: availability,
		Preferences:  preferences,
		Existing:     existing,
		LoadPenalty:  DefaultLoadPenalty,
		staffMap:     make(map[uuid.UUID]*model.Staff),
		templateMap:  make(map[uuid.UUID]*model.ShiftTemplate),
		availability: make(map[ruleKey]bool),
		preference:   make(map[ruleKey]float64),
		existingLoad: make(map[uuid.UUID]int),
		runLoad:      make(map[uuid.UUID]int),
		dayTemplates: make(map[dayKey][]uuid.UUID),
		created:      make([]*model.Assignment, 0),
	}

	for _, s := range staff {
		c.staffMap[s.ID] = s
	}
	for _, t := range templates {
		c.templateMap[t.ID] = t
	}
	for _, r := range availability {
		c.availability[newRuleKey(r.StaffID, r.DayOfWeek, r.TemplateID)] = r.Available
	}
	for _, r := range preferences {
		c.preference[newRuleKey(r.StaffID, r.DayOfWeek, r.TemplateID)] = r.Score
	}
	for _, a := range existing {
		c.existingLoad[a.StaffID]++
		key := dayKey{staff: a.StaffID, day: a.DayOfWeek}
		c.dayTemplates[key] = append(c.dayTemplates[key], a.TemplateID)
	}

	return c
}

// newRuleKey 构造规则键
func newRuleKey(staff uuid.UUID, day int, template *uuid.UUID) ruleKey {
	k := ruleKey{staff: staff, day: day}
	if template != nil {
		k.template = *template
	}
	return k
}

// GetStaff 获取员工
func (c *Context) GetStaff(id uuid.UUID) *model.Staff {
	return c.staffMap[id]
}

// GetTemplate 获取班次模板
func (c *Context) GetTemplate(id uuid.UUID) *model.ShiftTemplate {
	return c.templateMap[id]
}

// Load 返回员工在目标周的总负载（已有分配 + 本次运行分配）
func (c *Context) Load(staffID uuid.UUID) int {
	return c.existingLoad[staffID] + c.runLoad[staffID]
}

// RunLoad 返回员工在本次运行中的分配数
func (c *Context) RunLoad(staffID uuid.UUID) int {
	return c.runLoad[staffID]
}

// Created 返回本次运行产生的所有分配
func (c *Context) Created() []*model.Assignment {
	return c.created
}

// AddAssignment 记录一条新分配并立即更新负载计数
// 后续槽位的评估会立即看到更新后的公平性惩罚
func (c *Context) AddAssignment(a *model.Assignment) {
	c.created = append(c.created, a)
	c.runLoad[a.StaffID]++
	key := dayKey{staff: a.StaffID, day: a.DayOfWeek}
	c.dayTemplates[key] = append(c.dayTemplates[key], a.TemplateID)
}

// availableFor 检查员工某天某班次是否可用
// 精确规则 (day, template) 优先于日级规则 (day, 任意班次)；无规则视为可用
func (c *Context) availableFor(staffID uuid.UUID, day int, templateID uuid.UUID) bool {
	if avail, ok := c.availability[ruleKey{staff: staffID, day: day, template: templateID}]; ok {
		return avail
	}
	if avail, ok := c.availability[ruleKey{staff: staffID, day: day}]; ok {
		return avail
	}
	return true
}

// preferenceFor 查询员工对某天某班次的偏好分数
// 精确规则优先于日级规则；无规则视为中性 0.0
func (c *Context) preferenceFor(staffID uuid.UUID, day int, templateID uuid.UUID) float64 {
	if score, ok := c.preference[ruleKey{staff: staffID, day: day, template: templateID}]; ok {
		return score
	}
	if score, ok := c.preference[ruleKey{staff: staffID, day: day}]; ok {
		return score
	}
	return 0.0
}

// templatesOnDay 返回员工某天已占用的班次模板
func (c *Context) templatesOnDay(staffID uuid.UUID, day int) []uuid.UUID {
	return c.dayTemplates[dayKey{staff: staffID, day: day}]
}
