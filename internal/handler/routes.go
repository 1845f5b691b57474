// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/shiftorg/shiftorg/internal/config"
	"github.com/shiftorg/shiftorg/internal/repository"
)

// Dependencies 处理器集合
type Dependencies struct {
	Staff      *StaffHandler
	Rules      *RuleHandler
	Templates  *TemplateHandler
	Assignment *AssignmentHandler
	Schedule   *ScheduleHandler
	Fairness   *FairnessHandler
}

// NewDependencies 组装仓储与处理器
func NewDependencies(db repository.DB, cfg *config.Config) *Dependencies {
	staffRepo := repository.NewStaffRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	metricRepo := repository.NewMetricRepository(db)

	return &Dependencies{
		Staff:      NewStaffHandler(staffRepo),
		Rules:      NewRuleHandler(ruleRepo, staffRepo),
		Templates:  NewTemplateHandler(templateRepo),
		Assignment: NewAssignmentHandler(assignmentRepo, staffRepo, templateRepo),
		Schedule: NewScheduleHandler(
			staffRepo, ruleRepo, templateRepo, assignmentRepo,
			cfg.Scheduler.DefaultTimeout, cfg.Scheduler.LoadPenalty,
		),
		Fairness: NewFairnessHandler(staffRepo, ruleRepo, assignmentRepo, metricRepo),
	}
}

// RegisterRoutes 注册 API v1 路由
func (d *Dependencies) RegisterRoutes(mux *http.ServeMux) {
	// 员工
	mux.HandleFunc("POST /api/v1/staff", d.Staff.Create)
	mux.HandleFunc("GET /api/v1/staff", d.Staff.List)
	mux.HandleFunc("GET /api/v1/staff/{id}", d.Staff.Get)
	mux.HandleFunc("PUT /api/v1/staff/{id}", d.Staff.Update)
	mux.HandleFunc("DELETE /api/v1/staff/{id}", d.Staff.Delete)

	// 可用性与偏好规则
	mux.HandleFunc("POST /api/v1/staff/{id}/availability", d.Rules.SetAvailability)
	mux.HandleFunc("GET /api/v1/staff/{id}/availability", d.Rules.ListAvailability)
	mux.HandleFunc("POST /api/v1/staff/{id}/preferences", d.Rules.SetPreference)
	mux.HandleFunc("GET /api/v1/staff/{id}/preferences", d.Rules.ListPreferences)
	mux.HandleFunc("DELETE /api/v1/availability/{id}", d.Rules.DeleteAvailability)
	mux.HandleFunc("DELETE /api/v1/preferences/{id}", d.Rules.DeletePreference)

	// 班次模板
	mux.HandleFunc("POST /api/v1/templates", d.Templates.Create)
	mux.HandleFunc("GET /api/v1/templates", d.Templates.List)
	mux.HandleFunc("GET /api/v1/templates/{id}", d.Templates.Get)
	mux.HandleFunc("PUT /api/v1/templates/{id}", d.Templates.Update)
	mux.HandleFunc("DELETE /api/v1/templates/{id}", d.Templates.Delete)

	// 分配
	mux.HandleFunc("POST /api/v1/assignments", d.Assignment.Create)
	mux.HandleFunc("GET /api/v1/assignments", d.Assignment.List)
	mux.HandleFunc("DELETE /api/v1/assignments/{id}", d.Assignment.Delete)
	mux.HandleFunc("DELETE /api/v1/assignments/week/{week_start}", d.Assignment.DeleteWeek)

	// 自动排班
	mux.HandleFunc("POST /api/v1/schedule/auto", d.Schedule.AutoSchedule)

	// 公平性
	mux.HandleFunc("GET /api/v1/fairness", d.Fairness.ListMetrics)
	mux.HandleFunc("GET /api/v1/fairness/{id}", d.Fairness.GetStaffMetric)
	mux.HandleFunc("GET /api/v1/fairness/{id}/history", d.Fairness.ListSnapshots)
}
