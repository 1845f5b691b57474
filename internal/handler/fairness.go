// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/internal/metrics"
	"github.com/shiftorg/shiftorg/internal/repository"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
	"github.com/shiftorg/shiftorg/pkg/stats"
)

// FairnessHandler 公平性指标处理器
type FairnessHandler struct {
	staff       *repository.StaffRepository
	rules       *repository.RuleRepository
	assignments *repository.AssignmentRepository
	snapshots   *repository.MetricRepository
}

// NewFairnessHandler 创建公平性处理器
func NewFairnessHandler(
	staff *repository.StaffRepository,
	rules *repository.RuleRepository,
	assignments *repository.AssignmentRepository,
	snapshots *repository.MetricRepository,
) *FairnessHandler {
	return &FairnessHandler{staff: staff, rules: rules, assignments: assignments, snapshots: snapshots}
}

// parsePeriod 从查询参数解析统计周期
// 支持 period_days 或 start_date/end_date，缺省为全部历史
func parsePeriod(r *http.Request) (stats.Period, error) {
	q := r.URL.Query()

	var periodDays *int
	if raw := q.Get("period_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return stats.Period{}, errors.InvalidInput("period_days", "应为整数: "+raw)
		}
		periodDays = &days
	}

	var startDate, endDate *time.Time
	if raw := q.Get("start_date"); raw != "" {
		t, err := parseDate("start_date", raw)
		if err != nil {
			return stats.Period{}, err
		}
		startDate = &t
	}
	if raw := q.Get("end_date"); raw != "" {
		t, err := parseDate("end_date", raw)
		if err != nil {
			return stats.Period{}, err
		}
		endDate = &t
	}

	return stats.ResolvePeriod(periodDays, startDate, endDate, time.Now())
}

// GetStaffMetric 计算单名员工的公平性指标
// GET /api/v1/fairness/{id}?period_days=&start_date=&end_date=&save=
func (h *FairnessHandler) GetStaffMetric(w http.ResponseWriter, r *http.Request) {
	staffID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.staff.GetByID(r.Context(), staffID); err != nil {
		respondError(w, err)
		return
	}

	period, err := parsePeriod(r)
	if err != nil {
		respondError(w, err)
		return
	}

	analyzer, assignments, err := h.buildAnalyzer(r, &staffID)
	if err != nil {
		respondError(w, err)
		return
	}

	metric := analyzer.Analyze(staffID, assignments, period)
	metrics.RecordFairnessCalculation()

	// ?save=true 时持久化指标快照
	if r.URL.Query().Get("save") == "true" {
		if err := h.snapshots.Save(r.Context(), metric); err != nil {
			respondError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, metric)
}

// ListMetrics 计算全部员工的公平性指标
// GET /api/v1/fairness?period_days=&start_date=&end_date=
func (h *FairnessHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		respondError(w, err)
		return
	}

	staff, err := h.staff.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	analyzer, assignments, err := h.buildAnalyzer(r, nil)
	if err != nil {
		respondError(w, err)
		return
	}

	list := analyzer.AnalyzeAll(staff, assignments, period)
	metrics.RecordFairnessCalculation()

	if list == nil {
		list = []*model.FairnessMetric{}
	}
	respondJSON(w, http.StatusOK, list)
}

// ListSnapshots 查询某员工的历史指标快照
// GET /api/v1/fairness/{id}/history
func (h *FairnessHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	staffID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	list, err := h.snapshots.ListByStaff(r.Context(), staffID)
	if err != nil {
		respondError(w, err)
		return
	}
	if list == nil {
		list = []*model.FairnessMetric{}
	}
	respondJSON(w, http.StatusOK, list)
}

// buildAnalyzer 载入偏好规则与分配记录
func (h *FairnessHandler) buildAnalyzer(r *http.Request, staffID *uuid.UUID) (*stats.FairnessAnalyzer, []*model.Assignment, error) {
	preferences, err := h.rules.ListPreferences(r.Context(), staffID)
	if err != nil {
		return nil, nil, err
	}

	filter := repository.ListFilter{}
	if staffID != nil {
		filter.StaffID = staffID
	}
	assignments, err := h.assignments.List(r.Context(), filter)
	if err != nil {
		return nil, nil, err
	}

	return stats.NewFairnessAnalyzer(preferences), assignments, nil
}
