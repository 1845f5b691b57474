// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/internal/repository"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// AssignmentHandler 排班分配处理器
// 手工创建允许与自动排班并存，重复分配由唯一索引拒绝
type AssignmentHandler struct {
	assignments *repository.AssignmentRepository
	staff       *repository.StaffRepository
	templates   *repository.TemplateRepository
}

// NewAssignmentHandler 创建分配处理器
func NewAssignmentHandler(
	assignments *repository.AssignmentRepository,
	staff *repository.StaffRepository,
	templates *repository.TemplateRepository,
) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, staff: staff, templates: templates}
}

// AssignmentInput 手工分配请求
type AssignmentInput struct {
	TemplateID    uuid.UUID `json:"shift_template_id"`
	StaffID       uuid.UUID `json:"staff_id"`
	WeekStartDate string    `json:"week_start_date"`
	DayOfWeek     int       `json:"day_of_week"`
}

// Create 手工创建分配
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in AssignmentInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := validateDayOfWeek(in.DayOfWeek); err != nil {
		respondError(w, err)
		return
	}
	weekStart, err := parseDate("week_start_date", in.WeekStartDate)
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.staff.GetByID(r.Context(), in.StaffID); err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.templates.GetByID(r.Context(), in.TemplateID); err != nil {
		respondError(w, err)
		return
	}

	assign := &model.Assignment{
		TemplateID:    in.TemplateID,
		StaffID:       in.StaffID,
		WeekStartDate: model.NormalizeWeekStart(weekStart).Format(model.DateLayout),
		DayOfWeek:     in.DayOfWeek,
	}
	if err := h.assignments.Create(r.Context(), assign); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, assign)
}

// List 查询分配，支持 week_start / staff_id 查询参数
// GET /api/v1/assignments
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ListFilter{}

	if weekStart := r.URL.Query().Get("week_start"); weekStart != "" {
		parsed, err := parseDate("week_start", weekStart)
		if err != nil {
			respondError(w, err)
			return
		}
		filter.WeekStart = model.NormalizeWeekStart(parsed).Format(model.DateLayout)
	}
	if staffRaw := r.URL.Query().Get("staff_id"); staffRaw != "" {
		staffID, err := uuid.Parse(staffRaw)
		if err != nil {
			respondError(w, errors.InvalidInput("staff_id", "不是合法的UUID: "+staffRaw))
			return
		}
		filter.StaffID = &staffID
	}

	list, err := h.assignments.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	if list == nil {
		list = []*model.Assignment{}
	}
	respondJSON(w, http.StatusOK, list)
}

// Delete 删除单条分配
// DELETE /api/v1/assignments/{id}
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.assignments.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true, "id": id})
}

// DeleteWeek 清除某周的全部分配
// DELETE /api/v1/assignments/week/{week_start}
func (h *AssignmentHandler) DeleteWeek(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("week_start")
	parsed, err := parseDate("week_start", raw)
	if err != nil {
		respondError(w, err)
		return
	}
	weekStart := model.NormalizeWeekStart(parsed).Format(model.DateLayout)

	deleted, err := h.assignments.DeleteByWeek(r.Context(), weekStart)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"week_start": weekStart,
		"deleted":    deleted,
	})
}
