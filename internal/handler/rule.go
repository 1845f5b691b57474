// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/internal/repository"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// RuleHandler 可用性与偏好规则处理器
type RuleHandler struct {
	rules *repository.RuleRepository
	staff *repository.StaffRepository
}

// NewRuleHandler 创建规则处理器
func NewRuleHandler(rules *repository.RuleRepository, staff *repository.StaffRepository) *RuleHandler {
	return &RuleHandler{rules: rules, staff: staff}
}

// AvailabilityInput 可用性规则请求
type AvailabilityInput struct {
	DayOfWeek  int        `json:"day_of_week"`
	TemplateID *uuid.UUID `json:"shift_template_id,omitempty"`
	Available  bool       `json:"is_available"`
}

// PreferenceInput 偏好规则请求
type PreferenceInput struct {
	DayOfWeek  int        `json:"day_of_week"`
	TemplateID *uuid.UUID `json:"shift_template_id,omitempty"`
	Score      float64    `json:"preference_score"`
}

// SetAvailability 写入可用性规则（同键替换）
// POST /api/v1/staff/{id}/availability
func (h *RuleHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	staffID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.staff.GetByID(r.Context(), staffID); err != nil {
		respondError(w, err)
		return
	}

	var in AvailabilityInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := validateDayOfWeek(in.DayOfWeek); err != nil {
		respondError(w, err)
		return
	}

	rule := &model.AvailabilityRule{
		StaffID:    staffID,
		DayOfWeek:  in.DayOfWeek,
		TemplateID: in.TemplateID,
		Available:  in.Available,
	}
	if err := h.rules.SetAvailability(r.Context(), rule); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

// ListAvailability 查询某员工的可用性规则
// GET /api/v1/staff/{id}/availability
func (h *RuleHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	staffID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	list, err := h.rules.ListAvailability(r.Context(), &staffID)
	if err != nil {
		respondError(w, err)
		return
	}
	if list == nil {
		list = []*model.AvailabilityRule{}
	}
	respondJSON(w, http.StatusOK, list)
}

// SetPreference 写入偏好规则（同键替换）
// POST /api/v1/staff/{id}/preferences
func (h *RuleHandler) SetPreference(w http.ResponseWriter, r *http.Request) {
	staffID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.staff.GetByID(r.Context(), staffID); err != nil {
		respondError(w, err)
		return
	}

	var in PreferenceInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := validateDayOfWeek(in.DayOfWeek); err != nil {
		respondError(w, err)
		return
	}
	if in.Score < -1.0 || in.Score > 1.0 {
		respondError(w, errors.InvalidInput("preference_score", "取值范围为 [-1.0, 1.0]"))
		return
	}

	rule := &model.PreferenceRule{
		StaffID:    staffID,
		DayOfWeek:  in.DayOfWeek,
		TemplateID: in.TemplateID,
		Score:      in.Score,
	}
	if err := h.rules.SetPreference(r.Context(), rule); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

// ListPreferences 查询某员工的偏好规则
// GET /api/v1/staff/{id}/preferences
func (h *RuleHandler) ListPreferences(w http.ResponseWriter, r *http.Request) {
	staffID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	list, err := h.rules.ListPreferences(r.Context(), &staffID)
	if err != nil {
		respondError(w, err)
		return
	}
	if list == nil {
		list = []*model.PreferenceRule{}
	}
	respondJSON(w, http.StatusOK, list)
}

// DeleteAvailability 删除可用性规则
// DELETE /api/v1/availability/{id}
func (h *RuleHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.rules.DeleteAvailability(r.Context(), id); err != nil {
		respondError(w, errors.NotFound("可用性规则", id.String()))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true, "id": id})
}

// DeletePreference 删除偏好规则
// DELETE /api/v1/preferences/{id}
func (h *RuleHandler) DeletePreference(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.rules.DeletePreference(r.Context(), id); err != nil {
		respondError(w, errors.NotFound("偏好规则", id.String()))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true, "id": id})
}
