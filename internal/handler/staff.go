// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/shiftorg/shiftorg/internal/repository"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// StaffHandler 员工管理处理器
type StaffHandler struct {
	staff *repository.StaffRepository
}

// NewStaffHandler 创建员工处理器
func NewStaffHandler(staff *repository.StaffRepository) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// StaffInput 员工创建/更新请求
type StaffInput struct {
	Name             string   `json:"name"`
	Qualifications   []string `json:"qualifications"`
	MaxShiftsPerWeek *int     `json:"max_shifts_per_week"`
}

// validate 校验员工输入
func (in *StaffInput) validate() error {
	ve := &errors.ValidationErrors{}
	if in.Name == "" {
		ve.Add("name", "员工姓名不能为空")
	}
	if in.MaxShiftsPerWeek != nil && *in.MaxShiftsPerWeek < 0 {
		ve.Add("max_shifts_per_week", "周班次上限不能为负")
	}
	if ve.HasErrors() {
		return ve.ToAppError()
	}
	return nil
}

// Create 创建员工
// POST /api/v1/staff
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in StaffInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, err)
		return
	}

	staff := &model.Staff{
		Name:             in.Name,
		Qualifications:   in.Qualifications,
		MaxShiftsPerWeek: 5,
	}
	if in.MaxShiftsPerWeek != nil {
		staff.MaxShiftsPerWeek = *in.MaxShiftsPerWeek
	}
	if staff.Qualifications == nil {
		staff.Qualifications = []string{}
	}

	if err := h.staff.Create(r.Context(), staff); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, staff)
}

// List 查询员工列表
// GET /api/v1/staff
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.staff.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if list == nil {
		list = []*model.Staff{}
	}
	respondJSON(w, http.StatusOK, list)
}

// Get 获取单个员工
// GET /api/v1/staff/{id}
func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	staff, err := h.staff.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, staff)
}

// Update 更新员工
// PUT /api/v1/staff/{id}
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var in StaffInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, err)
		return
	}

	staff, err := h.staff.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	staff.Name = in.Name
	if in.Qualifications != nil {
		staff.Qualifications = in.Qualifications
	}
	if in.MaxShiftsPerWeek != nil {
		staff.MaxShiftsPerWeek = *in.MaxShiftsPerWeek
	}

	if err := h.staff.Update(r.Context(), staff); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, staff)
}

// Delete 删除员工
// DELETE /api/v1/staff/{id}
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.staff.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true, "id": id})
}
