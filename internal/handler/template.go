// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/shiftorg/shiftorg/internal/repository"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// TemplateHandler 班次模板处理器
type TemplateHandler struct {
	templates *repository.TemplateRepository
}

// NewTemplateHandler 创建班次模板处理器
func NewTemplateHandler(templates *repository.TemplateRepository) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// TemplateInput 班次模板创建/更新请求
type TemplateInput struct {
	Name                   string         `json:"name"`
	DaysOfWeek             []int          `json:"days_of_week"`
	StartTime              string         `json:"start_time"`
	EndTime                string         `json:"end_time"`
	RequiredStaff          *int           `json:"required_staff"`
	RequiredQualifications map[string]int `json:"required_qualifications"`
	IsActive               *bool          `json:"is_active"`
}

// validate 校验班次模板输入
func (in *TemplateInput) validate() error {
	ve := &errors.ValidationErrors{}
	if in.Name == "" {
		ve.Add("name", "模板名称不能为空")
	}
	if len(in.DaysOfWeek) == 0 {
		ve.Add("days_of_week", "至少指定一个循环星期")
	}
	for _, d := range in.DaysOfWeek {
		if !model.ValidDayOfWeek(d) {
			ve.Add("days_of_week", "星期取值范围为 0-6（周一=0）")
			break
		}
	}
	if _, err := model.ParseClock(in.StartTime); err != nil {
		ve.Add("start_time", "时间格式应为 HH:MM")
	}
	if _, err := model.ParseClock(in.EndTime); err != nil {
		ve.Add("end_time", "时间格式应为 HH:MM")
	}
	if in.RequiredStaff != nil && *in.RequiredStaff < 1 {
		ve.Add("required_staff", "所需人数至少为 1")
	}
	for tag, count := range in.RequiredQualifications {
		if count < 0 {
			ve.Add("required_qualifications", "资质 "+tag+" 的最少人数不能为负")
		}
	}
	if ve.HasErrors() {
		return ve.ToAppError()
	}
	return nil
}

// Create 创建班次模板
// POST /api/v1/templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in TemplateInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, err)
		return
	}

	tmpl := &model.ShiftTemplate{
		Name:                   in.Name,
		DaysOfWeek:             in.DaysOfWeek,
		StartTime:              in.StartTime,
		EndTime:                in.EndTime,
		RequiredStaff:          1,
		RequiredQualifications: in.RequiredQualifications,
		IsActive:               true,
	}
	if in.RequiredStaff != nil {
		tmpl.RequiredStaff = *in.RequiredStaff
	}
	if in.IsActive != nil {
		tmpl.IsActive = *in.IsActive
	}
	if tmpl.RequiredQualifications == nil {
		tmpl.RequiredQualifications = map[string]int{}
	}

	if err := h.templates.Create(r.Context(), tmpl); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tmpl)
}

// List 查询班次模板，?active=true 时只返回活跃模板
// GET /api/v1/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ListFilter{
		OnlyActive: r.URL.Query().Get("active") == "true",
	}

	list, err := h.templates.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	if list == nil {
		list = []*model.ShiftTemplate{}
	}
	respondJSON(w, http.StatusOK, list)
}

// Get 获取单个班次模板
// GET /api/v1/templates/{id}
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	tmpl, err := h.templates.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tmpl)
}

// Update 更新班次模板
// PUT /api/v1/templates/{id}
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var in TemplateInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, err)
		return
	}

	tmpl, err := h.templates.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	tmpl.Name = in.Name
	tmpl.DaysOfWeek = in.DaysOfWeek
	tmpl.StartTime = in.StartTime
	tmpl.EndTime = in.EndTime
	if in.RequiredStaff != nil {
		tmpl.RequiredStaff = *in.RequiredStaff
	}
	if in.RequiredQualifications != nil {
		tmpl.RequiredQualifications = in.RequiredQualifications
	}
	if in.IsActive != nil {
		tmpl.IsActive = *in.IsActive
	}

	if err := h.templates.Update(r.Context(), tmpl); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tmpl)
}

// Delete 停用班次模板
// DELETE /api/v1/templates/{id}
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.templates.Deactivate(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deactivated": true, "id": id})
}
