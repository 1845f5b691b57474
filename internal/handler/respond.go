// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Wrap(err, errors.CodeInternal, "内部错误")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    appErr.Code,
		"message": appErr.Message,
		"details": appErr.Details,
	})
}

// decodeJSON 解析请求体
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败")
	}
	return nil
}

// pathUUID 解析路径参数中的UUID
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.InvalidInput(name, "不是合法的UUID: "+raw)
	}
	return id, nil
}

// parseDate 解析 YYYY-MM-DD 日期参数
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return time.Time{}, errors.InvalidInput(field, "日期格式应为 YYYY-MM-DD: "+value)
	}
	return t, nil
}

// validateDayOfWeek 校验星期取值
func validateDayOfWeek(day int) error {
	if !model.ValidDayOfWeek(day) {
		return errors.InvalidInput("day_of_week", "取值范围为 0-6（周一=0）")
	}
	return nil
}
