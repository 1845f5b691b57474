// Package repository 提供数据访问层
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// RuleRepository 可用性与偏好规则仓储
// 写入采用替换语义：同一 (员工, 星期, 班次) 的旧规则先删后插
// 保证每个键至多一条生效规则
type RuleRepository struct {
	db DB
}

// NewRuleRepository 创建规则仓储
func NewRuleRepository(db DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// SetAvailability 写入可用性规则（替换同键旧规则）
func (r *RuleRepository) SetAvailability(ctx context.Context, rule *model.AvailabilityRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}

	if err := r.deleteMatching(ctx, "availability_rules", rule.StaffID, rule.DayOfWeek, rule.TemplateID); err != nil {
		return err
	}

	query := `
		INSERT INTO availability_rules (id, staff_id, day_of_week, shift_template_id, is_available)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.StaffID, rule.DayOfWeek, rule.TemplateID, rule.Available,
	)
	if err != nil {
		return fmt.Errorf("写入可用性规则失败: %w", err)
	}
	return nil
}

// SetPreference 写入偏好规则（替换同键旧规则）
func (r *RuleRepository) SetPreference(ctx context.Context, rule *model.PreferenceRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}

	if err := r.deleteMatching(ctx, "preference_rules", rule.StaffID, rule.DayOfWeek, rule.TemplateID); err != nil {
		return err
	}

	query := `
		INSERT INTO preference_rules (id, staff_id, day_of_week, shift_template_id, preference_score)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.StaffID, rule.DayOfWeek, rule.TemplateID, rule.Score,
	)
	if err != nil {
		return fmt.Errorf("写入偏好规则失败: %w", err)
	}
	return nil
}

// deleteMatching 删除同键规则，shift_template_id 的 NULL 与具体值视为不同键
func (r *RuleRepository) deleteMatching(ctx context.Context, table string, staffID uuid.UUID, day int, templateID *uuid.UUID) error {
	var query string
	var args []interface{}
	if templateID == nil {
		query = fmt.Sprintf(
			`DELETE FROM %s WHERE staff_id = $1 AND day_of_week = $2 AND shift_template_id IS NULL`, table)
		args = []interface{}{staffID, day}
	} else {
		query = fmt.Sprintf(
			`DELETE FROM %s WHERE staff_id = $1 AND day_of_week = $2 AND shift_template_id = $3`, table)
		args = []interface{}{staffID, day, *templateID}
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("替换旧规则失败: %w", err)
	}
	return nil
}

// ListAvailability 查询可用性规则，staffID 为空时返回全部
func (r *RuleRepository) ListAvailability(ctx context.Context, staffID *uuid.UUID) ([]*model.AvailabilityRule, error) {
	query := `
		SELECT id, staff_id, day_of_week, shift_template_id, is_available
		FROM availability_rules
	`
	var args []interface{}
	if staffID != nil {
		query += ` WHERE staff_id = $1`
		args = append(args, *staffID)
	}
	query += ` ORDER BY staff_id, day_of_week`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询可用性规则失败: %w", err)
	}
	defer rows.Close()

	var result []*model.AvailabilityRule
	for rows.Next() {
		var rule model.AvailabilityRule
		if err := rows.Scan(&rule.ID, &rule.StaffID, &rule.DayOfWeek, &rule.TemplateID, &rule.Available); err != nil {
			return nil, fmt.Errorf("扫描可用性规则失败: %w", err)
		}
		result = append(result, &rule)
	}
	return result, rows.Err()
}

// ListPreferences 查询偏好规则，staffID 为空时返回全部
func (r *RuleRepository) ListPreferences(ctx context.Context, staffID *uuid.UUID) ([]*model.PreferenceRule, error) {
	query := `
		SELECT id, staff_id, day_of_week, shift_template_id, preference_score
		FROM preference_rules
	`
	var args []interface{}
	if staffID != nil {
		query += ` WHERE staff_id = $1`
		args = append(args, *staffID)
	}
	query += ` ORDER BY staff_id, day_of_week`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询偏好规则失败: %w", err)
	}
	defer rows.Close()

	var result []*model.PreferenceRule
	for rows.Next() {
		var rule model.PreferenceRule
		if err := rows.Scan(&rule.ID, &rule.StaffID, &rule.DayOfWeek, &rule.TemplateID, &rule.Score); err != nil {
			return nil, fmt.Errorf("扫描偏好规则失败: %w", err)
		}
		result = append(result, &rule)
	}
	return result, rows.Err()
}

// DeleteAvailability 删除可用性规则
func (r *RuleRepository) DeleteAvailability(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "availability_rules", id)
}

// DeletePreference 删除偏好规则
func (r *RuleRepository) DeletePreference(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "preference_rules", id)
}

func (r *RuleRepository) deleteByID(ctx context.Context, table string, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("删除规则失败: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("规则 %s 不存在", id)
	}
	return nil
}
