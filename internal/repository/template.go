// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// TemplateRepository 班次模板仓储
type TemplateRepository struct {
	db DB
}

// NewTemplateRepository 创建班次模板仓储
func NewTemplateRepository(db DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create 创建班次模板
func (r *TemplateRepository) Create(ctx context.Context, tmpl *model.ShiftTemplate) error {
	if tmpl.ID == uuid.Nil {
		tmpl.ID = uuid.New()
	}
	if tmpl.CreatedAt.IsZero() {
		tmpl.CreatedAt = time.Now()
	}

	qualsJSON, _ := json.Marshal(tmpl.RequiredQualifications)

	query := `
		INSERT INTO shift_templates (
			id, name, days_of_week, start_time, end_time,
			required_staff, required_qualifications, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		tmpl.ID, tmpl.Name, pq.Array(tmpl.DaysOfWeek), tmpl.StartTime, tmpl.EndTime,
		tmpl.RequiredStaff, qualsJSON, tmpl.IsActive, tmpl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建班次模板失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取班次模板
func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ShiftTemplate, error) {
	query := `
		SELECT id, name, days_of_week, start_time, end_time,
			required_staff, required_qualifications, is_active, created_at
		FROM shift_templates
		WHERE id = $1
	`

	tmpl, err := r.scanTemplate(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("班次模板", id.String())
	}
	return tmpl, err
}

// Update 更新班次模板
func (r *TemplateRepository) Update(ctx context.Context, tmpl *model.ShiftTemplate) error {
	qualsJSON, _ := json.Marshal(tmpl.RequiredQualifications)

	query := `
		UPDATE shift_templates SET
			name = $2, days_of_week = $3, start_time = $4, end_time = $5,
			required_staff = $6, required_qualifications = $7, is_active = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		tmpl.ID, tmpl.Name, pq.Array(tmpl.DaysOfWeek), tmpl.StartTime, tmpl.EndTime,
		tmpl.RequiredStaff, qualsJSON, tmpl.IsActive,
	)
	if err != nil {
		return fmt.Errorf("更新班次模板失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.NotFound("班次模板", tmpl.ID.String())
	}

	return nil
}

// Deactivate 停用班次模板
// 历史分配仍引用该模板，删除采用停用语义而非物理删除
func (r *TemplateRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE shift_templates SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("停用班次模板失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.NotFound("班次模板", id.String())
	}

	return nil
}

// List 查询班次模板，filter.OnlyActive 为真时只返回活跃模板
func (r *TemplateRepository) List(ctx context.Context, filter ListFilter) ([]*model.ShiftTemplate, error) {
	query := `
		SELECT id, name, days_of_week, start_time, end_time,
			required_staff, required_qualifications, is_active, created_at
		FROM shift_templates
	`
	if filter.OnlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询班次模板失败: %w", err)
	}
	defer rows.Close()

	var result []*model.ShiftTemplate
	for rows.Next() {
		tmpl, err := r.scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tmpl)
	}
	return result, rows.Err()
}

// ListActive 查询全部活跃班次模板
func (r *TemplateRepository) ListActive(ctx context.Context) ([]*model.ShiftTemplate, error) {
	return r.List(ctx, ListFilter{OnlyActive: true})
}

// scanTemplate 扫描班次模板行
func (r *TemplateRepository) scanTemplate(row Scanner) (*model.ShiftTemplate, error) {
	var tmpl model.ShiftTemplate
	var days []int64
	var qualsJSON []byte

	err := row.Scan(
		&tmpl.ID, &tmpl.Name, pq.Array(&days), &tmpl.StartTime, &tmpl.EndTime,
		&tmpl.RequiredStaff, &qualsJSON, &tmpl.IsActive, &tmpl.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("扫描班次模板行失败: %w", err)
	}

	tmpl.DaysOfWeek = make([]int, len(days))
	for i, d := range days {
		tmpl.DaysOfWeek[i] = int(d)
	}
	if len(qualsJSON) > 0 {
		if err := json.Unmarshal(qualsJSON, &tmpl.RequiredQualifications); err != nil {
			return nil, fmt.Errorf("解析资质要求失败: %w", err)
		}
	}
	if tmpl.RequiredQualifications == nil {
		tmpl.RequiredQualifications = make(map[string]int)
	}

	return &tmpl, nil
}
