// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
)

// pg 唯一约束冲突错误码
const pgUniqueViolation = "23505"

// AssignmentRepository 排班分配仓储
type AssignmentRepository struct {
	db DB
}

// NewAssignmentRepository 创建分配仓储
func NewAssignmentRepository(db DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// RejectedAssignment 批量写入时被唯一索引拒绝的分配
type RejectedAssignment struct {
	Assignment *model.Assignment `json:"assignment"`
	Reason     string            `json:"reason"`
}

// Create 创建单条分配
// (员工, 班次, 周, 星期) 重复时返回 DuplicateAssignment 错误
func (r *AssignmentRepository) Create(ctx context.Context, assign *model.Assignment) error {
	if assign.ID == uuid.Nil {
		assign.ID = uuid.New()
	}
	if assign.AssignedAt.IsZero() {
		assign.AssignedAt = time.Now()
	}

	query := `
		INSERT INTO week_assignments (
			id, shift_template_id, staff_id, week_start_date, day_of_week, assigned_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		assign.ID, assign.TemplateID, assign.StaffID,
		assign.WeekStartDate, assign.DayOfWeek, assign.AssignedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
			return errors.DuplicateAssignment(assign.StaffID.String(), assign.Date())
		}
		return fmt.Errorf("创建分配失败: %w", err)
	}

	return nil
}

// CreateBatch 批量写入分配，逐条提交
// 与唯一索引冲突的记录跳过并收集，不中断其余写入
func (r *AssignmentRepository) CreateBatch(ctx context.Context, assignments []*model.Assignment) ([]*model.Assignment, []RejectedAssignment, error) {
	var committed []*model.Assignment
	var rejected []RejectedAssignment

	for _, assign := range assignments {
		err := r.Create(ctx, assign)
		if err == nil {
			committed = append(committed, assign)
			continue
		}
		if errors.Is(err, errors.CodeDuplicateAssignment) {
			rejected = append(rejected, RejectedAssignment{
				Assignment: assign,
				Reason:     err.Error(),
			})
			continue
		}
		return committed, rejected, err
	}

	return committed, rejected, nil
}

// GetByID 根据ID获取分配
func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	query := `
		SELECT id, shift_template_id, staff_id, week_start_date, day_of_week, assigned_at
		FROM week_assignments
		WHERE id = $1
	`

	assign, err := r.scanAssignment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("分配", id.String())
	}
	return assign, err
}

// List 查询分配，支持周起始/员工/日期范围过滤
func (r *AssignmentRepository) List(ctx context.Context, filter ListFilter) ([]*model.Assignment, error) {
	query := `
		SELECT id, shift_template_id, staff_id, week_start_date, day_of_week, assigned_at
		FROM week_assignments
	`
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.WeekStart != "" {
		conditions = append(conditions, fmt.Sprintf("week_start_date = $%d", argIndex))
		args = append(args, filter.WeekStart)
		argIndex++
	}
	if filter.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("staff_id = $%d", argIndex))
		args = append(args, *filter.StaffID)
		argIndex++
	}
	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("week_start_date >= $%d", argIndex))
		args = append(args, filter.StartDate)
		argIndex++
	}
	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("week_start_date <= $%d", argIndex))
		args = append(args, filter.EndDate)
		argIndex++
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += ` ORDER BY week_start_date, day_of_week, assigned_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询分配失败: %w", err)
	}
	defer rows.Close()

	var result []*model.Assignment
	for rows.Next() {
		assign, err := r.scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, assign)
	}
	return result, rows.Err()
}

// ListByWeek 查询某周的全部分配
func (r *AssignmentRepository) ListByWeek(ctx context.Context, weekStart string) ([]*model.Assignment, error) {
	return r.List(ctx, ListFilter{WeekStart: weekStart})
}

// Delete 删除单条分配
func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM week_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("删除分配失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.NotFound("分配", id.String())
	}

	return nil
}

// DeleteByWeek 清除某周的全部分配，返回删除条数
func (r *AssignmentRepository) DeleteByWeek(ctx context.Context, weekStart string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM week_assignments WHERE week_start_date = $1`, weekStart)
	if err != nil {
		return 0, fmt.Errorf("清除周分配失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}

// scanAssignment 扫描分配行
func (r *AssignmentRepository) scanAssignment(row Scanner) (*model.Assignment, error) {
	var assign model.Assignment
	var weekStart time.Time

	err := row.Scan(
		&assign.ID, &assign.TemplateID, &assign.StaffID,
		&weekStart, &assign.DayOfWeek, &assign.AssignedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("扫描分配行失败: %w", err)
	}

	assign.WeekStartDate = weekStart.Format(model.DateLayout)
	return &assign, nil
}
