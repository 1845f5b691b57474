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

// StaffRepository 员工仓储
type StaffRepository struct {
	db DB
}

// NewStaffRepository 创建员工仓储
func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// Create 创建员工
func (r *StaffRepository) Create(ctx context.Context, staff *model.Staff) error {
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO staff (id, name, qualifications, max_shifts_per_week, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		staff.ID, staff.Name, pq.Array(staff.Qualifications),
		staff.MaxShiftsPerWeek, staff.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建员工失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取员工
func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	query := `
		SELECT id, name, qualifications, max_shifts_per_week, created_at
		FROM staff
		WHERE id = $1
	`

	staff, err := r.scanStaff(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("员工", id.String())
	}
	return staff, err
}

// Update 更新员工
func (r *StaffRepository) Update(ctx context.Context, staff *model.Staff) error {
	query := `
		UPDATE staff SET name = $2, qualifications = $3, max_shifts_per_week = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		staff.ID, staff.Name, pq.Array(staff.Qualifications), staff.MaxShiftsPerWeek,
	)
	if err != nil {
		return fmt.Errorf("更新员工失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.NotFound("员工", staff.ID.String())
	}

	return nil
}

// Delete 删除员工及其关联规则和分配
func (r *StaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("删除员工失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.NotFound("员工", id.String())
	}

	return nil
}

// List 查询全部员工，按创建时间升序
func (r *StaffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	query := `
		SELECT id, name, qualifications, max_shifts_per_week, created_at
		FROM staff
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询员工列表失败: %w", err)
	}
	defer rows.Close()

	var result []*model.Staff
	for rows.Next() {
		staff, err := r.scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}

// scanStaff 扫描员工行
func (r *StaffRepository) scanStaff(row Scanner) (*model.Staff, error) {
	var staff model.Staff
	err := row.Scan(
		&staff.ID, &staff.Name, pq.Array(&staff.Qualifications),
		&staff.MaxShiftsPerWeek, &staff.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("扫描员工行失败: %w", err)
	}
	return &staff, nil
}
