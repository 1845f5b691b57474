// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// DB 数据库接口
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Tx 事务接口
type Tx interface {
	DB
	Commit() error
	Rollback() error
}

// Scanner 行扫描接口
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ListFilter 列表查询过滤器
type ListFilter struct {
	StaffID   *uuid.UUID `json:"staff_id,omitempty"`
	WeekStart string     `json:"week_start,omitempty"`
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`
	OnlyActive bool      `json:"only_active,omitempty"`
}

// WithStaffID 设置员工过滤
func (f ListFilter) WithStaffID(staffID uuid.UUID) ListFilter {
	f.StaffID = &staffID
	return f
}

// WithWeekStart 设置周起始过滤
func (f ListFilter) WithWeekStart(weekStart string) ListFilter {
	f.WeekStart = weekStart
	return f
}

// WithDateRange 设置日期范围
func (f ListFilter) WithDateRange(start, end string) ListFilter {
	f.StartDate = start
	f.EndDate = end
	return f
}
